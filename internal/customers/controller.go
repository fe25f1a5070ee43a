package customers

import (
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case ErrCustomerExists:
			response.RespondJSON(ctx, "error", http.StatusConflict, "Customer with this email already exists", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to register customer", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Customer registered successfully", resp, nil)
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid email or password", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to login", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", resp, nil)
}

func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	tokenPair, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid or expired refresh token", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Token refreshed successfully", tokenPair, nil)
}

func (c *Controller) ChangePassword(ctx *gin.Context) {
	customerID := ctx.GetString("customer_id")
	if customerID == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Customer not authenticated", nil, nil)
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.service.ChangePassword(ctx.Request.Context(), customerID, &req); err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Current password is incorrect", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to change password", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Password changed successfully", nil, nil)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	customerID := ctx.GetString("customer_id")
	if customerID == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Customer not authenticated", nil, nil)
		return
	}

	customer, err := c.service.GetCustomer(ctx.Request.Context(), customerID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Customer not found", nil, nil)
		return
	}

	resp := toCustomerResponse(customer)
	response.RespondJSON(ctx, "success", http.StatusOK, "Customer retrieved successfully", resp, nil)
}

// UpdateTier handles PATCH /admin/customers/:id/tier
func (c *Controller) UpdateTier(ctx *gin.Context) {
	var req UpdateTierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	customerID := ctx.Param("id")
	if err := c.service.UpdateTier(ctx.Request.Context(), customerID, MembershipTier(req.Tier)); err != nil {
		switch err {
		case ErrCustomerNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Customer not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update tier", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Membership tier updated", nil, nil)
}
