package coupons

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

func (c *Controller) CreateCoupon(ctx *gin.Context) {
	var req CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	coupon, err := c.service.CreateCoupon(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create coupon", nil, nil)
		return
	}

	resp := toCouponResponse(coupon)
	response.RespondJSON(ctx, "success", http.StatusCreated, "Coupon created successfully", resp, nil)
}

func (c *Controller) GetAllCoupons(ctx *gin.Context) {
	coupons, err := c.service.GetAllCoupons(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to retrieve coupons", nil, nil)
		return
	}

	resps := make([]CouponResponse, 0, len(coupons))
	for i := range coupons {
		resps = append(resps, toCouponResponse(&coupons[i]))
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Coupons retrieved successfully", resps, nil)
}

func (c *Controller) DeactivateCoupon(ctx *gin.Context) {
	if err := c.service.DeactivateCoupon(ctx.Request.Context(), ctx.Param("code")); err != nil {
		switch err {
		case ErrCouponNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Coupon not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to deactivate coupon", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Coupon deactivated", nil, nil)
}
