package concessions

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

func (c *Controller) GetAvailableItems(ctx *gin.Context) {
	items, err := c.service.GetAvailableItems(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to retrieve concession items", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Concession items retrieved successfully", items, nil)
}

func (c *Controller) CreateItem(ctx *gin.Context) {
	var req CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	item, err := c.service.CreateItem(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create concession item", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Concession item created successfully", item, nil)
}

func (c *Controller) UpdateItem(ctx *gin.Context) {
	var req UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	item, err := c.service.UpdateItem(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		switch err {
		case ErrItemNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Concession item not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update concession item", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Concession item updated successfully", item, nil)
}
