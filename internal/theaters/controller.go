package theaters

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

func (c *Controller) GetAllTheaters(ctx *gin.Context) {
	theaters, err := c.service.GetAllTheaters(ctx.Request.Context(), ctx.Query("city"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to retrieve theaters", nil, nil)
		return
	}

	resps := make([]TheaterResponse, 0, len(theaters))
	for i := range theaters {
		resps = append(resps, toTheaterResponse(&theaters[i]))
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Theaters retrieved successfully", resps, nil)
}

func (c *Controller) GetTheater(ctx *gin.Context) {
	theater, err := c.service.GetTheater(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Theater not found", nil, nil)
		return
	}

	resp := toTheaterResponse(theater)
	response.RespondJSON(ctx, "success", http.StatusOK, "Theater retrieved successfully", resp, nil)
}

func (c *Controller) CreateTheater(ctx *gin.Context) {
	var req CreateTheaterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	theater, err := c.service.CreateTheater(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create theater", nil, nil)
		return
	}

	resp := toTheaterResponse(theater)
	response.RespondJSON(ctx, "success", http.StatusCreated, "Theater created successfully", resp, nil)
}

func (c *Controller) UpdateTheater(ctx *gin.Context) {
	var req UpdateTheaterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	theater, err := c.service.UpdateTheater(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		switch err {
		case ErrTheaterNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Theater not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update theater", nil, nil)
		}
		return
	}

	resp := toTheaterResponse(theater)
	response.RespondJSON(ctx, "success", http.StatusOK, "Theater updated successfully", resp, nil)
}

func (c *Controller) DeleteTheater(ctx *gin.Context) {
	if err := c.service.DeleteTheater(ctx.Request.Context(), ctx.Param("id")); err != nil {
		switch err {
		case ErrTheaterNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Theater not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete theater", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Theater deleted successfully", nil, nil)
}

func (c *Controller) CreateAuditorium(ctx *gin.Context) {
	var req CreateAuditoriumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	auditorium, err := c.service.CreateAuditorium(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		switch err {
		case ErrTheaterNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Theater not found", nil, nil)
		case ErrDuplicateRowLabel:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Layout contains a duplicate row label", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create auditorium", nil, nil)
		}
		return
	}

	resp := toAuditoriumResponse(auditorium, true)
	response.RespondJSON(ctx, "success", http.StatusCreated, "Auditorium created successfully", resp, nil)
}

func (c *Controller) GetAuditorium(ctx *gin.Context) {
	auditorium, err := c.service.GetAuditorium(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Auditorium not found", nil, nil)
		return
	}

	resp := toAuditoriumResponse(auditorium, true)
	response.RespondJSON(ctx, "success", http.StatusOK, "Auditorium retrieved successfully", resp, nil)
}
