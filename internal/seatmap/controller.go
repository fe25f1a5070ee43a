package seatmap

import (
	"errors"
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

type toggleRequest struct {
	Selected []string `json:"selected" validate:"dive,min=2,max=10"`
	Toggle   string   `json:"toggle" validate:"required,min=2,max=10"`
}

// GetSeatMap handles GET /showtimes/:id/seatmap.
func (c *Controller) GetSeatMap(ctx *gin.Context) {
	sm, err := c.service.Load(ctx.Request.Context(), ctx.Param("id"), ctx.Query("session_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrShowtimeNotBookable):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Showtime is not open for booking", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", sm, nil)
}

// ValidateToggle handles POST /showtimes/:id/seatmap/validate. It is a pure
// dry run the UI calls on every click; nothing is held or stored.
func (c *Controller) ValidateToggle(ctx *gin.Context) {
	var req toggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	next, _, err := c.service.Validate(ctx.Request.Context(), ctx.Param("id"), ctx.Query("session_id"), req.Selected, req.Toggle)
	if err != nil {
		var rejection *Rejection
		if errors.As(err, &rejection) {
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Seat selection rejected", rejection, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to validate selection", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Selection is valid", gin.H{"selected": next.Labels()}, nil)
}
