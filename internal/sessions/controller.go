package sessions

import (
	"errors"
	"net/http"
	"time"

	"cinebook/internal/coupons"
	"cinebook/internal/seatmap"
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

func (c *Controller) CreateSession(ctx *gin.Context) {
	customerID := ctx.GetString("customer_id")

	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	session, err := c.service.CreateSession(ctx.Request.Context(), customerID, req.ShowtimeID)
	if err != nil {
		switch {
		case errors.Is(err, seatmap.ErrShowtimeNotBookable):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Showtime is not open for booking", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create booking session", nil, nil)
		}
		return
	}

	resp := toSessionResponse(session, time.Now())
	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking session created", resp, nil)
}

func (c *Controller) GetSession(ctx *gin.Context) {
	session, err := c.service.GetSession(ctx.Request.Context(), ctx.GetString("customer_id"), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	resp := toSessionResponse(session, time.Now())
	response.RespondJSON(ctx, "success", http.StatusOK, "Session retrieved", resp, nil)
}

func (c *Controller) UpdateSeats(ctx *gin.Context) {
	var req UpdateSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	session, err := c.service.UpdateSeats(ctx.Request.Context(), ctx.GetString("customer_id"), ctx.Param("id"), req.Seats)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	resp := toSessionResponse(session, time.Now())
	response.RespondJSON(ctx, "success", http.StatusOK, "Seat selection updated", resp, nil)
}

func (c *Controller) AdjustConcession(ctx *gin.Context) {
	var req AdjustConcessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	session, err := c.service.AdjustConcession(ctx.Request.Context(), ctx.GetString("customer_id"), ctx.Param("id"), req.ItemID, req.Delta)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	resp := toSessionResponse(session, time.Now())
	response.RespondJSON(ctx, "success", http.StatusOK, "Concessions updated", resp, nil)
}

func (c *Controller) ApplyCoupon(ctx *gin.Context) {
	var req ApplyCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	session, err := c.service.ApplyCoupon(ctx.Request.Context(), ctx.GetString("customer_id"), ctx.Param("id"), req.Code)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	resp := toSessionResponse(session, time.Now())
	response.RespondJSON(ctx, "success", http.StatusOK, "Coupon applied", resp, nil)
}

func (c *Controller) RemoveCoupon(ctx *gin.Context) {
	session, err := c.service.RemoveCoupon(ctx.Request.Context(), ctx.GetString("customer_id"), ctx.Param("id"), ctx.Param("code"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	resp := toSessionResponse(session, time.Now())
	response.RespondJSON(ctx, "success", http.StatusOK, "Coupon removed", resp, nil)
}

func (c *Controller) RedeemPoints(ctx *gin.Context) {
	var req RedeemPointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	session, err := c.service.RedeemPoints(ctx.Request.Context(), ctx.GetString("customer_id"), ctx.Param("id"), req.Points)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	resp := toSessionResponse(session, time.Now())
	response.RespondJSON(ctx, "success", http.StatusOK, "Loyalty points set", resp, nil)
}

func (c *Controller) GetQuote(ctx *gin.Context) {
	session, breakdown, err := c.service.Quote(ctx.Request.Context(), ctx.GetString("customer_id"), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	resp := QuoteResponse{
		Session:   toSessionResponse(session, time.Now()),
		Breakdown: *breakdown,
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Quote computed", resp, nil)
}

func (c *Controller) Checkout(ctx *gin.Context) {
	session, err := c.service.Checkout(ctx.Request.Context(), ctx.GetString("customer_id"), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	resp := toSessionResponse(session, time.Now())
	response.RespondJSON(ctx, "success", http.StatusOK, "Session is awaiting payment", resp, nil)
}

func (c *Controller) ConfirmPayment(ctx *gin.Context) {
	var req ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	session, breakdown, err := c.service.ConfirmPayment(ctx.Request.Context(), ctx.GetString("customer_id"), ctx.Param("id"), req.Method, req.TransactionID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	resp := QuoteResponse{
		Session:   toSessionResponse(session, time.Now()),
		Breakdown: *breakdown,
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Payment confirmed, booking complete", resp, nil)
}

func (c *Controller) CancelSession(ctx *gin.Context) {
	if err := c.service.Cancel(ctx.Request.Context(), ctx.GetString("customer_id"), ctx.Param("id")); err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Session cancelled", nil, nil)
}

// respondError maps domain errors onto HTTP statuses in one place since
// most session operations share the same failure set.
func (c *Controller) respondError(ctx *gin.Context, err error) {
	var rejection *seatmap.Rejection
	if errors.As(err, &rejection) {
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Seat selection rejected", rejection, nil)
		return
	}
	var conflict *seatmap.SeatConflictError
	if errors.As(err, &conflict) {
		response.RespondJSON(ctx, "error", http.StatusConflict, "Seat is held by another customer", gin.H{"seat_label": conflict.SeatLabel}, nil)
		return
	}

	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Session not found", nil, nil)
	case errors.Is(err, ErrNotSessionOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Session belongs to another customer", nil, nil)
	case errors.Is(err, ErrSessionExpired):
		response.RespondJSON(ctx, "error", http.StatusGone, "Session has expired", nil, nil)
	case errors.Is(err, ErrSessionNotEditable), errors.Is(err, ErrInvalidTransition):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Operation not allowed in the session's current state", nil, nil)
	case errors.Is(err, ErrEmptySelection):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Select at least one seat before checkout", nil, nil)
	case errors.Is(err, ErrInsufficientPoints):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Not enough loyalty points", nil, nil)
	case errors.Is(err, ErrSeatAlreadySold):
		response.RespondJSON(ctx, "error", http.StatusConflict, "A selected seat was just sold", nil, nil)
	case errors.Is(err, coupons.ErrCouponNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Coupon not found", nil, nil)
	case errors.Is(err, coupons.ErrCouponExpired),
		errors.Is(err, coupons.ErrCouponInactive),
		errors.Is(err, coupons.ErrBelowMinimum),
		errors.Is(err, coupons.ErrAlreadyApplied),
		errors.Is(err, coupons.ErrInsufficientBalance):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Booking operation failed", nil, nil)
	}
}
