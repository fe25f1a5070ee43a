package sessions

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the booking session flow. Everything requires an
// authenticated customer.
func SetupRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	sessions := rg.Group("/sessions")
	sessions.Use(middleware.JWTAuthWithConfig(cfg))
	{
		sessions.POST("", controller.CreateSession)
		sessions.GET("/:id", controller.GetSession)
		sessions.PUT("/:id/seats", controller.UpdateSeats)
		sessions.POST("/:id/concessions", controller.AdjustConcession)
		sessions.POST("/:id/coupons", controller.ApplyCoupon)
		sessions.DELETE("/:id/coupons/:code", controller.RemoveCoupon)
		sessions.PUT("/:id/points", controller.RedeemPoints)
		sessions.GET("/:id/quote", controller.GetQuote)
		sessions.POST("/:id/checkout", controller.Checkout)
		sessions.POST("/:id/payment", controller.ConfirmPayment)
		sessions.DELETE("/:id", controller.CancelSession)
	}
}
