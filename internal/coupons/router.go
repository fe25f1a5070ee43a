package coupons

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	admin := rg.Group("/admin/coupons")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateCoupon)
		admin.GET("", controller.GetAllCoupons)
		admin.DELETE("/:code", controller.DeactivateCoupon)
	}
}
