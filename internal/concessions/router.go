package concessions

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	rg.GET("/concessions", controller.GetAvailableItems)

	admin := rg.Group("/admin/concessions")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateItem)
		admin.PATCH("/:id", controller.UpdateItem)
	}
}
