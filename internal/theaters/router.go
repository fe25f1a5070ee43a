package theaters

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	theaters := rg.Group("/theaters")
	{
		theaters.GET("", controller.GetAllTheaters)
		theaters.GET("/:id", controller.GetTheater)
	}

	auditoriums := rg.Group("/auditoriums")
	{
		auditoriums.GET("/:id", controller.GetAuditorium)
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.POST("/theaters", controller.CreateTheater)
		admin.PUT("/theaters/:id", controller.UpdateTheater)
		admin.DELETE("/theaters/:id", controller.DeleteTheater)
		admin.POST("/theaters/:id/auditoriums", controller.CreateAuditorium)
	}
}
