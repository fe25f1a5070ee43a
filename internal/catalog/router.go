package catalog

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers public browsing routes and admin catalog management.
func SetupRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	movies := rg.Group("/movies")
	{
		movies.GET("", controller.GetAllMovies)
		movies.GET("/:id", controller.GetMovie)
		movies.GET("/:id/showtimes", controller.GetShowtimesByMovie)
	}

	showtimes := rg.Group("/showtimes")
	{
		showtimes.GET("/:id", controller.GetShowtime)
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.POST("/movies", controller.CreateMovie)
		admin.PUT("/movies/:id", controller.UpdateMovie)
		admin.DELETE("/movies/:id", controller.DeleteMovie)
		admin.POST("/showtimes", controller.CreateShowtime)
		admin.PATCH("/showtimes/:id", controller.UpdateShowtime)
	}
}
