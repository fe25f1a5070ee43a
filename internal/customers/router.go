package customers

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles customer and auth routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new customer router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all customer routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", r.controller.Register)
		auth.POST("/login", r.controller.Login)
		auth.POST("/refresh", r.controller.RefreshToken)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(middleware.JWTAuthWithConfig(r.config))
		{
			protected.PUT("/change-password", r.controller.ChangePassword)
			protected.GET("/me", r.controller.GetMe)
		}
	}

	admin := rg.Group("/admin/customers")
	admin.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireAdmin())
	{
		admin.PATCH("/:id/tier", r.controller.UpdateTier)
	}
}
