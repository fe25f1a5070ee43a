package seatmap

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(rg *gin.RouterGroup, controller *Controller) {
	showtimes := rg.Group("/showtimes")
	{
		showtimes.GET("/:id/seatmap", controller.GetSeatMap)
		showtimes.POST("/:id/seatmap/validate", controller.ValidateToggle)
	}
}
