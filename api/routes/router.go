// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cinebook/internal/catalog"
	"cinebook/internal/concessions"
	"cinebook/internal/coupons"
	"cinebook/internal/customers"
	"cinebook/internal/notifications"
	"cinebook/internal/seatmap"
	"cinebook/internal/sessions"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/theaters"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router wires every module together and registers its routes.
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	// SessionService is exposed so main can hand it to the expiry job.
	SessionService sessions.Service
}

func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes.
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	pg := r.db.GetPostgreSQL()
	cacheService := cache.NewService(r.db.GetRedisClient())
	appLogger := logger.GetDefault()

	// Customers / auth
	customerRepo := customers.NewRepository(pg)
	customerService := customers.NewService(customerRepo, r.config)
	customerController := customers.NewController(customerService)

	// Catalog
	catalogRepo := catalog.NewRepository(pg)
	catalogService := catalog.NewService(catalogRepo, cacheService)
	catalogController := catalog.NewController(catalogService)

	// Theaters
	theaterRepo := theaters.NewRepository(pg)
	theaterService := theaters.NewService(theaterRepo, cacheService)
	theaterController := theaters.NewController(theaterService)

	// Seat maps and holds
	holdStore := seatmap.NewHoldStore(r.db.GetRedisClient())
	seatmapRepo := seatmap.NewRepository(pg)
	seatmapService := seatmap.NewService(seatmapRepo, catalogService, theaterService, holdStore, r.config)
	seatmapController := seatmap.NewController(seatmapService)

	// Concessions
	concessionRepo := concessions.NewRepository(pg)
	concessionService := concessions.NewService(concessionRepo, cacheService)
	concessionController := concessions.NewController(concessionService)

	// Coupons
	couponRepo := coupons.NewRepository(pg)
	couponService := coupons.NewService(couponRepo)
	couponController := coupons.NewController(couponService)

	// Booking sessions
	sessionRepo := sessions.NewRepository(pg)
	events := sessions.NewKafkaEvents(r.producer, appLogger)
	r.SessionService = sessions.NewService(
		sessionRepo,
		customerService,
		catalogService,
		seatmapService,
		concessionService,
		couponService,
		events,
		r.config,
		appLogger,
	)
	sessionController := sessions.NewController(r.SessionService)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		customers.NewRouter(customerController, r.config).SetupRoutes(api)
		catalog.SetupRoutes(api, catalogController, r.config)
		theaters.SetupRoutes(api, theaterController, r.config)
		seatmap.SetupRoutes(api, seatmapController)
		concessions.SetupRoutes(api, concessionController, r.config)
		coupons.SetupRoutes(api, couponController, r.config)
		sessions.SetupRoutes(api, sessionController, r.config)
	}
}

// setupHealthRoutes sets up health check and system status routes.
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
