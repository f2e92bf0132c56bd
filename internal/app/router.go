package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"fleet/internal/handler"
	"fleet/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	VehicleHandler   *handler.VehicleHandler
	StaffHandler     *handler.StaffHandler
	DashboardHandler *handler.DashboardHandler
	ReportHandler    *handler.ReportHandler
	RedisClient      *redis.Client
	NewRelicApp      *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Vehicle routes: status board, deep-link resolution, transitions.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.GET("", deps.VehicleHandler.GetAll)
			vehicles.GET("/:id", deps.VehicleHandler.Resolve)
			vehicles.POST("/:id/checkout", deps.VehicleHandler.Checkout)
			vehicles.POST("/:id/checkin", deps.VehicleHandler.CheckIn)
		}

		// Staff directory lookup.
		v1.GET("/staff/:code", deps.StaffHandler.Lookup)

		// Dashboard.
		v1.GET("/dashboard/summary", deps.DashboardHandler.Summary)

		// Printable reports.
		v1.GET("/reports/usage", deps.ReportHandler.MonthlyUsage)
	}

	return router
}
