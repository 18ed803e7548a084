package router

import (
	"github.com/gin-gonic/gin"

	"checkdesk/internal/config"
	"checkdesk/internal/handler"
	"checkdesk/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	checkH *handler.CheckHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	checks := v1.Group("/checks")
	checks.POST("", checkH.Upload)
	checks.GET("", checkH.List)
	checks.GET("/export", checkH.Export)
	checks.GET("/:id", checkH.GetByID)
	checks.PUT("/:id", checkH.Update)

	return r
}
