// Package api wires the dashboard session to HTTP routes.
package api

import (
	"net/http"

	"bess-dashboard/internal/api/handlers"
	"bess-dashboard/internal/api/middleware"
	"bess-dashboard/internal/config"
	"bess-dashboard/internal/dashboard"

	"github.com/NYTimes/gziphandler"
	"github.com/gin-gonic/gin"
)

// NewRouter registers every dashboard route on a new gin engine.
func NewRouter(session *dashboard.Session, cfg config.ServerConfig) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	batteryHandler := handlers.NewBatteryHandler(session)
	rankHandler := handlers.NewRankHandler(session)
	variationHandler := handlers.NewVariationHandler(session)
	datasetHandler := handlers.NewDatasetHandler(session)
	chartHandler := handlers.NewChartHandler(session)
	dashboardHandler := handlers.NewDashboardHandler(session)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/", dashboardHandler.Index)

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/batteries", batteryHandler.ListBatteries)
		api.GET("/batteries/:name/status", batteryHandler.GetStatus)
		api.GET("/batteries/:name/revenue", batteryHandler.GetRevenue)

		api.GET("/revenue", rankHandler.RankRevenue)
		api.GET("/variation/:kind", variationHandler.GetVariation)

		api.GET("/datasets", datasetHandler.ListDatasets)
		api.POST("/reload", datasetHandler.Reload)
	}

	charts := router.Group("/charts")
	{
		charts.GET("/status/:name", chartHandler.Status)
		charts.GET("/waterfall/:name", chartHandler.Waterfall)
		charts.GET("/energy-price", chartHandler.EnergyPrice)
		charts.GET("/variation/:kind", chartHandler.Variation)
		charts.GET("/revenue", chartHandler.Revenue)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}

// NewHandler is the router wrapped in response compression when enabled.
func NewHandler(session *dashboard.Session, cfg config.ServerConfig) http.Handler {
	router := NewRouter(session, cfg)
	if !cfg.GzipEnabled() {
		return router
	}
	return gziphandler.GzipHandler(router)
}
