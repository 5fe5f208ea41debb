package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lagoslab/accessibility-backend-go/internal/config"
	"github.com/lagoslab/accessibility-backend-go/internal/handler"
	"github.com/lagoslab/accessibility-backend-go/internal/middleware"
	"github.com/lagoslab/accessibility-backend-go/internal/service"
)

// SetupRouter wires the HTTP routes
func SetupRouter(cfg *config.Config, zones *service.ZoneService, scenarios *service.ScenarioService, analysis *service.AnalysisService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Accessibility Backend API is running",
		})
	})

	zoneHandler := handler.NewZoneHandler(zones)
	scenarioHandler := handler.NewScenarioHandler(scenarios)
	analysisHandler := handler.NewAnalysisHandler(analysis)
	adminHandler := handler.NewAdminHandler(zones, scenarios)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		api.GET("/zones", zoneHandler.GetZones)
		api.GET("/zones/bounds", zoneHandler.GetBounds)

		analysisRoutes := api.Group("/analysis")
		{
			analysisRoutes.POST("/accessibility", analysisHandler.Accessibility)
			analysisRoutes.POST("/timebands", analysisHandler.TimeBands)
		}

		scenarioRoutes := api.Group("/scenarios")
		{
			scenarioRoutes.GET("", scenarioHandler.List)

			// Mutations require a bearer token
			scenarioRoutes.POST("", middleware.Auth(cfg.JWTSecret), scenarioHandler.Upload)
			scenarioRoutes.DELETE("/:name", middleware.Auth(cfg.JWTSecret), scenarioHandler.Delete)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.Auth(cfg.JWTSecret))
		{
			admin.POST("/zones", adminHandler.ImportZones)
			admin.POST("/node-mapping", adminHandler.ImportMapping)
			admin.POST("/base-skim", adminHandler.ImportBaseSkim)
		}
	}

	return r
}
