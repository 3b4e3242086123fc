package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"symptom-helper-server/internal/ai"
	"symptom-helper-server/internal/config"
	"symptom-helper-server/internal/handlers"
	"symptom-helper-server/internal/middleware"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	// Initialize the provider client and handlers
	aiClient := ai.NewClient(cfg.Providers, nil)
	diagnosisHandler := handlers.NewDiagnosisHandler(cfg, aiClient)

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/diagnose",
			middleware.RateLimitMiddleware(cfg.RateLimit),
			diagnosisHandler.Diagnose)
	}
}
