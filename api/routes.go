package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dejavas-ai/arena/api/handlers"
	"github.com/dejavas-ai/arena/insights"
)

// SetupRoutes initializes all API endpoints
func SetupRoutes(router *gin.Engine, h *handlers.Handler, insightsHandler *insights.Handler) {
	api := router.Group("/api")
	{
		api.POST("/briefs", h.CreateBrief)
		api.POST("/sessions/:sessionId/agents", h.ConfigureAgents)
		api.POST("/sessions/:sessionId/simulate", h.RunSimulation)
		api.POST("/sessions/:sessionId/rerun", h.RerunSimulation)
		api.GET("/sessions/:sessionId/report", h.GetReport)
		api.GET("/sessions/:sessionId/insights", insightsHandler.GetSessionInsights)
		api.POST("/analyze-content", h.AnalyzeContent)
		api.POST("/research", h.ConductResearch)
		api.GET("/health", h.GetHealth)
		api.GET("/monitoring/performance", h.GetPerformanceMetrics)
		api.GET("/monitoring/business", h.GetBusinessMetrics)
	}

	router.GET("/ws", handlers.HandleWebSocket)
}
