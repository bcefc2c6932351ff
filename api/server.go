package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/dejavas-ai/arena/api/handlers"
	"github.com/dejavas-ai/arena/insights"
)

// NewRouter builds the gin engine with all arena routes mounted.
func NewRouter(h *handlers.Handler, insightsHandler *insights.Handler) *gin.Engine {
	r := gin.Default()
	SetupRoutes(r, h, insightsHandler)
	return r
}

// StartServer initializes the REST API
func StartServer(port int, h *handlers.Handler, insightsHandler *insights.Handler) error {
	r := NewRouter(h, insightsHandler)
	return r.Run(fmt.Sprintf(":%d", port))
}
