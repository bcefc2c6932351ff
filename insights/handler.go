package insights

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dejavas-ai/arena/monitoring"
)

type Handler struct {
	extractor *Extractor
	monitor   *monitoring.SystemMonitor
}

func NewHandler(extractor *Extractor, monitor *monitoring.SystemMonitor) *Handler {
	return &Handler{extractor: extractor, monitor: monitor}
}

// GetSessionInsights returns advanced insights for a finished session
func (h *Handler) GetSessionInsights(c *gin.Context) {
	sessionID := c.Param("sessionId")

	if h.extractor == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Extractor not initialized"})
		return
	}
	if h.monitor != nil {
		h.monitor.RecordInsightRequest()
	}

	analysis, err := h.extractor.AnalyzeSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysis)
}
