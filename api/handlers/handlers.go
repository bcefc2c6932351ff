package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dejavas-ai/arena/ai"
	"github.com/dejavas-ai/arena/communication"
	"github.com/dejavas-ai/arena/core"
	"github.com/dejavas-ai/arena/graph"
	"github.com/dejavas-ai/arena/monitoring"
	"github.com/dejavas-ai/arena/registry"
	"github.com/dejavas-ai/arena/scanner"
	"github.com/dejavas-ai/arena/simulation"
)

const defaultRounds = 3

// Handler bundles the engine, scanner and monitor behind the REST surface.
type Handler struct {
	engine  *ai.Engine
	scanner *scanner.Scanner
	monitor *monitoring.SystemMonitor
}

func NewHandler(engine *ai.Engine, sc *scanner.Scanner, monitor *monitoring.SystemMonitor) *Handler {
	return &Handler{
		engine:  engine,
		scanner: sc,
		monitor: monitor,
	}
}

// CreateBrief - Registers a product brief and opens a session
func (h *Handler) CreateBrief(c *gin.Context) {
	var brief core.Brief
	if err := c.ShouldBindJSON(&brief); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brief data"})
		return
	}

	session := registry.CreateSession(brief)
	h.monitor.RecordBriefCreated()

	c.JSON(http.StatusOK, gin.H{
		"message":    "Brief registered successfully",
		"session_id": session.ID,
	})
}

// ConfigureAgents - Sets the role mix for a session's population
func (h *Handler) ConfigureAgents(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var cfg core.AgentConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent configuration"})
		return
	}
	if cfg.Sum() != 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Agent percentages must sum to 100"})
		return
	}

	if !registry.SaveConfig(sessionID, cfg) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Agent configuration saved"})
}

// RunSimulation - Executes the arena for a configured session
func (h *Handler) RunSimulation(c *gin.Context) {
	sessionID := c.Param("sessionId")

	session, ok := registry.GetSession(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if session.Config == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Agent configuration required before simulation"})
		return
	}

	rounds := defaultRounds
	if raw := c.Query("rounds"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rounds must be a positive integer"})
			return
		}
		rounds = parsed
	}
	topology := graph.ParseTopology(c.Query("topology"))

	h.runAndStore(c, session, topology, rounds)
}

// RerunSimulation - Replays a finished session with a fresh population
func (h *Handler) RerunSimulation(c *gin.Context) {
	sessionID := c.Param("sessionId")

	session, ok := registry.GetSession(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if session.Config == nil || session.Result == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session has not been simulated yet"})
		return
	}

	rounds := defaultRounds
	if raw := c.Query("rounds"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rounds must be a positive integer"})
			return
		}
		rounds = parsed
	}
	topology := graph.ParseTopology(c.Query("topology"))

	h.runAndStore(c, session, topology, rounds)
}

func (h *Handler) runAndStore(c *gin.Context, session *registry.Session, topology graph.Topology, rounds int) {
	market := map[string]string{
		"product":     session.Brief.ProductName,
		"description": session.Brief.Description,
		"market":      session.Brief.TargetMarket,
		"competitors": session.Brief.Competitors,
	}

	sim := simulation.New(topology, h.engine, simulation.WithInsights(h.engine))
	sim.OnRoundEnd = func(result core.RoundResult) {
		communication.BroadcastEvent(communication.EventRoundCompleted, result)
		core.PublishEvent(core.SubjectRoundCompleted, result)
	}

	h.monitor.RecordSimulationStarted()
	communication.BroadcastEvent(communication.EventSimulationStarted, gin.H{
		"session_id": session.ID,
		"rounds":     rounds,
		"topology":   topology,
	})
	core.PublishEvent(core.SubjectSimulationStarted, session.Brief)

	report, err := sim.Run(c.Request.Context(), session.Brief, *session.Config, rounds, market)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	registry.SaveResult(session.ID, report)
	h.monitor.RecordSimulationCompleted(rounds)
	communication.BroadcastEvent(communication.EventSimulationCompleted, gin.H{
		"session_id":     session.ID,
		"adoption_score": report.AdoptionScore,
	})
	core.PublishEvent(core.SubjectSimulationCompleted, report)

	c.JSON(http.StatusOK, report)
}

// GetReport - Fetches the stored report for a session
func (h *Handler) GetReport(c *gin.Context) {
	sessionID := c.Param("sessionId")

	session, ok := registry.GetSession(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if session.Result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No report available; run a simulation first"})
		return
	}

	c.JSON(http.StatusOK, session.Result)
}

type analyzeContentRequest struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// AnalyzeContent - Scans a URL or raw text into a brief and opens a session
func (h *Handler) AnalyzeContent(c *gin.Context) {
	var req analyzeContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.URL == "" && req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either url or text is required"})
		return
	}

	var (
		content *scanner.ScannedContent
		err     error
	)
	if req.URL != "" {
		content, err = h.scanner.ScanURL(c.Request.Context(), req.URL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
	} else {
		content = h.scanner.ScanText(req.Text)
	}

	brief := scanner.BriefFromContent(content)
	session := registry.CreateSession(brief)
	h.monitor.RecordContentScan()
	communication.BroadcastEvent(communication.EventContentAnalyzed, gin.H{
		"session_id":   session.ID,
		"content_type": content.Type,
	})
	core.PublishEvent(core.SubjectContentAnalyzed, content)

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"content":    content,
		"brief":      brief,
	})
}

type researchRequest struct {
	Query string `json:"query" binding:"required"`
}

// ConductResearch - Runs live web research for a market question
func (h *Handler) ConductResearch(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	if !h.engine.ResearchEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Research requires a SERP API key"})
		return
	}

	report, err := h.engine.ConductResearch(c.Request.Context(), req.Query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetHealth - Reports process and host health
func (h *Handler) GetHealth(c *gin.Context) {
	status := h.monitor.Health()
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":         status,
		"sessions":       registry.Count(),
		"llm_enabled":    h.engine.LLMEnabled(),
		"research_ready": h.engine.ResearchEnabled(),
	})
}

// GetPerformanceMetrics - Returns recent host resource snapshots
func (h *Handler) GetPerformanceMetrics(c *gin.Context) {
	snap := h.monitor.Collect()
	c.JSON(http.StatusOK, gin.H{
		"current": snap,
		"history": h.monitor.History(),
	})
}

// GetBusinessMetrics - Returns arena activity counters
func (h *Handler) GetBusinessMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.Business())
}
