package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/dejavas-ai/arena/ai"
	"github.com/dejavas-ai/arena/core"
	"github.com/dejavas-ai/arena/registry"
)

type SessionAnalysis struct {
	SessionID   string              `json:"session_id"`
	Insights    *core.InsightBundle `json:"insights"`
	LastUpdated time.Time           `json:"lastUpdated"`
}

// Extractor analyzes completed arena sessions
type Extractor struct {
	engine *ai.Engine
}

// NewExtractor creates a new insights extractor
func NewExtractor(engine *ai.Engine) *Extractor {
	return &Extractor{
		engine: engine,
	}
}

// AnalyzeSession generates advanced insights for a finished simulation
func (e *Extractor) AnalyzeSession(ctx context.Context, sessionID string) (*SessionAnalysis, error) {
	session, ok := registry.GetSession(sessionID)
	if !ok {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	if session.Result == nil {
		return nil, fmt.Errorf("session has no simulation result yet: %s", sessionID)
	}

	interactions := collectInteractions(session.Result)
	if len(interactions) == 0 {
		return nil, fmt.Errorf("no agent interactions recorded for session: %s", sessionID)
	}

	market := map[string]string{
		"product":     session.Brief.ProductName,
		"description": session.Brief.Description,
		"market":      session.Brief.TargetMarket,
		"competitors": session.Brief.Competitors,
	}

	bundle := e.engine.GenerateInsights(ctx, session.Brief.Features, interactions, market)

	return &SessionAnalysis{
		SessionID:   sessionID,
		Insights:    bundle,
		LastUpdated: time.Now(),
	}, nil
}

func collectInteractions(report *core.Report) []core.Interaction {
	var out []core.Interaction
	for _, round := range report.RoundHistory {
		out = append(out, round.Interactions...)
	}
	return out
}
