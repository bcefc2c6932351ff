package insights

import (
	"context"
	"strings"
	"testing"

	"github.com/dejavas-ai/arena/ai"
	"github.com/dejavas-ai/arena/core"
	"github.com/dejavas-ai/arena/registry"
)

func testBrief() core.Brief {
	return core.Brief{
		ProductName:  "SyncMaster Pro",
		Description:  "Cross-device file synchronization",
		TargetMarket: "remote teams",
		Competitors:  "AcmeSync",
		Features: []core.Feature{
			{Title: "AI Sync", Description: "ai automation keeps devices in sync"},
		},
	}
}

func finishedReport() *core.Report {
	return &core.Report{
		AdoptionScore: 72,
		RoundHistory: []core.RoundResult{
			{
				Round: 1,
				Interactions: []core.Interaction{
					{AgentName: "customer_1", Role: core.RoleCustomer, FeatureTitle: "AI Sync", Opinion: 0.7, OpinionShift: 0.2},
					{AgentName: "competitor_1", Role: core.RoleCompetitor, FeatureTitle: "AI Sync", Opinion: 0.3, OpinionShift: -0.1},
				},
			},
			{
				Round: 2,
				Interactions: []core.Interaction{
					{AgentName: "customer_1", Role: core.RoleCustomer, FeatureTitle: "AI Sync", Opinion: 0.75, OpinionShift: 0.05},
				},
			},
		},
	}
}

func TestAnalyzeSession(t *testing.T) {
	extractor := NewExtractor(ai.NewEngine(""))
	ctx := context.Background()

	t.Run("unknown session", func(t *testing.T) {
		_, err := extractor.AnalyzeSession(ctx, "no-such-session")
		if err == nil || !strings.Contains(err.Error(), "session not found") {
			t.Fatalf("expected session-not-found error, got %v", err)
		}
	})

	t.Run("session without a result", func(t *testing.T) {
		session := registry.CreateSession(testBrief())
		_, err := extractor.AnalyzeSession(ctx, session.ID)
		if err == nil || !strings.Contains(err.Error(), "no simulation result") {
			t.Fatalf("expected no-result error, got %v", err)
		}
	})

	t.Run("result without interactions", func(t *testing.T) {
		session := registry.CreateSession(testBrief())
		registry.SaveResult(session.ID, &core.Report{AdoptionScore: 50})
		_, err := extractor.AnalyzeSession(ctx, session.ID)
		if err == nil || !strings.Contains(err.Error(), "no agent interactions") {
			t.Fatalf("expected no-interactions error, got %v", err)
		}
	})

	t.Run("finished session", func(t *testing.T) {
		session := registry.CreateSession(testBrief())
		registry.SaveResult(session.ID, finishedReport())

		analysis, err := extractor.AnalyzeSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("AnalyzeSession: %v", err)
		}
		if analysis.SessionID != session.ID {
			t.Errorf("session ID %q does not match %q", analysis.SessionID, session.ID)
		}
		if analysis.Insights == nil {
			t.Fatal("analysis is missing the insight bundle")
		}
		if analysis.Insights.MarketInsights == "" {
			t.Error("insight bundle is missing the market narrative")
		}
		// The brief names a competitor, so the competitive section is present.
		if analysis.Insights.CompetitiveAnalysis == "" {
			t.Error("competitor context in the brief should produce a competitive analysis")
		}
		if analysis.LastUpdated.IsZero() {
			t.Error("analysis timestamp was not set")
		}
	})
}

func TestCollectInteractions(t *testing.T) {
	report := finishedReport()
	got := collectInteractions(report)
	if len(got) != 3 {
		t.Fatalf("flattened %d interactions, want 3", len(got))
	}
	if got[0].AgentName != "customer_1" || got[2].OpinionShift != 0.05 {
		t.Errorf("round order not preserved: %+v", got)
	}
}
