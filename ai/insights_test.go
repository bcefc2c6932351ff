package ai

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/dejavas-ai/arena/core"
)

func TestGenerateInsightsEmptyInteractions(t *testing.T) {
	engine := NewEngine("")
	bundle := engine.GenerateInsights(context.Background(), nil, nil, nil)

	if bundle.MarketInsights != "Insufficient data for market analysis" {
		t.Errorf("unexpected narrative %q", bundle.MarketInsights)
	}
	if bundle.AdoptionScore != 50 {
		t.Errorf("adoption score = %f, want neutral 50", bundle.AdoptionScore)
	}
	if bundle.Confidence != 0.3 {
		t.Errorf("confidence = %f, want 0.3", bundle.Confidence)
	}
}

func TestGenerateInsightsAdoptionScaling(t *testing.T) {
	features := []core.Feature{{Title: "AI helper", Description: "ai powered"}}
	interactions := []core.Interaction{
		{AgentName: "a", Role: core.RoleCustomer, OpinionShift: 0.5},
		{AgentName: "b", Role: core.RoleCustomer, OpinionShift: 0.3},
	}

	engine := NewEngine("")
	bundle := engine.GenerateInsights(context.Background(), features, interactions, nil)

	// avg shift 0.4 maps to (0.4+1)*50 = 70.
	if math.Abs(bundle.AdoptionScore-70) > 1e-9 {
		t.Errorf("adoption score = %f, want 70", bundle.AdoptionScore)
	}
	if bundle.Confidence != 0.8 {
		t.Errorf("confidence = %f, want 0.8", bundle.Confidence)
	}
	if got := bundle.PersonaReceptiveness[core.RoleCustomer]; math.Abs(got-0.4) > 1e-9 {
		t.Errorf("customer receptiveness = %f, want 0.4", got)
	}
}

func TestGenerateInsightsCompetitiveSection(t *testing.T) {
	features := []core.Feature{
		{Title: "Sync", Description: "ai automation everywhere"},
		{Title: "Export", Description: "integration with spreadsheets"},
	}
	interactions := []core.Interaction{{AgentName: "a", Role: core.RoleCustomer, OpinionShift: 0.1}}

	engine := NewEngine("")

	t.Run("without competitors context", func(t *testing.T) {
		bundle := engine.GenerateInsights(context.Background(), features, interactions, map[string]string{})
		if bundle.CompetitiveAnalysis != "" || bundle.ThreatLevel != "" {
			t.Error("competitive section should be empty without competitor context")
		}
	})

	t.Run("with competitors context", func(t *testing.T) {
		market := map[string]string{"competitors": "AcmeCorp"}
		bundle := engine.GenerateInsights(context.Background(), features, interactions, market)
		// Both features carry differentiating signals: 2/2 > 0.6 share.
		if bundle.ThreatLevel != "low" {
			t.Errorf("threat level = %q, want low", bundle.ThreatLevel)
		}
		if bundle.OpportunityScore != 0.8 {
			t.Errorf("opportunity = %f, want 0.8", bundle.OpportunityScore)
		}
		if !strings.Contains(bundle.CompetitiveAnalysis, "strong") {
			t.Errorf("analysis should state strong positioning, got %q", bundle.CompetitiveAnalysis)
		}
	})
}

func TestRankStrings(t *testing.T) {
	values := []string{"b", "a", "b", "c", "a", "b", "d"}
	got := rankStrings(values, 3)
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rankStrings = %v, want %v", got, want)
	}
}

func TestRankStringsTiesAlphabetical(t *testing.T) {
	got := rankStrings([]string{"zeta", "alpha", "mike"}, 5)
	want := []string{"alpha", "mike", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rankStrings = %v, want %v", got, want)
	}
}

func TestMarketNarrativeTrendAlignment(t *testing.T) {
	aligned := []core.Feature{{Title: "AI planner", Description: "smart suggestions"}}
	if got := marketNarrative(aligned, 0.2); !strings.Contains(got, "alignment with current market trends") {
		t.Errorf("unexpected narrative %q", got)
	}

	plain := []core.Feature{{Title: "Spreadsheet export", Description: "csv files"}}
	if got := marketNarrative(plain, 0.2); !strings.Contains(got, "may need trend alignment") {
		t.Errorf("unexpected narrative %q", got)
	}
}

func TestPersonaNarrativeThresholds(t *testing.T) {
	receptiveness := map[core.Role]float64{
		core.RoleCustomer:   0.5,
		core.RoleCompetitor: -0.5,
		core.RoleInfluencer: 0.0,
	}
	narrative := personaNarrative(receptiveness)

	if !strings.Contains(narrative, "customer personas are highly receptive") {
		t.Errorf("missing receptive line in %q", narrative)
	}
	if !strings.Contains(narrative, "competitor personas have significant concerns") {
		t.Errorf("missing concern line in %q", narrative)
	}
	if !strings.Contains(narrative, "influencer personas show mixed reactions") {
		t.Errorf("missing mixed line in %q", narrative)
	}
}

func TestPersonaRecommendations(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if recs := personaRecommendations(nil); recs != nil {
			t.Errorf("expected no recommendations, got %v", recs)
		}
	})

	t.Run("advocate and detractor", func(t *testing.T) {
		receptiveness := map[core.Role]float64{
			core.RoleCustomer:   0.6,
			core.RoleCompetitor: -0.4,
			core.RoleInfluencer: 0.1,
		}
		recs := personaRecommendations(receptiveness)
		joined := strings.Join(recs, "\n")
		if !strings.Contains(joined, "customer personas as primary advocates") {
			t.Errorf("missing advocate recommendation in %v", recs)
		}
		if !strings.Contains(joined, "competitor personas") {
			t.Errorf("missing detractor recommendation in %v", recs)
		}
		if !strings.Contains(joined, "persona-specific messaging") {
			t.Errorf("missing multi-persona recommendation in %v", recs)
		}
	})
}
