package simulation

import (
	"context"
	"sync"

	"github.com/dejavas-ai/arena/core"
	"github.com/dejavas-ai/arena/graph"
)

// influenceFactor damps how strongly a neighbor's opinion pulls on an
// agent during one propagation step.
const influenceFactor = 0.1

// Analyzer is the feature-analysis backend the executor fans out to. The
// contract requires a best-effort structured result: implementations
// must fall back internally rather than fail, so a round never observes
// an error from this boundary.
type Analyzer interface {
	AnalyzeFeature(ctx context.Context, feature core.Feature, agent core.AgentContext, market map[string]string) core.FeatureAnalysis
}

// RunRound executes one simulation round: every feature, in order, is
// analyzed by all agents concurrently, then influence propagates
// sequentially through the population.
//
// Features are strictly ordered because propagation for feature i+1 reads
// opinions already mutated by feature i. Within a feature the analysis
// fan-out is the only parallelism: each call touches only its own agent's
// snapshot, and nothing mutates shared state until the join barrier has
// passed.
func RunRound(ctx context.Context, analyzer Analyzer, features []core.Feature, agents []*core.Agent, g *graph.Graph, round int, market map[string]string) core.RoundResult {
	result := core.RoundResult{Round: round}

	for _, feature := range features {
		analyses := make([]core.FeatureAnalysis, len(agents))

		var wg sync.WaitGroup
		for i, agent := range agents {
			wg.Add(1)
			go func(i int, snapshot core.AgentContext) {
				defer wg.Done()
				analyses[i] = analyzer.AnalyzeFeature(ctx, feature, snapshot, market)
			}(i, agent.Context())
		}
		wg.Wait()

		// Apply each agent's own reaction before any propagation, so
		// every propagation step reads post-analysis opinions.
		for i, agent := range agents {
			agent.ShiftOpinion(analyses[i].OpinionShift)
			agent.SpendAttention(analyses[i].AttentionSpent)
			agent.Remember(analyses[i].Reasoning)
		}

		// Influence propagation, sequential in population order.
		// Predecessors arrive sorted by name, and successive deltas are
		// chained against the agent's already-updated opinion.
		for i, agent := range agents {
			interaction := interactionFrom(agent, feature, analyses[i])

			for _, source := range g.InfluencersOf(agent.Name) {
				influencer := findAgent(agents, source)
				if influencer == nil {
					continue
				}
				weight := g.InfluenceWeight(source, agent.Name)
				delta := (influencer.Opinion - agent.Opinion) * weight * influenceFactor
				agent.ShiftOpinion(delta)

				if delta < 0 {
					delta = -delta
				}
				interaction.InfluenceImpact += delta
				interaction.InfluencedBy = append(interaction.InfluencedBy, source)
			}

			interaction.Opinion = agent.Opinion
			result.Interactions = append(result.Interactions, interaction)
		}
	}

	result.AverageOpinion = meanOpinion(agents)
	return result
}

func interactionFrom(agent *core.Agent, feature core.Feature, analysis core.FeatureAnalysis) core.Interaction {
	return core.Interaction{
		AgentName:       agent.Name,
		Role:            agent.Genome.Role,
		FeatureTitle:    feature.Title,
		OpinionShift:    analysis.OpinionShift,
		AttentionSpent:  analysis.AttentionSpent,
		Reasoning:       analysis.Reasoning,
		Objections:      analysis.Objections,
		Suggestions:     analysis.Suggestions,
		InfluenceImpact: analysis.InfluenceImpact,
	}
}

func findAgent(agents []*core.Agent, name string) *core.Agent {
	for _, a := range agents {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func meanOpinion(agents []*core.Agent) float64 {
	if len(agents) == 0 {
		return 0
	}
	sum := 0.0
	for _, a := range agents {
		sum += a.Opinion
	}
	return sum / float64(len(agents))
}
