// Package simulation runs the arena: it builds a population, wires the
// influence network, drives the round loop and aggregates the final
// report.
package simulation

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/dejavas-ai/arena/core"
	"github.com/dejavas-ai/arena/genome"
	"github.com/dejavas-ai/arena/graph"
)

// InsightGenerator enriches a finished run with aggregate insights. It is
// optional; a nil generator leaves Report.Insights empty.
type InsightGenerator interface {
	GenerateInsights(ctx context.Context, features []core.Feature, interactions []core.Interaction, market map[string]string) *core.InsightBundle
}

// Simulator orchestrates one arena run at a time. Instances are safe to
// reuse sequentially because all run state is scoped to the Run call.
type Simulator struct {
	topology graph.Topology
	analyzer Analyzer
	insights InsightGenerator
	rng      *rand.Rand

	// OnRoundEnd, when set, fires after each round with its result.
	// Used by the API layer to stream progress over websocket/NATS.
	OnRoundEnd func(core.RoundResult)
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSeed makes population construction and topology generation
// reproducible.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithInsights attaches an aggregate-insights backend to the final
// report.
func WithInsights(gen InsightGenerator) Option {
	return func(s *Simulator) {
		s.insights = gen
	}
}

// New creates a simulator. The analyzer is a required dependency; there
// is deliberately no package-level default backend.
func New(topology graph.Topology, analyzer Analyzer, opts ...Option) *Simulator {
	s := &Simulator{
		topology: topology,
		analyzer: analyzer,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes a full simulation: population and influence graph are
// built once from the initial state, then numRounds rounds run strictly
// sequentially, each reading the opinions the previous round mutated.
func (s *Simulator) Run(ctx context.Context, brief core.Brief, cfg core.AgentConfig, numRounds int, market map[string]string) (*core.Report, error) {
	agents := genome.BuildPopulation(cfg, s.rng)
	g := graph.Build(s.topology, agents, s.rng)
	log.Printf("Simulating %q: %d agents, %d influence edges, %d rounds",
		brief.ProductName, len(agents), g.EdgeCount(), numRounds)

	report := s.runWith(ctx, brief, agents, g, numRounds, market)
	return report, nil
}

// RunWith drives the round loop over a pre-built population and graph.
// Tests and the rerun path use it to pin down exact initial conditions.
func (s *Simulator) RunWith(ctx context.Context, brief core.Brief, agents []*core.Agent, g *graph.Graph, numRounds int, market map[string]string) *core.Report {
	return s.runWith(ctx, brief, agents, g, numRounds, market)
}

func (s *Simulator) runWith(ctx context.Context, brief core.Brief, agents []*core.Agent, g *graph.Graph, numRounds int, market map[string]string) *core.Report {
	history := make([]core.RoundResult, 0, numRounds)
	var allInteractions []core.Interaction

	for round := 1; round <= numRounds; round++ {
		result := RunRound(ctx, s.analyzer, brief.Features, agents, g, round, market)
		history = append(history, result)
		allInteractions = append(allInteractions, result.Interactions...)
		if s.OnRoundEnd != nil {
			s.OnRoundEnd(result)
		}
	}

	report := &core.Report{
		AdoptionScore:  AdoptionScore(agents),
		TopObjections:  TopObjections(agents),
		MustFix:        IdentifyCriticalIssues(agents),
		ArenaHealth:    ComputeArenaHealth(agents, allInteractions),
		RoundHistory:   history,
		AgentSummaries: summarize(agents),
	}
	if s.insights != nil {
		report.Insights = s.insights.GenerateInsights(ctx, brief.Features, allInteractions, market)
	}
	return report
}

func summarize(agents []*core.Agent) []core.AgentSummary {
	summaries := make([]core.AgentSummary, len(agents))
	for i, a := range agents {
		summaries[i] = a.Summarize()
	}
	return summaries
}
