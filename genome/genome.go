// Package genome builds agent populations from role-percentage
// configurations. Each factory draws a fresh persona profile from fixed
// per-role ranges, so two runs with the same seed produce the same
// population.
package genome

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/dejavas-ai/arena/core"
)

// PopulationSize is the fixed number of agents in an arena run.
const PopulationSize = 20

// DefaultAttentionBudget applies to every role except influencers, who
// get InfluencerAttentionBudget.
const (
	DefaultAttentionBudget    = 100
	InfluencerAttentionBudget = 150
)

// internalRoles are cycled round-robin over internal-team agents.
var internalRoles = []string{"pm", "sales", "cx"}

// BuildPopulation converts a role configuration into a concrete agent
// list. Customer, competitor and influencer counts truncate; the
// internal team absorbs the remainder. A configuration summing above 100
// would make that remainder negative, so it clamps to zero and the
// misconfiguration is logged rather than crashing the run.
func BuildPopulation(cfg core.AgentConfig, rng *rand.Rand) []*core.Agent {
	numCustomers := cfg.CustomerPercentage * PopulationSize / 100
	numCompetitors := cfg.CompetitorPercentage * PopulationSize / 100
	numInfluencers := cfg.InfluencerPercentage * PopulationSize / 100
	numInternal := PopulationSize - numCustomers - numCompetitors - numInfluencers
	if numInternal < 0 {
		log.Printf("Agent percentages sum above 100 (%d); internal team clamped to 0", cfg.Sum())
		numInternal = 0
	}

	agents := make([]*core.Agent, 0, PopulationSize)
	taken := make(map[string]bool)
	add := func(a *core.Agent) {
		for taken[a.Name] {
			a.Name = uniqueName(a.Name, rng)
		}
		taken[a.Name] = true
		agents = append(agents, a)
	}

	for i := 0; i < numCustomers; i++ {
		add(NewCustomer(rng))
	}
	for i := 0; i < numCompetitors; i++ {
		add(NewCompetitor(rng))
	}
	for i := 0; i < numInfluencers; i++ {
		add(NewInfluencer(rng))
	}
	for i := 0; i < numInternal; i++ {
		add(NewInternalTeam(internalRoles[i%len(internalRoles)], rng))
	}

	return agents
}

// NewCustomer creates a customer agent with realistic demographics.
func NewCustomer(rng *rand.Rand) *core.Agent {
	genome := core.Genome{
		Role: core.RoleCustomer,
		Demographics: core.Demographics{
			Age:         18 + rng.Intn(48), // 18-65
			IncomeLevel: pick(rng, "low", "middle", "high"),
			Location:    pick(rng, "urban", "suburban", "rural"),
			Education:   pick(rng, "high_school", "college", "graduate"),
		},
		Psychographics: map[string]float64{
			"tech_savviness":    uniform(rng, 0.2, 1.0),
			"price_sensitivity": uniform(rng, 0.3, 0.9),
			"brand_loyalty":     uniform(rng, 0.1, 0.8),
			"social_influence":  uniform(rng, 0.1, 0.7),
		},
		Traits:          sampleTraits(rng, 1+rng.Intn(3)),
		InfluenceScore:  uniform(rng, 0.1, 0.6),
		AttentionBudget: DefaultAttentionBudget,
	}
	return core.NewAgent(agentName("customer", rng), genome)
}

// NewCompetitor creates a competitor agent. Competitors are always
// skeptics with influence skewed high.
func NewCompetitor(rng *rand.Rand) *core.Agent {
	genome := core.Genome{
		Role: core.RoleCompetitor,
		Psychographics: map[string]float64{
			"aggressiveness":   uniform(rng, 0.4, 0.9),
			"market_share":     uniform(rng, 0.1, 0.8),
			"innovation_focus": uniform(rng, 0.3, 0.9),
		},
		Traits:          []core.Trait{core.TraitSkeptic},
		InfluenceScore:  uniform(rng, 0.6, 0.9),
		AttentionBudget: DefaultAttentionBudget,
	}
	return core.NewAgent(agentName("competitor", rng), genome)
}

// NewInfluencer creates an influencer agent with high reach and a larger
// attention budget.
func NewInfluencer(rng *rand.Rand) *core.Agent {
	genome := core.Genome{
		Role: core.RoleInfluencer,
		Psychographics: map[string]float64{
			"reach":           uniform(rng, 0.7, 1.0),
			"credibility":     uniform(rng, 0.5, 0.9),
			"engagement_rate": uniform(rng, 0.3, 0.8),
		},
		Traits:          []core.Trait{core.TraitInfluencer},
		InfluenceScore:  uniform(rng, 0.7, 1.0),
		AttentionBudget: InfluencerAttentionBudget,
	}
	return core.NewAgent(agentName("influencer", rng), genome)
}

// NewInternalTeam creates an internal stakeholder for the given sub-role
// (pm, sales or cx).
func NewInternalTeam(teamRole string, rng *rand.Rand) *core.Agent {
	genome := core.Genome{
		Role:         core.RoleInternalTeam,
		Demographics: core.Demographics{TeamRole: teamRole},
		Psychographics: map[string]float64{
			"department_bias": uniform(rng, 0.3, 0.8),
			"company_loyalty": uniform(rng, 0.6, 0.9),
			"risk_tolerance":  uniform(rng, 0.2, 0.7),
		},
		Traits:          []core.Trait{core.TraitEnthusiast},
		InfluenceScore:  uniform(rng, 0.4, 0.7),
		AttentionBudget: DefaultAttentionBudget,
	}
	name := fmt.Sprintf("%s_%d", strings.ToUpper(teamRole), 100+rng.Intn(900))
	return core.NewAgent(name, genome)
}

func agentName(role string, rng *rand.Rand) string {
	return fmt.Sprintf("%s_%d", role, 1000+rng.Intn(9000))
}

func uniqueName(base string, rng *rand.Rand) string {
	return fmt.Sprintf("%s_%d", base, rng.Intn(10))
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func pick(rng *rand.Rand, options ...string) string {
	return options[rng.Intn(len(options))]
}

// sampleTraits draws n distinct personality tags.
func sampleTraits(rng *rand.Rand, n int) []core.Trait {
	perm := rng.Perm(len(core.AllTraits))
	if n > len(perm) {
		n = len(perm)
	}
	traits := make([]core.Trait, 0, n)
	for _, idx := range perm[:n] {
		traits = append(traits, core.AllTraits[idx])
	}
	return traits
}
