package simulation

import (
	"fmt"

	"github.com/dejavas-ai/arena/core"
)

// ComputeArenaHealth derives the macro social-dynamics metrics from the
// final agent state and the full interaction log of a run.
func ComputeArenaHealth(agents []*core.Agent, interactions []core.Interaction) core.ArenaHealth {
	return core.ArenaHealth{
		Polarization:          polarization(agents),
		AdvocateSaboteurRatio: advocateRatio(agents),
		ViralPathLength:       viralPathLength(interactions),
		EngagementDensity:     engagementDensity(interactions),
	}
}

// polarization scales opinion variance to [0,1]. Variance of a variable
// bounded to [0,1] is at most 0.25, so ×4 normalizes the range.
func polarization(agents []*core.Agent) float64 {
	if len(agents) == 0 {
		return 0
	}
	opinions := make([]float64, len(agents))
	for i, a := range agents {
		opinions[i] = a.Opinion
	}
	v := variance(opinions)
	if scaled := v * 4; scaled < 1 {
		return scaled
	}
	return 1
}

// advocateRatio divides advocates (opinion > 0.7) by saboteurs
// (opinion < 0.3), flooring the denominator at 1.
func advocateRatio(agents []*core.Agent) float64 {
	advocates, saboteurs := 0, 0
	for _, a := range agents {
		switch {
		case a.Opinion > 0.7:
			advocates++
		case a.Opinion < 0.3:
			saboteurs++
		}
	}
	if saboteurs < 1 {
		saboteurs = 1
	}
	return float64(advocates) / float64(saboteurs)
}

// viralPathLength is a spread heuristic: the mean influence impact
// across all logged interactions.
func viralPathLength(interactions []core.Interaction) float64 {
	if len(interactions) == 0 {
		return 0
	}
	total := 0.0
	for _, it := range interactions {
		total += it.InfluenceImpact
	}
	return total / float64(len(interactions))
}

// engagementDensity counts distinct unordered agent pairs that actually
// exchanged influence, relative to the interaction count. The executor
// logs each propagation source in InfluencedBy, which is what makes
// this pair set non-empty.
func engagementDensity(interactions []core.Interaction) float64 {
	if len(interactions) == 0 {
		return 0
	}
	pairs := make(map[string]bool)
	for _, it := range interactions {
		for _, source := range it.InfluencedBy {
			a, b := source, it.AgentName
			if a > b {
				a, b = b, a
			}
			pairs[a+"\x00"+b] = true
		}
	}
	return float64(len(pairs)) / float64(len(interactions))
}

// AdoptionScore is the influence-weighted mean final opinion of
// customer-role agents, scaled to [0,100]. No customers means 0.
func AdoptionScore(agents []*core.Agent) float64 {
	weightedOpinion, totalWeight := 0.0, 0.0
	for _, a := range agents {
		if a.Genome.Role != core.RoleCustomer {
			continue
		}
		weightedOpinion += a.Opinion * a.Genome.InfluenceScore
		totalWeight += a.Genome.InfluenceScore
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedOpinion / totalWeight * 100
}

// TopObjections collects one line per dissenting agent (final opinion
// below 0.4), capped at five, in population order.
func TopObjections(agents []*core.Agent) []string {
	var objections []string
	for _, a := range agents {
		if a.Opinion >= 0.4 {
			continue
		}
		memory := a.LastMemory()
		if memory == "" {
			memory = "General concerns"
		}
		objections = append(objections, fmt.Sprintf("%s (%s): %s", a.Name, a.Genome.Role, memory))
		if len(objections) == 5 {
			break
		}
	}
	return objections
}

// Fixed messages appended by the critical-issue checks.
const (
	IssueLowCustomerAdoption      = "Low customer adoption - review feature-market fit"
	IssueCompetitiveVulnerability = "Competitive vulnerability detected - strengthen differentiation"
	IssueInternalMisalignment     = "Internal team misalignment - address cross-functional concerns"
)

// IdentifyCriticalIssues runs three independent checks over the final
// population, each contributing at most one fixed message.
func IdentifyCriticalIssues(agents []*core.Agent) []string {
	var issues []string

	if opinions := roleOpinions(agents, core.RoleCustomer); len(opinions) > 0 && mean(opinions) < 0.5 {
		issues = append(issues, IssueLowCustomerAdoption)
	}
	if opinions := roleOpinions(agents, core.RoleCompetitor); len(opinions) > 0 && mean(opinions) < 0.3 {
		issues = append(issues, IssueCompetitiveVulnerability)
	}
	if opinions := roleOpinions(agents, core.RoleInternalTeam); len(opinions) > 0 && variance(opinions) > 0.1 {
		issues = append(issues, IssueInternalMisalignment)
	}
	return issues
}

func roleOpinions(agents []*core.Agent, role core.Role) []float64 {
	var opinions []float64
	for _, a := range agents {
		if a.Genome.Role == role {
			opinions = append(opinions, a.Opinion)
		}
	}
	return opinions
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	total := 0.0
	for _, v := range values {
		d := v - m
		total += d * d
	}
	return total / float64(len(values))
}
