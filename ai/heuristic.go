package ai

import (
	"fmt"
	"strings"

	"github.com/dejavas-ai/arena/core"
)

// The heuristic analyzer is the deterministic fallback behind the LLM: it
// scores keyword signals against the agent's genome and never errors.
// Identical inputs always produce identical results, which keeps
// simulation rounds reproducible when no API key is configured.

var positiveKeywords = []string{
	"ai", "automation", "integration", "mobile", "cloud",
	"secure", "fast", "easy", "intuitive",
}

var negativeKeywords = []string{
	"complex", "expensive", "slow", "difficult", "limited", "basic", "outdated",
}

var currentTrends = []string{
	"ai", "sustainability", "personalization", "mobile", "voice",
}

// roleAnalyzer is the per-role persona logic. One handler per role keeps
// the dispatch closed over the known role set.
type roleAnalyzer interface {
	assess(feature core.Feature, agent core.AgentContext) roleAssessment
}

type roleAssessment struct {
	shift      float64
	objections []string
}

var roleAnalyzers = map[core.Role]roleAnalyzer{
	core.RoleCustomer:     customerAnalyzer{},
	core.RoleCompetitor:   competitorAnalyzer{},
	core.RoleInfluencer:   influencerAnalyzer{},
	core.RoleInternalTeam: internalAnalyzer{},
}

func heuristicAnalyze(feature core.Feature, agent core.AgentContext, market map[string]string) core.FeatureAnalysis {
	score := keywordScore(feature) * personalityModifier(agent.Genome)

	assessment := roleAssessment{}
	if analyzer, ok := roleAnalyzers[agent.Role]; ok {
		assessment = analyzer.assess(feature, agent)
	}
	score = core.Clamp(score+assessment.shift, -1, 1)

	objections := assessment.objections
	suggestions := []string{}
	if score < 0 {
		suggestions = append(suggestions,
			"Simplify the user interface and onboarding process",
			"Provide better documentation and support resources",
			"Consider phased rollout to gather user feedback",
		)
	}
	if len(objections) == 0 {
		objections = []string{"No major objections identified"}
	}
	if len(suggestions) == 0 {
		suggestions = []string{"Feature appears well-implemented"}
	}
	if len(objections) > 3 {
		objections = objections[:3]
	}
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}

	return core.FeatureAnalysis{
		FeatureTitle:    feature.Title,
		OpinionShift:    score,
		Reasoning:       reasoningFor(agent.Role, feature.Title, score),
		Objections:      objections,
		Suggestions:     suggestions,
		AttentionSpent:  attentionSpend(feature, agent, score),
		InfluenceImpact: core.Clamp(agent.Genome.InfluenceScore, 0, 1),
	}
}

// keywordScore reads positive and negative signals from the feature text.
func keywordScore(feature core.Feature) float64 {
	text := strings.ToLower(feature.Title + " " + feature.Description)
	score := 0.0
	for _, kw := range positiveKeywords {
		if strings.Contains(text, kw) {
			score += 0.1
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(text, kw) {
			score -= 0.15
		}
	}
	return score
}

// personalityModifier scales the keyword score by the agent's tags,
// bounded to [0.3, 2.0].
func personalityModifier(genome core.Genome) float64 {
	modifier := 1.0
	for _, trait := range genome.Traits {
		switch trait {
		case core.TraitEarlyAdopter:
			modifier += 0.3
		case core.TraitSkeptic:
			modifier -= 0.4
		case core.TraitEnthusiast:
			modifier += 0.2
		case core.TraitLaggard:
			modifier -= 0.3
		}
	}
	return core.Clamp(modifier, 0.3, 2.0)
}

type customerAnalyzer struct{}

func (customerAnalyzer) assess(feature core.Feature, agent core.AgentContext) roleAssessment {
	desc := strings.ToLower(feature.Description)
	var a roleAssessment

	age := agent.Genome.Demographics.Age
	if age > 0 && age < 25 {
		a.shift += 0.02
	} else if age > 50 {
		a.shift -= 0.02
	}

	techSavviness := agent.Genome.Psychographics["tech_savviness"]
	a.shift += (techSavviness - 0.5) * 0.1

	if strings.Contains(desc, "free") || strings.Contains(desc, "trial") {
		priceSensitivity := agent.Genome.Psychographics["price_sensitivity"]
		a.shift += 0.05 * (1 - priceSensitivity)
	}

	if strings.Contains(desc, "complex") || strings.Contains(desc, "advanced") {
		a.objections = append(a.objections, "Feature complexity may overwhelm average users")
	}
	if strings.Contains(desc, "expensive") || strings.Contains(desc, "premium") {
		a.objections = append(a.objections, "Pricing may be too high for target market")
	}
	if strings.Contains(desc, "integration") {
		a.objections = append(a.objections, "Integration requirements may be too complex")
	}
	return a
}

type competitorAnalyzer struct{}

func (competitorAnalyzer) assess(feature core.Feature, agent core.AgentContext) roleAssessment {
	desc := strings.ToLower(feature.Description)
	var a roleAssessment

	// A credible feature reads as a threat, dragging the competitor's
	// opinion down in proportion to how aggressive they are.
	if strings.Contains(desc, "ai") || strings.Contains(desc, "automation") {
		a.shift -= 0.1 * agent.Genome.Psychographics["aggressiveness"]
		a.objections = append(a.objections, "AI features may not be mature enough for production")
	}
	if strings.Contains(desc, "mobile") {
		a.objections = append(a.objections, "Mobile-first approach may alienate desktop users")
	}

	innovationFocus := agent.Genome.Psychographics["innovation_focus"]
	a.shift += (innovationFocus - 0.5) * 0.05
	return a
}

type influencerAnalyzer struct{}

func (influencerAnalyzer) assess(feature core.Feature, agent core.AgentContext) roleAssessment {
	desc := strings.ToLower(feature.Title + " " + feature.Description)
	var a roleAssessment

	for _, trend := range currentTrends {
		if strings.Contains(desc, trend) {
			a.shift += 0.1
			break
		}
	}

	engagementRate := agent.Genome.Psychographics["engagement_rate"]
	a.shift += (engagementRate - 0.5) * 0.06

	if strings.Contains(desc, "technical") {
		a.objections = append(a.objections, "Too technical for general audience engagement")
	}
	if strings.Contains(desc, "niche") {
		a.objections = append(a.objections, "Limited appeal may reduce shareability")
	}
	return a
}

type internalAnalyzer struct{}

func (internalAnalyzer) assess(feature core.Feature, agent core.AgentContext) roleAssessment {
	desc := strings.ToLower(feature.Description)
	var a roleAssessment

	switch agent.Genome.Demographics.TeamRole {
	case "pm":
		if strings.Contains(desc, "user") || strings.Contains(desc, "customer") {
			a.shift += 0.1
		}
	case "sales":
		if strings.Contains(desc, "pricing") || strings.Contains(desc, "roi") {
			a.shift += 0.1
		}
	case "cx":
		if strings.Contains(desc, "support") || strings.Contains(desc, "help") {
			a.shift += 0.1
		}
	}
	return a
}

func reasoningFor(role core.Role, featureTitle string, score float64) string {
	switch {
	case score > 0.3:
		switch role {
		case core.RoleCustomer:
			return fmt.Sprintf("As a customer, I'm impressed by %s. It addresses real pain points and offers clear value.", featureTitle)
		case core.RoleCompetitor:
			return fmt.Sprintf("%s represents a significant competitive threat. The positioning is concerning for our market share.", featureTitle)
		case core.RoleInfluencer:
			return fmt.Sprintf("%s is exactly what my audience needs right now. Great shareability potential.", featureTitle)
		default:
			return fmt.Sprintf("From an internal perspective, %s aligns well with our strategic goals.", featureTitle)
		}
	case score < -0.3:
		switch role {
		case core.RoleCustomer:
			return fmt.Sprintf("I have serious concerns about %s. It doesn't address my core needs effectively.", featureTitle)
		case core.RoleCompetitor:
			return fmt.Sprintf("%s has several vulnerabilities we can exploit. It won't pose a significant threat.", featureTitle)
		case core.RoleInfluencer:
			return fmt.Sprintf("%s doesn't align with current trends and won't resonate with my audience.", featureTitle)
		default:
			return fmt.Sprintf("Internally, %s raises concerns about resource allocation and strategic alignment.", featureTitle)
		}
	default:
		return fmt.Sprintf("My opinion on %s is mixed. There are positive aspects, but also areas that need improvement.", featureTitle)
	}
}

// attentionSpend estimates how many attention tokens the agent burns on
// this feature, capped at whatever budget remains.
func attentionSpend(feature core.Feature, agent core.AgentContext, score float64) int {
	spend := 15
	if score > 0.5 || score < -0.5 {
		spend += 10
	}
	switch agent.Role {
	case core.RoleCompetitor:
		spend += 5
	case core.RoleInfluencer:
		spend += 8
	}
	if len(feature.Description) > 100 {
		spend += 5
	}
	if spend > agent.AttentionLeft {
		spend = agent.AttentionLeft
	}
	if spend < 0 {
		spend = 0
	}
	return spend
}
