package ai

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dejavas-ai/arena/core"
)

// GenerateInsights is the aggregate-insights backend: it turns the full
// interaction history of a run into market, persona and competitive
// narratives. The scores and rankings are always computed locally; when
// an LLM is available it replaces the narrative text only, so the
// numbers stay reproducible.
func (e *Engine) GenerateInsights(ctx context.Context, features []core.Feature, interactions []core.Interaction, market map[string]string) *core.InsightBundle {
	bundle := heuristicInsights(features, interactions)

	if e.client != nil {
		if narrative, err := e.llmMarketNarrative(ctx, features, interactions, market); err == nil {
			bundle.MarketInsights = narrative
			bundle.Confidence = 0.85
		} else {
			log.Printf("LLM market insights failed, keeping heuristic narrative: %v", err)
		}
	}

	if market["competitors"] != "" {
		bundle.CompetitiveAnalysis, bundle.ThreatLevel, bundle.OpportunityScore = competitiveAssessment(features)
	}
	return bundle
}

func heuristicInsights(features []core.Feature, interactions []core.Interaction) *core.InsightBundle {
	if len(interactions) == 0 {
		return &core.InsightBundle{
			MarketInsights: "Insufficient data for market analysis",
			AdoptionScore:  50,
			TopObjections:  []string{"No agent feedback available"},
			TopSuggestions: []string{"Gather more agent feedback"},
			Confidence:     0.3,
		}
	}

	totalShift := 0.0
	var objections, suggestions []string
	byRole := make(map[core.Role][]float64)
	for _, it := range interactions {
		totalShift += it.OpinionShift
		objections = append(objections, it.Objections...)
		suggestions = append(suggestions, it.Suggestions...)
		byRole[it.Role] = append(byRole[it.Role], it.OpinionShift)
	}
	avgShift := totalShift / float64(len(interactions))

	receptiveness := make(map[core.Role]float64, len(byRole))
	for role, shifts := range byRole {
		sum := 0.0
		for _, s := range shifts {
			sum += s
		}
		receptiveness[role] = sum / float64(len(shifts))
	}

	return &core.InsightBundle{
		MarketInsights:       marketNarrative(features, avgShift),
		AdoptionScore:        core.Clamp((avgShift+1)*50, 0, 100),
		TopObjections:        rankStrings(objections, 5),
		TopSuggestions:       rankStrings(suggestions, 5),
		PersonaInsights:      personaNarrative(receptiveness),
		PersonaReceptiveness: receptiveness,
		Recommendations:      personaRecommendations(receptiveness),
		Confidence:           0.8,
	}
}

// rankStrings orders values by frequency (ties alphabetical) and keeps
// the top n distinct entries.
func rankStrings(values []string, n int) []string {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	distinct := make([]string, 0, len(counts))
	for v := range counts {
		distinct = append(distinct, v)
	}
	sort.Slice(distinct, func(i, j int) bool {
		if counts[distinct[i]] != counts[distinct[j]] {
			return counts[distinct[i]] > counts[distinct[j]]
		}
		return distinct[i] < distinct[j]
	})
	if len(distinct) > n {
		distinct = distinct[:n]
	}
	return distinct
}

func marketNarrative(features []core.Feature, avgShift float64) string {
	aligned := 0
	for _, f := range features {
		text := strings.ToLower(f.Title + " " + f.Description)
		for _, trend := range currentTrends {
			if strings.Contains(text, trend) {
				aligned++
				break
			}
		}
	}
	if aligned > 0 {
		return fmt.Sprintf("Features show alignment with current market trends (%d of %d); average opinion shift %.3f suggests positive reception.", aligned, len(features), avgShift)
	}
	return fmt.Sprintf("Features may need trend alignment to maximize market appeal; average opinion shift %.3f.", avgShift)
}

func personaNarrative(receptiveness map[core.Role]float64) string {
	roles := make([]core.Role, 0, len(receptiveness))
	for role := range receptiveness {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	var b strings.Builder
	b.WriteString("Persona analysis reveals varying receptiveness across segments:\n")
	for _, role := range roles {
		score := receptiveness[role]
		switch {
		case score > 0.3:
			fmt.Fprintf(&b, "- %s personas are highly receptive (score: %.2f)\n", role, score)
		case score < -0.3:
			fmt.Fprintf(&b, "- %s personas have significant concerns (score: %.2f)\n", role, score)
		default:
			fmt.Fprintf(&b, "- %s personas show mixed reactions (score: %.2f)\n", role, score)
		}
	}
	return b.String()
}

func personaRecommendations(receptiveness map[core.Role]float64) []string {
	if len(receptiveness) == 0 {
		return nil
	}
	var most, least core.Role
	first := true
	for role := range receptiveness {
		if first {
			most, least = role, role
			first = false
			continue
		}
		if receptiveness[role] > receptiveness[most] || (receptiveness[role] == receptiveness[most] && role < most) {
			most = role
		}
		if receptiveness[role] < receptiveness[least] || (receptiveness[role] == receptiveness[least] && role < least) {
			least = role
		}
	}

	var recs []string
	if receptiveness[most] > 0.5 {
		recs = append(recs, fmt.Sprintf("Focus marketing efforts on %s personas as primary advocates", most))
	}
	if receptiveness[least] < -0.3 {
		recs = append(recs, fmt.Sprintf("Address concerns of %s personas to improve overall adoption", least))
	}
	if len(receptiveness) > 2 {
		recs = append(recs, "Consider persona-specific messaging to address varying receptiveness levels")
	}
	return recs
}

// competitiveAssessment scores positioning from the share of features
// that carry differentiating signals.
func competitiveAssessment(features []core.Feature) (analysis, threatLevel string, opportunity float64) {
	quality := 0
	for _, f := range features {
		text := strings.ToLower(f.Description)
		if strings.Contains(text, "ai") || strings.Contains(text, "automation") || strings.Contains(text, "integration") {
			quality++
		}
	}
	total := len(features)
	position := "weak"
	threatLevel = "high"
	opportunity = 0.3
	switch {
	case total > 0 && float64(quality) > float64(total)*0.6:
		position, threatLevel, opportunity = "strong", "low", 0.8
	case total > 0 && float64(quality) > float64(total)*0.3:
		position, threatLevel, opportunity = "moderate", "medium", 0.6
	}
	analysis = fmt.Sprintf("Product shows %s competitive positioning with %d/%d high-quality features. Threat level is %s with opportunity score of %.1f.",
		position, quality, total, threatLevel, opportunity)
	return analysis, threatLevel, opportunity
}

func (e *Engine) llmMarketNarrative(ctx context.Context, features []core.Feature, interactions []core.Interaction, market map[string]string) (string, error) {
	titles := make([]string, 0, len(features))
	for _, f := range features {
		titles = append(titles, f.Title)
	}
	totalShift := 0.0
	objectionCount, suggestionCount := 0, 0
	for _, it := range interactions {
		totalShift += it.OpinionShift
		objectionCount += len(it.Objections)
		suggestionCount += len(it.Suggestions)
	}
	avgShift := 0.0
	if len(interactions) > 0 {
		avgShift = totalShift / float64(len(interactions))
	}

	var b strings.Builder
	b.WriteString("Based on the following simulated stakeholder reactions, provide strategic market insights.\n\n")
	fmt.Fprintf(&b, "## Features Analyzed:\n%s\n\n", strings.Join(titles, ", "))
	fmt.Fprintf(&b, "## Reaction Summary:\n- Average opinion shift: %.3f\n- Total objections: %d\n- Total suggestions: %d\n\n", avgShift, objectionCount, suggestionCount)
	if len(market) > 0 {
		fmt.Fprintf(&b, "## Market Context:\n%s\n\n", core.EncodeJSON(market))
	}
	b.WriteString("Cover: overall market reception, key success factors, potential failure points, competitive positioning, and recommended next steps.")

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: b.String()},
		},
		MaxTokens:   800,
		Temperature: e.config.Temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
