package core

// Feature is a single proposed product feature under evaluation.
type Feature struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// Brief is the product proposal an arena run debates.
type Brief struct {
	ProductName  string    `json:"product_name" binding:"required"`
	Description  string    `json:"description,omitempty"`
	TargetMarket string    `json:"target_market,omitempty"`
	Competitors  string    `json:"competitors,omitempty"`
	Features     []Feature `json:"features" binding:"required,min=1"`
}

// AgentConfig splits the population across the four roles. Percentages are
// validated by the API layer; the engine trusts them.
type AgentConfig struct {
	CustomerPercentage     int `json:"customer_percentage"`
	CompetitorPercentage   int `json:"competitor_percentage"`
	InfluencerPercentage   int `json:"influencer_percentage"`
	InternalTeamPercentage int `json:"internal_team_percentage"`
}

// Sum returns the total of all role percentages.
func (c AgentConfig) Sum() int {
	return c.CustomerPercentage + c.CompetitorPercentage +
		c.InfluencerPercentage + c.InternalTeamPercentage
}

// AgentContext is the read-only slice of agent state handed to the
// feature-analysis backend.
type AgentContext struct {
	Name          string   `json:"name"`
	Role          Role     `json:"role"`
	Genome        Genome   `json:"genome"`
	Opinion       float64  `json:"opinion"`
	Memory        []string `json:"memory"`
	AttentionLeft int      `json:"attention_left"`
}

// FeatureAnalysis is the structured result the analysis backend produces
// for one (feature, agent) pair. The backend contract keeps OpinionShift
// in [-1,1], InfluenceImpact in [0,1] and AttentionSpent within the
// agent's remaining budget.
type FeatureAnalysis struct {
	FeatureTitle    string   `json:"feature_title"`
	OpinionShift    float64  `json:"opinion_shift"`
	Reasoning       string   `json:"reasoning"`
	Objections      []string `json:"objections"`
	Suggestions     []string `json:"suggestions"`
	AttentionSpent  int      `json:"attention_spent"`
	InfluenceImpact float64  `json:"influence_impact"`
}

// Interaction records one agent's reaction to one feature in one round,
// after influence propagation has been applied. InfluencedBy names the
// predecessors whose opinions actually moved this agent, so engagement
// density can count real agent pairs.
type Interaction struct {
	AgentName       string   `json:"agent_name"`
	Role            Role     `json:"agent_type"`
	FeatureTitle    string   `json:"feature_title"`
	Opinion         float64  `json:"opinion"`
	OpinionShift    float64  `json:"opinion_shift"`
	AttentionSpent  int      `json:"tokens_spent"`
	Reasoning       string   `json:"reasoning"`
	Objections      []string `json:"objections"`
	Suggestions     []string `json:"suggestions"`
	InfluenceImpact float64  `json:"influence_impact"`
	InfluencedBy    []string `json:"influenced_by,omitempty"`
}

// RoundResult is the full record of one simulation round.
type RoundResult struct {
	Round          int           `json:"round"`
	Interactions   []Interaction `json:"interactions"`
	AverageOpinion float64       `json:"average_opinion"`
}

// ArenaHealth aggregates the social-dynamics statistics of a finished run.
type ArenaHealth struct {
	Polarization          float64 `json:"polarization_score"`
	AdvocateSaboteurRatio float64 `json:"advocate_to_saboteur_ratio"`
	ViralPathLength       float64 `json:"viral_path_length"`
	EngagementDensity     float64 `json:"engagement_density"`
}

// AgentSummary is the per-agent slice of the final report.
type AgentSummary struct {
	Name           string  `json:"name"`
	Role           Role    `json:"type"`
	FinalOpinion   float64 `json:"final_opinion"`
	InfluenceScore float64 `json:"influence_score"`
	AttentionLeft  int     `json:"attention_tokens_remaining"`
	Traits         []Trait `json:"personality_traits"`
}

// InsightBundle is the enrichment the aggregate-insights backend adds to a
// report. Its adoption score is computed independently from opinion shifts
// and is not the report's core adoption score.
type InsightBundle struct {
	MarketInsights       string             `json:"market_insights"`
	AdoptionScore        float64            `json:"adoption_score"`
	TopObjections        []string           `json:"top_objections"`
	TopSuggestions       []string           `json:"top_suggestions"`
	PersonaInsights      string             `json:"persona_insights"`
	PersonaReceptiveness map[Role]float64   `json:"persona_receptiveness"`
	Recommendations      []string           `json:"recommendations"`
	CompetitiveAnalysis  string             `json:"competitive_analysis,omitempty"`
	ThreatLevel          string             `json:"threat_level,omitempty"`
	OpportunityScore     float64            `json:"opportunity_score,omitempty"`
	Confidence           float64            `json:"confidence_score"`
}

// Report is the terminal artifact of a simulation run.
type Report struct {
	AdoptionScore  float64        `json:"adoption_score"`
	TopObjections  []string       `json:"top_objections"`
	MustFix        []string       `json:"must_fix"`
	ArenaHealth    ArenaHealth    `json:"arena_health"`
	RoundHistory   []RoundResult  `json:"round_history"`
	AgentSummaries []AgentSummary `json:"agent_summaries"`
	Insights       *InsightBundle `json:"advanced_insights,omitempty"`
}
