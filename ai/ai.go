// Package ai is the analysis backend behind the arena: per-agent feature
// analysis, aggregate market insights and optional web research. Every
// entry point degrades to a deterministic heuristic when no OpenAI key is
// configured or a call fails, so the simulation loop never sees an error
// from this boundary.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dejavas-ai/arena/core"
)

// LLMConfig holds configuration for LLM interactions.
type LLMConfig struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// DefaultLLMConfig returns standard LLM configuration.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:       openai.GPT4TurboPreview,
		MaxTokens:   1000,
		Temperature: 0.7,
	}
}

// Engine is the analysis backend handed to the simulator. A nil client
// means heuristic-only operation.
type Engine struct {
	client     *openai.Client
	config     LLMConfig
	serpAPIKey string
}

// NewEngine creates an analysis engine. An empty API key disables the LLM
// path entirely; the heuristic analyzer serves every request.
func NewEngine(apiKey string) *Engine {
	e := &Engine{config: DefaultLLMConfig()}
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, using heuristic analysis only")
		return e
	}
	e.client = openai.NewClient(apiKey)
	return e
}

// WithSerpKey enables web research through SerpAPI.
func (e *Engine) WithSerpKey(key string) *Engine {
	e.serpAPIKey = key
	return e
}

// LLMEnabled reports whether real LLM analysis is available.
func (e *Engine) LLMEnabled() bool {
	return e.client != nil
}

// agentResponse is the JSON shape the LLM is asked to return for a
// feature analysis.
type agentResponse struct {
	OpinionShift    float64  `json:"opinion_shift"`
	Reasoning       string   `json:"reasoning"`
	Objections      []string `json:"objections"`
	Suggestions     []string `json:"suggestions"`
	AttentionSpent  int      `json:"attention_spent"`
	InfluenceImpact float64  `json:"influence_impact"`
}

// AnalyzeFeature produces a structured reaction of one agent to one
// feature. It never fails: on any LLM problem it falls back to the
// deterministic heuristic analyzer.
func (e *Engine) AnalyzeFeature(ctx context.Context, feature core.Feature, agent core.AgentContext, market map[string]string) core.FeatureAnalysis {
	if e.client != nil {
		analysis, err := e.llmAnalyzeFeature(ctx, feature, agent, market)
		if err == nil {
			return analysis
		}
		log.Printf("LLM analysis failed for %s agent %s, using heuristic: %v", agent.Role, agent.Name, err)
	}
	return heuristicAnalyze(feature, agent, market)
}

func (e *Engine) llmAnalyzeFeature(ctx context.Context, feature core.Feature, agent core.AgentContext, market map[string]string) (core.FeatureAnalysis, error) {
	prompt := buildAgentPrompt(feature, agent, market)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are an expert market analyst simulating a stakeholder persona. Respond with a single JSON object and nothing else."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:      e.config.MaxTokens,
		Temperature:    e.config.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return core.FeatureAnalysis{}, err
	}
	if len(resp.Choices) == 0 {
		return core.FeatureAnalysis{}, fmt.Errorf("empty completion")
	}

	var parsed agentResponse
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return core.FeatureAnalysis{}, fmt.Errorf("unparseable agent response: %w", err)
	}

	// Enforce the backend contract regardless of what the model returned.
	spent := parsed.AttentionSpent
	if spent < 0 {
		spent = 0
	}
	if spent > agent.AttentionLeft {
		spent = agent.AttentionLeft
	}
	return core.FeatureAnalysis{
		FeatureTitle:    feature.Title,
		OpinionShift:    core.Clamp(parsed.OpinionShift, -1, 1),
		Reasoning:       parsed.Reasoning,
		Objections:      parsed.Objections,
		Suggestions:     parsed.Suggestions,
		AttentionSpent:  spent,
		InfluenceImpact: core.Clamp(parsed.InfluenceImpact, 0, 1),
	}, nil
}

var roleBriefings = map[core.Role]string{
	core.RoleCustomer:     "You are a real customer with specific needs, preferences, and pain points.",
	core.RoleCompetitor:   "You are a strategic competitor analyzing this feature for threats and opportunities.",
	core.RoleInfluencer:   "You are a social media influencer who shapes public opinion about products.",
	core.RoleInternalTeam: "You are an internal team member with department concerns and company goals.",
}

func buildAgentPrompt(feature core.Feature, agent core.AgentContext, market map[string]string) string {
	var b strings.Builder
	b.WriteString(roleBriefings[agent.Role])
	b.WriteString("\n\n## Your Profile (Genome):\n")
	fmt.Fprintf(&b, "%s\n", core.EncodeJSON(agent.Genome))
	fmt.Fprintf(&b, "Current opinion: %.2f (0 = very negative, 1 = very positive)\n", agent.Opinion)
	fmt.Fprintf(&b, "Attention tokens remaining: %d\n", agent.AttentionLeft)
	if len(agent.Memory) > 0 {
		fmt.Fprintf(&b, "Recent reasoning: %s\n", strings.Join(agent.Memory, " | "))
	}

	if len(market) > 0 {
		b.WriteString("\n## Market Context:\n")
		for k, v := range market {
			fmt.Fprintf(&b, "- %s: %s\n", k, v)
		}
	}

	b.WriteString("\n## Feature to Analyze:\n")
	fmt.Fprintf(&b, "Title: %s\nDescription: %s\n", feature.Title, feature.Description)

	b.WriteString(`
Respond with a JSON object:
{
  "opinion_shift": <number in [-1,1]>,
  "reasoning": "<your reasoning in character>",
  "objections": ["<specific objections>"],
  "suggestions": ["<suggestions for improvement>"],
  "attention_spent": <integer number of attention tokens>,
  "influence_impact": <number in [0,1], how much you can sway others>
}`)
	return b.String()
}
