package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	serp "github.com/ericgreene/go-serp"
	openai "github.com/sashabaranov/go-openai"
)

// SearchResult represents a web search result.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// SearchConfig holds configuration for web search.
type SearchConfig struct {
	MaxResults int
	SafeSearch bool
}

// DefaultSearchConfig returns standard search configuration.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxResults: 5,
		SafeSearch: true,
	}
}

// researchPlan is the LLM's decision about which queries to run for a
// research request.
type researchPlan struct {
	SearchQueries []string `json:"search_queries"`
	Reasoning     string   `json:"reasoning"`
}

// ResearchReport is the output of the market-research assistant.
type ResearchReport struct {
	Query    string         `json:"query"`
	Findings []SearchResult `json:"findings"`
	Summary  string         `json:"summary"`
}

// ResearchEnabled reports whether web research is configured.
func (e *Engine) ResearchEnabled() bool {
	return e.serpAPIKey != ""
}

// ConductResearch runs web searches for a market-research query and
// summarizes the findings. Unlike feature analysis there is no heuristic
// fallback here: without a SerpAPI key the feature is simply unavailable.
func (e *Engine) ConductResearch(ctx context.Context, query string) (*ResearchReport, error) {
	if e.serpAPIKey == "" {
		return nil, fmt.Errorf("web research disabled: SERP_API_KEY not set")
	}

	queries := []string{query}
	if plan, err := e.planResearch(ctx, query); err == nil && len(plan.SearchQueries) > 0 {
		queries = plan.SearchQueries
		if len(queries) > 3 {
			queries = queries[:3]
		}
	}

	var findings []SearchResult
	for _, q := range queries {
		results, err := e.webSearch(q, DefaultSearchConfig())
		if err != nil {
			continue
		}
		findings = append(findings, results...)
	}
	if len(findings) == 0 {
		return nil, fmt.Errorf("no search results for %q", query)
	}

	report := &ResearchReport{Query: query, Findings: findings}
	report.Summary = e.summarizeFindings(ctx, query, findings)
	return report, nil
}

// planResearch asks the LLM which searches would answer the query best.
func (e *Engine) planResearch(ctx context.Context, query string) (*researchPlan, error) {
	if e.client == nil {
		return nil, fmt.Errorf("LLM not available")
	}

	prompt := fmt.Sprintf(`You are a market research assistant planning web searches for this question: %q

Return a JSON object with:
{
  "search_queries": ["query1", "query2"],
  "reasoning": "why these searches answer the question"
}
Use 1-3 specific queries.`, query)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion")
	}

	var plan researchPlan
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (e *Engine) webSearch(query string, config SearchConfig) ([]SearchResult, error) {
	parameter := map[string]string{
		"q":   query,
		"key": e.serpAPIKey,
		"num": strconv.Itoa(config.MaxResults),
	}
	if config.SafeSearch {
		parameter["safe"] = "active"
	}

	queryResponse := serp.NewGoogleSearch(parameter)
	results, err := queryResponse.GetJSON()
	if err != nil {
		return nil, err
	}

	var searchResults []SearchResult
	for _, result := range results.OrganicResults {
		searchResults = append(searchResults, SearchResult{
			Title:   result.Title,
			Snippet: result.Snippet,
			Link:    result.Link,
		})
	}
	return searchResults, nil
}

// summarizeFindings condenses search results, via the LLM when available
// and by joining snippets otherwise.
func (e *Engine) summarizeFindings(ctx context.Context, query string, findings []SearchResult) string {
	var b strings.Builder
	for _, f := range findings {
		fmt.Fprintf(&b, "- %s: %s\n", f.Title, f.Snippet)
	}

	if e.client != nil {
		prompt := fmt.Sprintf("Summarize these search findings as market research on %q:\n\n%s", query, b.String())
		resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: e.config.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens: 400,
		})
		if err == nil && len(resp.Choices) > 0 {
			return resp.Choices[0].Message.Content
		}
	}
	return b.String()
}
