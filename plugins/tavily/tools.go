package tavily

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/smartuae/agent/log"
	"github.com/smartuae/agent/tools"
)

// SearchInput defines the input for the web search tool
type SearchInput struct {
	Query      string `json:"query" description:"The search query to execute"`
	MaxResults int    `json:"max_results,omitempty" description:"Maximum number of results (default 5)"`
}

// SearchOutcome wraps the search result with degradation markers. Available
// reports whether the capability is configured at all; Error carries a
// transport or upstream failure for an otherwise available search.
type SearchOutcome struct {
	Available bool            `json:"available"`
	Response  *SearchResponse `json:"response,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// SearchTool exposes web search as an assistant capability
type SearchTool struct {
	client *Client
}

func (t *SearchTool) Name() string {
	return "web_search"
}

func (t *SearchTool) Description() string {
	return "Search the web for current information such as events, openings and news. Arguments: query (string, required), max_results (int, optional)."
}

// Execute runs the search. Missing configuration and transport failures
// produce structured outcomes rather than errors, so the conversation
// continues with an honest "could not search" answer.
func (t *SearchTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, fmt.Errorf("query is required and must be a string")
	}

	req := &SearchRequest{Query: query}
	if maxResults, ok := args["max_results"].(float64); ok {
		req.MaxResults = int(maxResults)
	}

	return t.search(ctx, req), nil
}

func (t *SearchTool) search(ctx context.Context, req *SearchRequest) *SearchOutcome {
	if !t.client.Available() {
		return &SearchOutcome{Available: false, Error: "web search is not configured"}
	}

	resp, err := t.client.Search(ctx, req)
	if err != nil {
		log.Warnf(ctx, "[Tavily] Search failed: %v", err)
		return &SearchOutcome{Available: true, Error: err.Error()}
	}
	return &SearchOutcome{Available: true, Response: resp}
}

// RegisterTools registers the web_search tool backed by this client
func (c *Client) RegisterTools(gk *genkit.Genkit, registry *tools.Registry) error {
	if gk == nil || registry == nil {
		return nil
	}

	searchTool := &SearchTool{client: c}
	err := registry.Register(genkit.DefineTool(gk, searchTool.Name(), searchTool.Description(),
		func(ctx *ai.ToolContext, input *SearchInput) (*SearchOutcome, error) {
			return searchTool.search(ctx, &SearchRequest{Query: input.Query, MaxResults: input.MaxResults}), nil
		},
	), searchTool.Execute)
	if err != nil {
		return fmt.Errorf("failed to register web search tool: %w", err)
	}

	log.Info(context.Background(), "[Tavily] Registered tool: web_search")
	return nil
}
