package knowledge

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/smartuae/agent/log"
	"github.com/smartuae/agent/tools"
)

// SearchInput defines the input for the knowledge search tool
type SearchInput struct {
	Query string `json:"query" description:"Free-text question about UAE facts, attractions or cultural tips"`
}

// SearchTool exposes the knowledge store as an assistant capability
type SearchTool struct {
	store *Store
}

func (t *SearchTool) Name() string {
	return "search_knowledge"
}

func (t *SearchTool) Description() string {
	return "Search the local UAE knowledge base for facts, attractions, and cultural tips. Arguments: query (string, required)."
}

func (t *SearchTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, fmt.Errorf("query is required and must be a string")
	}
	log.Debugf(ctx, "[Knowledge] Searching: %q", query)
	return t.store.Search(query), nil
}

// NewClient builds the store from a loaded document and registers its tool
func NewClient(doc *Document, gk *genkit.Genkit, registry *tools.Registry) (*Store, error) {
	store := NewStore(doc)

	if gk == nil || registry == nil {
		return store, nil
	}

	searchTool := &SearchTool{store: store}
	err := registry.Register(genkit.DefineTool(gk, searchTool.Name(), searchTool.Description(),
		func(ctx *ai.ToolContext, input *SearchInput) (Result, error) {
			return store.Search(input.Query), nil
		},
	), searchTool.Execute)
	if err != nil {
		return nil, fmt.Errorf("failed to register knowledge tool: %w", err)
	}

	log.Info(context.Background(), "[Knowledge] Registered tool: search_knowledge")
	return store, nil
}
