// Package prefs exposes the session preference store as assistant
// capabilities for reading and updating traveler preferences mid-chat.
package prefs

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/smartuae/agent/log"
	"github.com/smartuae/agent/session"
	"github.com/smartuae/agent/tools"
)

// SetInput defines the input for the preference update tool
type SetInput struct {
	BudgetLevel string   `json:"budget_level,omitempty" description:"budget, mid or luxe"`
	Interests   []string `json:"interests,omitempty" description:"Interests to add, e.g. beaches, museums"`
	HomeCity    string   `json:"home_city,omitempty" description:"City the traveler is based in"`
	Language    string   `json:"language,omitempty" description:"Preferred reply language code, e.g. en"`
}

// SetResult reports the updated keys and the resulting preference snapshot
type SetResult struct {
	Updated     map[string]interface{} `json:"updated"`
	Preferences map[string]interface{} `json:"preferences"`
}

// SetTool applies preference updates. Updates are all-or-nothing: any
// unknown key or invalid value rejects the whole batch.
type SetTool struct {
	prefs *session.Preferences
}

func (t *SetTool) Name() string {
	return "set_preferences"
}

func (t *SetTool) Description() string {
	return "Store traveler preferences for this session. Arguments (all optional): budget_level (budget|mid|luxe), interests (list of strings, additive), home_city (string), language (string)."
}

func (t *SetTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no preferences given")
	}

	updated, err := t.prefs.Set(args)
	if err != nil {
		return nil, err
	}
	log.Debugf(ctx, "[Prefs] Updated %d preference(s)", len(updated))
	return &SetResult{Updated: updated, Preferences: t.prefs.Snapshot()}, nil
}

// GetInput defines the (empty) input for the preference read tool
type GetInput struct{}

// GetTool returns the current preference snapshot
type GetTool struct {
	prefs *session.Preferences
}

func (t *GetTool) Name() string {
	return "get_preferences"
}

func (t *GetTool) Description() string {
	return "Read the traveler preferences stored for this session. No arguments."
}

func (t *GetTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return t.prefs.Snapshot(), nil
}

// RegisterTools registers set_preferences and get_preferences against the
// given preference store
func RegisterTools(prefs *session.Preferences, gk *genkit.Genkit, registry *tools.Registry) error {
	if gk == nil || registry == nil {
		return nil
	}

	setTool := &SetTool{prefs: prefs}
	err := registry.Register(genkit.DefineTool(gk, setTool.Name(), setTool.Description(),
		func(ctx *ai.ToolContext, input *SetInput) (*SetResult, error) {
			args := map[string]interface{}{}
			if input.BudgetLevel != "" {
				args[session.KeyBudgetLevel] = input.BudgetLevel
			}
			if len(input.Interests) > 0 {
				args[session.KeyInterests] = input.Interests
			}
			if input.HomeCity != "" {
				args[session.KeyHomeCity] = input.HomeCity
			}
			if input.Language != "" {
				args[session.KeyLanguage] = input.Language
			}
			out, execErr := setTool.Execute(ctx, args)
			if execErr != nil {
				return nil, execErr
			}
			return out.(*SetResult), nil
		},
	), setTool.Execute)
	if err != nil {
		return fmt.Errorf("failed to register set_preferences: %w", err)
	}

	getTool := &GetTool{prefs: prefs}
	err = registry.Register(genkit.DefineTool(gk, getTool.Name(), getTool.Description(),
		func(ctx *ai.ToolContext, input *GetInput) (map[string]interface{}, error) {
			return prefs.Snapshot(), nil
		},
	), getTool.Execute)
	if err != nil {
		return fmt.Errorf("failed to register get_preferences: %w", err)
	}

	log.Info(context.Background(), "[Prefs] Registered tools: set_preferences, get_preferences")
	return nil
}
