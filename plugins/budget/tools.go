package budget

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/smartuae/agent/log"
	"github.com/smartuae/agent/session"
	"github.com/smartuae/agent/tools"
)

// EstimateInput defines the input for the budget estimator tool
type EstimateInput struct {
	City        string `json:"city" description:"Destination city, e.g. Dubai or Abu Dhabi"`
	Days        int    `json:"days" description:"Trip length in days, must be positive"`
	Travelers   int    `json:"travelers,omitempty" description:"Number of travelers (defaults to 1)"`
	BudgetLevel string `json:"budget_level,omitempty" description:"budget, mid or luxe (defaults to the stored preference)"`
}

// EstimateTool exposes the estimator as an assistant capability. The stored
// budget-level preference fills the tier when the model omits it.
type EstimateTool struct {
	prefs *session.Preferences
}

func NewEstimateTool(prefs *session.Preferences) *EstimateTool {
	return &EstimateTool{prefs: prefs}
}

func (t *EstimateTool) Name() string {
	return "estimate_budget"
}

func (t *EstimateTool) Description() string {
	return "Estimate a UAE trip cost in AED with a per-category breakdown. Arguments: city (string), days (int), travelers (int, optional), budget_level (budget|mid|luxe, optional)."
}

func (t *EstimateTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	city, _ := args["city"].(string)
	days := intArg(args, "days", 0)
	travelers := intArg(args, "travelers", 1)
	tier, _ := args["budget_level"].(string)

	return t.estimate(ctx, city, days, travelers, tier)
}

func (t *EstimateTool) estimate(ctx context.Context, city string, days, travelers int, tier string) (*Quote, error) {
	if tier == "" {
		tier = t.prefs.BudgetLevel()
	}
	if travelers == 0 {
		travelers = 1
	}

	quote, err := Estimate(city, days, travelers, tier)
	if err != nil {
		return nil, err
	}
	log.Debugf(ctx, "[Budget] %d days in %s for %d at %s tier: %s %.0f",
		days, city, travelers, tier, quote.Currency, quote.Total)
	return quote, nil
}

// intArg reads a numeric argument that may arrive as float64 from JSON
func intArg(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// RegisterTools registers the estimate_budget tool bound to this tool's
// preference store
func (t *EstimateTool) RegisterTools(gk *genkit.Genkit, registry *tools.Registry) error {
	if gk == nil || registry == nil {
		return nil
	}

	err := registry.Register(genkit.DefineTool(gk, t.Name(), t.Description(),
		func(ctx *ai.ToolContext, input *EstimateInput) (*Quote, error) {
			return t.estimate(ctx, input.City, input.Days, input.Travelers, input.BudgetLevel)
		},
	), t.Execute)
	if err != nil {
		return fmt.Errorf("failed to register budget tool: %w", err)
	}

	log.Info(context.Background(), "[Budget] Registered tool: estimate_budget")
	return nil
}
