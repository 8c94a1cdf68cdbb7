package prayer

import (
	"context"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/smartuae/agent/log"
	"github.com/smartuae/agent/tools"
)

// TimingsInput defines the input for the prayer times tool
type TimingsInput struct {
	City string `json:"city,omitempty" description:"UAE city name (defaults to Dubai)"`
	Date string `json:"date,omitempty" description:"Calendar date in YYYY-MM-DD format (defaults to today)"`
}

// TimingsTool exposes the resolver as an assistant capability
type TimingsTool struct {
	client *Client
}

func (t *TimingsTool) Name() string {
	return "prayer_times"
}

func (t *TimingsTool) Description() string {
	return "Get daily prayer times (Fajr, Dhuhr, Asr, Maghrib, Isha) for a UAE city. Arguments: city (string, optional), date (string YYYY-MM-DD, optional)."
}

// Execute resolves timings. It never returns an error: the resolver's
// fallback absorbs every failure.
func (t *TimingsTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	city, _ := args["city"].(string)
	date, _ := args["date"].(string)
	return t.client.Resolve(ctx, city, date), nil
}

// RegisterTools registers the prayer_times tool backed by this client
func (c *Client) RegisterTools(gk *genkit.Genkit, registry *tools.Registry) error {
	if gk == nil || registry == nil {
		return nil
	}

	timingsTool := &TimingsTool{client: c}
	err := registry.Register(genkit.DefineTool(gk, timingsTool.Name(), timingsTool.Description(),
		func(ctx *ai.ToolContext, input *TimingsInput) (TimingSet, error) {
			return c.Resolve(ctx, input.City, input.Date), nil
		},
	), timingsTool.Execute)
	if err != nil {
		return err
	}

	log.Info(context.Background(), "[Prayer] Registered tool: prayer_times")
	return nil
}
