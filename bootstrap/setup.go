// Package bootstrap wires configuration, tools, providers and the
// dispatcher into a runnable assistant.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/genkit"

	"github.com/smartuae/agent/agents"
	"github.com/smartuae/agent/config"
	"github.com/smartuae/agent/log"
	"github.com/smartuae/agent/orm"
	"github.com/smartuae/agent/plugins/budget"
	"github.com/smartuae/agent/plugins/core"
	"github.com/smartuae/agent/plugins/knowledge"
	"github.com/smartuae/agent/plugins/ollama"
	"github.com/smartuae/agent/plugins/prayer"
	"github.com/smartuae/agent/plugins/prefs"
	"github.com/smartuae/agent/plugins/tavily"
	"github.com/smartuae/agent/providers/gemini"
	"github.com/smartuae/agent/providers/openai"
	"github.com/smartuae/agent/session"
	"github.com/smartuae/agent/tools"
)

// App holds the initialized components of the application
type App struct {
	Dispatcher *agents.Dispatcher
	Genkit     *genkit.Genkit
	Registry   *tools.Registry
	Session    *session.Session
}

// Setup initializes the application components based on the configuration
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	gk := genkit.Init(ctx)

	// 1. Model provider
	llm, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// 2. Session state shared by the preference and budget tools
	sess := session.New()

	// 3. Tools registry
	registry := tools.NewRegistry()

	// Knowledge base is mandatory: the assistant grounds factual answers
	// on it
	doc, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	if _, err := knowledge.NewClient(doc, gk, registry); err != nil {
		return nil, err
	}

	// Prayer times, with a response cache. The cache is best effort: when
	// it cannot open, resolution still works uncached.
	cache, err := orm.Open(cfg.Prayer.CachePath)
	if err != nil {
		log.Warnf(ctx, "[Setup] Prayer cache unavailable: %v", err)
		cache = nil
	}
	prayerClient := prayer.NewClient(cfg.Prayer.BaseURL, time.Duration(cfg.Prayer.TimeoutSeconds)*time.Second, cache)
	if err := prayerClient.RegisterTools(gk, registry); err != nil {
		return nil, err
	}

	// Budget estimator, tier defaults flow from the session preferences
	if err := budget.NewEstimateTool(sess.Prefs).RegisterTools(gk, registry); err != nil {
		return nil, err
	}

	// Preference read/write
	if err := prefs.RegisterTools(sess.Prefs, gk, registry); err != nil {
		return nil, err
	}

	// Web search, degrades to an unavailable marker without an API key
	tavilyClient := tavily.NewClient(cfg.Tavily.APIKey, tavily.DefaultBaseURL, cfg.Tavily.TimeoutSeconds)
	if err := tavilyClient.RegisterTools(gk, registry); err != nil {
		return nil, err
	}

	// Calculator
	if _, err := core.NewCalculatorTool(gk, registry); err != nil {
		return nil, err
	}

	// 4. Dispatcher
	dispatcher, err := agents.NewDispatcher(gk, registry, llm, sess)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dispatcher: %w", err)
	}

	return &App{
		Dispatcher: dispatcher,
		Genkit:     gk,
		Registry:   registry,
		Session:    sess,
	}, nil
}

// newLLMClient selects the model provider from configuration
func newLLMClient(ctx context.Context, cfg *config.Config) (tools.LLMClient, error) {
	switch cfg.AI.Plugin {
	case "ollama":
		log.Infof(ctx, "[Setup] Using Ollama (model: %s)", cfg.AI.Ollama.Model)
		return ollama.NewClient(cfg.AI.Ollama.BaseURL, cfg.AI.Ollama.Model), nil

	case "openai":
		log.Infof(ctx, "[Setup] Using OpenAI (model: %s)", cfg.AI.OpenAI.Model)
		if cfg.AI.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY must be set (or change AI_PLUGIN)")
		}
		return openai.NewClient(cfg.AI.OpenAI.APIKey, cfg.AI.OpenAI.Model)

	case "gemini", "":
		log.Infof(ctx, "[Setup] Using Gemini (model: %s)", cfg.AI.Gemini.Model)
		if cfg.AI.Gemini.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY must be set (or set AI_PLUGIN=ollama)")
		}
		return gemini.NewClient(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model)

	default:
		return nil, fmt.Errorf("unknown AI plugin %q", cfg.AI.Plugin)
	}
}
