package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		t.Setenv("AI_PLUGIN", "")
		t.Setenv("GEMINI_API_KEY", "")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		assert.Equal(t, "./uae_knowledge.json", cfg.Knowledge.Path)
		assert.Equal(t, "https://api.aladhan.com/v1", cfg.Prayer.BaseURL)
		assert.Equal(t, 4, cfg.Prayer.TimeoutSeconds)
		assert.Equal(t, "qwen3:4b", cfg.AI.Ollama.Model)
		assert.Equal(t, "http://localhost:11434", cfg.AI.Ollama.BaseURL)
		assert.Equal(t, "gpt-4o-mini", cfg.AI.OpenAI.Model)
	})

	t.Run("EnvironmentVariables", func(t *testing.T) {
		t.Setenv("AI_PLUGIN", "ollama")
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("KNOWLEDGE_PATH", "/tmp/kb.json")
		t.Setenv("PRAYER_TIMEOUT_SECONDS", "2")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.Equal(t, "ollama", cfg.AI.Plugin)
		assert.Equal(t, "test-key", cfg.AI.Gemini.APIKey)
		assert.Equal(t, "/tmp/kb.json", cfg.Knowledge.Path)
		assert.Equal(t, 2, cfg.Prayer.TimeoutSeconds)
	})
}
