package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all application configuration
type Config struct {
	AI        AIConfig        `yaml:"ai"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Prayer    PrayerConfig    `yaml:"prayer"`
	Tavily    TavilyConfig    `yaml:"tavily"`
}

type AIConfig struct {
	Plugin string       `yaml:"plugin" env:"AI_PLUGIN" env-default:"gemini"`
	Gemini GeminiConfig `yaml:"gemini"`
	OpenAI OpenAIConfig `yaml:"openai"`
	Ollama OllamaConfig `yaml:"ollama"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key" env:"OPENAI_API_KEY"`
	Model  string `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
}

type OllamaConfig struct {
	Model   string `yaml:"model" env:"OLLAMA_MODEL" env-default:"qwen3:4b"`
	BaseURL string `yaml:"base_url" env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`
}

type KnowledgeConfig struct {
	Path string `yaml:"path" env:"KNOWLEDGE_PATH" env-default:"./uae_knowledge.json"`
}

type PrayerConfig struct {
	BaseURL        string `yaml:"base_url" env:"PRAYER_BASE_URL" env-default:"https://api.aladhan.com/v1"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"PRAYER_TIMEOUT_SECONDS" env-default:"4"`
	CachePath      string `yaml:"cache_path" env:"PRAYER_CACHE_PATH" env-default:"file::memory:?cache=shared"`
}

type TavilyConfig struct {
	APIKey         string `yaml:"api_key" env:"TAVILY_API_KEY"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"TAVILY_TIMEOUT_SECONDS" env-default:"10"`
}

// Load reads configuration from config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	var cfg Config

	// Read config.yaml if present, then override with envs.
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		// If the file doesn't exist, just read env vars
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}
