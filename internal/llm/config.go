package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the lesson generation provider.
type Config struct {
	// Provider is one of "gemini", "anthropic", "openai", "openrouter",
	// "mock".
	Provider string

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// GeminiConfig holds Gemini settings.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// AnthropicConfig holds Anthropic settings.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI settings. BaseURL points the client at any
// OpenAI-compatible API.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenRouterConfig holds OpenRouter settings.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults: Gemini flash, three attempts.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// WithAPIKey returns a copy of c with key and model applied to the
// selected provider. Empty values leave the defaults in place.
func (c Config) WithAPIKey(key, model string) Config {
	switch c.Provider {
	case "gemini":
		c.Gemini.APIKey = orDefault(key, c.Gemini.APIKey)
		c.Gemini.Model = orDefault(model, c.Gemini.Model)
	case "anthropic":
		c.Anthropic.APIKey = orDefault(key, c.Anthropic.APIKey)
		c.Anthropic.Model = orDefault(model, c.Anthropic.Model)
	case "openai":
		c.OpenAI.APIKey = orDefault(key, c.OpenAI.APIKey)
		c.OpenAI.Model = orDefault(model, c.OpenAI.Model)
	case "openrouter":
		c.OpenRouter.APIKey = orDefault(key, c.OpenRouter.APIKey)
		c.OpenRouter.Model = orDefault(model, c.OpenRouter.Model)
	}
	return c
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// DiscoverConfig looks for the vendors' standard API key variables
// (Gemini, OpenAI, Anthropic, OpenRouter, in that order) and returns a
// config for the first one set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// HasAPIKey reports whether the selected provider has a key configured.
func (c Config) HasAPIKey() bool {
	switch c.Provider {
	case "gemini":
		return c.Gemini.APIKey != ""
	case "anthropic":
		return c.Anthropic.APIKey != ""
	case "openai":
		return c.OpenAI.APIKey != ""
	case "openrouter":
		return c.OpenRouter.APIKey != ""
	case "mock":
		return true
	}
	return false
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini", "anthropic", "openai", "openrouter":
		if !c.HasAPIKey() {
			return fmt.Errorf("an API key is required for the %s provider (set LINGOCALM_LLM_API_KEY)", c.Provider)
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
