package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// CredentialEnv is the single secret the generation server needs. It is used
// for whichever provider is selected unless a provider-specific key is set.
const CredentialEnv = "API_KEY"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Temperature applied to every generation request.
	Temperature float64

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig targets Gemini 2.5 Flash at temperature 0.8 with a single
// attempt per request. A failed generation is surfaced to the user, who
// retries by hand.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
		Temperature: 0.8,
		Timeout:     90 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. API_KEY feeds the selected provider; the
// APTIZ_<PROVIDER>_API_KEY variables take precedence over it.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("APTIZ_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	shared := os.Getenv(CredentialEnv)
	cfg.Anthropic.APIKey = firstNonEmpty(os.Getenv("APTIZ_ANTHROPIC_API_KEY"), shared)
	cfg.OpenAI.APIKey = firstNonEmpty(os.Getenv("APTIZ_OPENAI_API_KEY"), shared)
	cfg.Gemini.APIKey = firstNonEmpty(os.Getenv("APTIZ_GEMINI_API_KEY"), shared)
	cfg.OpenRouter.APIKey = firstNonEmpty(os.Getenv("APTIZ_OPENROUTER_API_KEY"), shared)

	if m := os.Getenv("APTIZ_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}
	if m := os.Getenv("APTIZ_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("APTIZ_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}
	if m := os.Getenv("APTIZ_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}
	if m := os.Getenv("APTIZ_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	if v := os.Getenv("APTIZ_LLM_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}
	if v := os.Getenv("APTIZ_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("APTIZ_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Temperature = f
		}
	}

	return cfg
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return missingKey("anthropic", "APTIZ_ANTHROPIC_API_KEY")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return missingKey("openai", "APTIZ_OPENAI_API_KEY")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return missingKey("gemini", "APTIZ_GEMINI_API_KEY")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return missingKey("openrouter", "APTIZ_OPENROUTER_API_KEY")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// ModelName returns the configured model for the selected provider.
func (c Config) ModelName() string {
	switch c.Provider {
	case "anthropic":
		return resolveModel(c.Anthropic.Model, anthropicModels)
	case "openai":
		return resolveModel(c.OpenAI.Model, openaiModels)
	case "gemini":
		return resolveModel(c.Gemini.Model, geminiModels)
	case "openrouter":
		return c.OpenRouter.Model
	case "mock":
		return "mock"
	}
	return ""
}

func missingKey(provider, env string) error {
	return fmt.Errorf("%s environment variable is not set (or %s for the %s provider)", CredentialEnv, env, provider)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
