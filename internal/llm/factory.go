package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/aptiz/internal/store"
)

// NewProvider creates a Provider from configuration.
// The base provider is wrapped as: caller → timeout → retry → logging → base.
// eventRepo may be nil, in which case calls are only logged through logger.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, eventRepo, logger)
	retried := WithRetry(logged, cfg.Retry, logger)
	return WithTimeout(retried, cfg.Timeout), nil
}

// NewProviderFromEnv validates the environment configuration and builds the
// provider. A missing credential is returned as an error before any client
// is created.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *zap.Logger) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}
	p, err := NewProvider(ctx, cfg, eventRepo, logger)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
