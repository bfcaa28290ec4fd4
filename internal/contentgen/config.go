package contentgen

import "github.com/abhisek/aptiz/internal/llm"

// Config controls the behavior of the Service.
type Config struct {
	// MaxTokens is the token budget for one generation response. A grammar
	// set of 25 questions needs several thousand tokens.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Checks run on every decoded payload. They only log; a failing check
	// never fails the request.
	Checks []Check
}

// DefaultConfig returns the production settings: temperature 0.8 and the
// passage and transcript length checks.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.8,
		Checks: []Check{
			&ReadingLengthCheck{Min: 250, Max: 450},
			&TranscriptLengthCheck{Min: 80, Max: 180},
		},
	}
}

// ConfigFor is DefaultConfig with the request settings taken from the
// provider configuration (APTIZ_LLM_TEMPERATURE).
func ConfigFor(llmCfg llm.Config) Config {
	cfg := DefaultConfig()
	cfg.Temperature = llmCfg.Temperature
	return cfg
}
