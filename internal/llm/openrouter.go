package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "google/gemini-2.5-flash"

	// OpenRouter attributes traffic by these headers.
	openRouterReferer = "https://github.com/abhisek/aptiz"
	openRouterTitle   = "aptiz"
)

// OpenRouterProvider reaches Gemini (or any other routed model) through
// OpenRouter's OpenAI-compatible API. Model IDs pass through unmapped.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenRouterModel
	}

	httpClient := &http.Client{Transport: attributionTransport{base: http.DefaultTransport}}
	inner, err := newOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   model,
		BaseURL: baseURL,
	}, httpClient)
	if err != nil {
		return nil, err
	}

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return t.base.RoundTrip(req)
}
