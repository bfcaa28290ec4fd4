package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one queued reply. A non-nil Err is returned as is.
// StopReason defaults to "end".
type MockResponse struct {
	Content    json.RawMessage
	Usage      Usage
	StopReason string
	Err        error
}

// MockProvider replays queued responses in order. It is what
// APTIZ_LLM_PROVIDER=mock builds and what the generation tests drive.
//
// Like the real providers it checks structured responses against the
// request schema, so a fixture that does not fit the schema fails the same
// way a misbehaving model would.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
	purposes  []string
}

// NewMockProvider queues responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

var errMockDrained = errors.New("mock provider has no queued responses")

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	m.purposes = append(m.purposes, PurposeFrom(ctx))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: errMockDrained}
	}

	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	stop := next.StopReason
	if stop == "" {
		stop = "end"
	}
	if req.Schema != nil && stop == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: next.Content}
	}
	if err := ValidateResponse(req.Schema, next.Content); err != nil {
		return nil, err
	}

	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: stop,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse queues one more response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns how many times Generate ran.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Purposes returns the purpose label of each call in order, e.g.
// "generate:reading".
func (m *MockProvider) Purposes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.purposes...)
}
