// Package contentgen turns a test type into validated exam content by
// prompting a schema-constrained language model.
package contentgen

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/llm"
)

// Generator produces exam content for a section.
type Generator interface {
	Generate(ctx context.Context, tt exam.TestType) (exam.Content, error)
}

// Service implements Generator on top of an llm.Provider.
type Service struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates a Service. logger may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, config: cfg, logger: logger}
}

// Generate makes one model call for tt. Only grammar and vocabulary, reading
// and listening are generated; other types fail with
// *exam.InvalidTestTypeError. Provider failures and malformed payloads both
// surface as *exam.GenerationFailedError.
func (s *Service) Generate(ctx context.Context, tt exam.TestType) (exam.Content, error) {
	prompt, schema := Prompt(tt), schemas[tt]
	if prompt == "" || schema == nil {
		return nil, &exam.InvalidTestTypeError{Value: tt.String()}
	}

	ctx = llm.WithPurpose(ctx, "generate:"+tt.Slug())

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		Schema:      schema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, &exam.GenerationFailedError{Detail: err.Error(), Err: err}
	}

	payload, err := unwrap(tt, resp.Content)
	var content exam.Content
	if err == nil {
		content, err = exam.DecodeContent(tt, payload)
	}
	if err != nil {
		s.logger.Warn("generated content rejected",
			zap.String("test_type", tt.Slug()),
			zap.String("model", resp.Model),
			zap.Error(err))
		return nil, &exam.GenerationFailedError{Detail: err.Error(), Err: err}
	}

	for _, c := range s.config.Checks {
		if msg := c.Check(content); msg != "" {
			s.logger.Warn("generated content check",
				zap.String("check", c.Name()),
				zap.String("test_type", tt.Slug()),
				zap.String("detail", msg))
		}
	}

	return content, nil
}
