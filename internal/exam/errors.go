package exam

import (
	"errors"
	"fmt"
)

// InvalidTestTypeError is returned for a test type outside the five sections,
// or when the request carried no usable test type at all.
type InvalidTestTypeError struct {
	Value   string
	Missing bool
}

func (e *InvalidTestTypeError) Error() string {
	if e.Missing {
		return "testType is required and must be a string."
	}
	return fmt.Sprintf("Unknown or unsupported test type: %s", e.Value)
}

// SchemaViolationError indicates generated content did not match the shape
// required for its test type.
type SchemaViolationError struct {
	Field string
	Err   error
}

func (e *SchemaViolationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("content does not match schema at %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("content does not match schema: %v", e.Err)
}

func (e *SchemaViolationError) Unwrap() error { return e.Err }

// GenerationFailedError reports that the upstream model call failed. Detail
// is safe to show to a user; Err keeps the cause for logs.
type GenerationFailedError struct {
	Detail string
	Err    error
}

func (e *GenerationFailedError) Error() string {
	return "generation failed: " + e.Detail
}

func (e *GenerationFailedError) Unwrap() error { return e.Err }

// MicrophoneUnavailableError means the capture device could not be opened.
type MicrophoneUnavailableError struct {
	Err error
}

func (e *MicrophoneUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("microphone unavailable: %v", e.Err)
	}
	return "microphone unavailable"
}

func (e *MicrophoneUnavailableError) Unwrap() error { return e.Err }

// UserMessage renders err for display. Schema and generation failures collapse
// to one retryable message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		invalid *InvalidTestTypeError
		schema  *SchemaViolationError
		gen     *GenerationFailedError
		mic     *MicrophoneUnavailableError
	)
	switch {
	case errors.As(err, &invalid):
		return invalid.Error()
	case errors.As(err, &schema), errors.As(err, &gen):
		return "We couldn't generate your test. Please try again."
	case errors.As(err, &mic):
		return "Microphone unavailable. Check your audio input device and try again."
	default:
		return "An unknown error occurred."
	}
}
