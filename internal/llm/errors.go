package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is a 429 from the provider. RetryAfter is zero when the
// provider sent no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the model answered with JSON that does not fit
// the request schema. Content keeps the raw payload for the event log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("response does not match schema: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers 5xx responses, network failures and an
// exhausted quota.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "provider unavailable"
	}
	return fmt.Sprintf("provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means a structured response was cut off. A grammar
// set that hits this needs a larger MaxTokens, not another attempt.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("response truncated at the token limit after %d bytes", len(e.Content))
}

// Failure kinds returned by FailureKind.
const (
	FailureCanceled    = "canceled"
	FailureTimeout     = "timeout"
	FailureTruncated   = "truncated"
	FailureInvalid     = "invalid_response"
	FailureRateLimited = "rate_limited"
	FailureUnavailable = "unavailable"
	FailureOther       = "error"
)

// FailureKind names the class of a Generate error for retry decisions and
// log fields. It returns "" for a nil error.
func FailureKind(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return FailureCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	var (
		maxTok  *ErrMaxTokensExceeded
		invalid *ErrInvalidResponse
		rl      *ErrRateLimit
		unavail *ErrProviderUnavailable
	)
	switch {
	case errors.As(err, &maxTok):
		return FailureTruncated
	case errors.As(err, &invalid):
		return FailureInvalid
	case errors.As(err, &rl):
		return FailureRateLimited
	case errors.As(err, &unavail):
		return FailureUnavailable
	}
	return FailureOther
}
