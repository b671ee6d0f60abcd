package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// The typed errors below drive two behaviors downstream: the retry
// middleware decides retryability from the concrete type, and the quiz
// flow treats every one of them as soft — item generation falls back to
// the bank or the placeholder item, suggestions fall back to the rule
// engine.

// ErrRateLimit is a provider 429. RetryAfter is zero when the provider
// did not say how long to wait.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the model produced content that is not valid
// JSON or does not conform to the requested schema. Content carries the
// offending payload for the event log and for error messages.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers provider 5xx responses and transport
// failures, and doubles as the mock's empty-queue error.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means generation stopped at the MaxTokens limit,
// so Content is truncated JSON. A configuration problem, never retried.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}
