package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryProvider wraps another Provider with exponential backoff.
// NewProvider installs it under the logging layer, so each attempt is
// logged individually.
type retryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry adds backoff-and-retry behavior to a Provider. Rate limits
// and outages retry up to cfg.MaxAttempts; a malformed response gets a
// single extra attempt; token-budget and context errors fail fast.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{inner: p, config: cfg}
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidRetried := false

	for attempt := range r.config.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !r.shouldRetry(err, &invalidRetried) {
			return nil, err
		}

		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}

	return nil, lastErr
}

func (r *retryProvider) ModelID() string {
	return r.inner.ModelID()
}

func (r *retryProvider) shouldRetry(err error, invalidRetried *bool) bool {
	// A canceled context means the learner gave up on the call.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// A blown token budget repeats identically on retry.
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	// Malformed JSON occasionally fixes itself on a second pass, so it
	// gets exactly one more attempt.
	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}
	var unavail *ErrProviderUnavailable
	if errors.As(err, &unavail) {
		return true
	}

	// Anything else (network flakes and the like) counts as transient.
	return true
}

func (r *retryProvider) backoff(attempt int, err error) time.Duration {
	// A rate limit that names its own wait wins over the schedule.
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = min(wait, float64(r.config.MaxWait))

	// ±20% jitter keeps concurrent callers from retrying in lockstep.
	wait += wait * 0.2 * (2*rand.Float64() - 1)

	return time.Duration(max(wait, 0))
}
