// Package retry provides a bounded exponential backoff policy for downstream
// coordination calls. The policy is plain configuration passed to callers at
// construction time; there are no package-level defaults baked into call
// sites.
package retry

import (
	"context"
	"time"

	"marketplace/internal/pkg/errs"
)

// Policy describes a bounded retry schedule. The first attempt runs
// immediately; attempt n waits BaseDelay * Multiplier^(n-1) before running.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// NewPolicy creates a Policy, validating its parameters.
func NewPolicy(maxAttempts int, baseDelay time.Duration, multiplier float64) (Policy, error) {
	if maxAttempts < 1 {
		return Policy{}, errs.NewValueIsInvalidError("maxAttempts")
	}
	if baseDelay < 0 {
		return Policy{}, errs.NewValueIsInvalidError("baseDelay")
	}
	if multiplier < 1 {
		return Policy{}, errs.NewValueIsInvalidError("multiplier")
	}
	return Policy{MaxAttempts: maxAttempts, BaseDelay: baseDelay, Multiplier: multiplier}, nil
}

// Delays returns the wait before each retry, in order. The slice has
// MaxAttempts-1 entries since the first attempt is immediate.
func (p Policy) Delays() []time.Duration {
	delays := make([]time.Duration, 0, p.MaxAttempts-1)
	delay := p.BaseDelay
	for i := 1; i < p.MaxAttempts; i++ {
		delays = append(delays, delay)
		delay = time.Duration(float64(delay) * p.Multiplier)
	}
	return delays
}

// Do invokes fn up to MaxAttempts times, sleeping per the backoff schedule
// between attempts. It returns nil on the first success, the last error on
// exhaustion, or the context error if the context is cancelled while waiting.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	delay := p.BaseDelay

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}

		if attempt == p.MaxAttempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}

	return lastErr
}
