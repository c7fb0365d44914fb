// Package resilience retries calls to external services that fail
// transiently.
package resilience

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Policy controls how often and how patiently a call is retried.
type Policy struct {
	// Attempts is the total number of tries, including the first. Values
	// below 1 mean a single try.
	Attempts int
	// Backoff is the delay before the first retry; it doubles each time.
	Backoff time.Duration
	// MaxBackoff caps a single delay.
	MaxBackoff time.Duration
	// Retryable decides whether err is worth another try. Nil means
	// IsTransient.
	Retryable func(err error) bool
	// Name labels retry log lines.
	Name string
}

// DefaultPolicy returns three attempts starting at 500ms.
func DefaultPolicy(name string) Policy {
	return Policy{
		Attempts:   3,
		Backoff:    500 * time.Millisecond,
		MaxBackoff: 10 * time.Second,
		Name:       name,
	}
}

// Retry runs fn until it succeeds, returns a non-retryable error, the
// attempts run out or ctx is done. The last error is returned.
func Retry[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsTransient
	}
	attempts := max(p.Attempts, 1)

	var zero T
	var err error
	for attempt := 1; ; attempt++ {
		var v T
		v, err = fn(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= attempts || ctx.Err() != nil || !retryable(err) {
			return zero, err
		}

		delay := p.delay(attempt)
		zap.L().Warn("retrying call",
			zap.String("name", p.Name),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, err
		case <-timer.C:
		}
	}
}

// delay returns the wait after the given failed attempt: Backoff doubled per
// attempt, capped, with ±25% jitter.
func (p Policy) delay(attempt int) time.Duration {
	d := p.Backoff << (attempt - 1)
	if p.MaxBackoff > 0 && (d > p.MaxBackoff || d <= 0) {
		d = p.MaxBackoff
	}
	if d <= 0 {
		return 0
	}
	jitter := time.Duration((rand.Float64()*0.5 - 0.25) * float64(d))
	return d + jitter
}
