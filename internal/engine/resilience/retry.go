// Package resilience provides the call-wrapping behaviors layered around
// provider operations: blocking rate limiting, retry with linear backoff,
// and a bounded memoization cache with single-flight population.
package resilience

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// NewLimiter returns a limiter enforcing a minimum interval of
// 1/callsPerSecond between permitted calls. Waiters are delayed to the
// next permitted instant, never rejected.
func NewLimiter(callsPerSecond float64) *rate.Limiter {
	if callsPerSecond <= 0 {
		callsPerSecond = 1
	}
	return rate.NewLimiter(rate.Limit(callsPerSecond), 1)
}

// Retry invokes fn up to attempts times, sleeping baseDelay×k before
// attempt k+1 (linear backoff). Errors for which retryable returns false
// are returned immediately; otherwise the last error is surfaced once
// attempts are exhausted.
func Retry(ctx context.Context, attempts int, baseDelay time.Duration, log zerolog.Logger, retryable func(error) bool, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		delay := time.Duration(attempt) * baseDelay
		log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("retrying after transient failure")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	log.Error().Err(lastErr).Int("attempts", attempts).Msg("giving up after retries")
	return lastErr
}
