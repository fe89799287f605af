package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var errBoom = errors.New("boom")

func permanent(error) bool { return false }
func transient(error) bool { return true }

func TestRetrySucceedsFirstTry(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, zerolog.Nop(), transient, func(context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Retry = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestRetryRecoversAfterTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, zerolog.Nop(), transient, func(context.Context) error {
		calls++
		if calls < 3 {
			return errBoom
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, zerolog.Nop(), transient, func(context.Context) error {
		calls++
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Retry = %v, want %v", err, errBoom)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestRetryNonRetryableReturnsImmediately(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Retry(context.Background(), 5, time.Millisecond, zerolog.Nop(), permanent, func(context.Context) error {
		calls++
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Retry = %v, want %v", err, errBoom)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestRetryLinearBackoff(t *testing.T) {
	t.Parallel()

	base := 20 * time.Millisecond
	start := time.Now()
	_ = Retry(context.Background(), 3, base, zerolog.Nop(), transient, func(context.Context) error {
		return errBoom
	})
	elapsed := time.Since(start)

	// Sleeps are base×1 then base×2: at least 3×base in total.
	if want := 3 * base; elapsed < want {
		t.Errorf("elapsed = %v, want at least %v", elapsed, want)
	}
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, 10, time.Hour, zerolog.Nop(), transient, func(context.Context) error {
		calls++
		cancel()
		return errBoom
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Retry = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestNewLimiter(t *testing.T) {
	t.Parallel()

	l := NewLimiter(10)
	if got := l.Limit(); got != rate.Limit(10) {
		t.Errorf("Limit() = %v, want 10", got)
	}
	if got := l.Burst(); got != 1 {
		t.Errorf("Burst() = %d, want 1", got)
	}

	// Non-positive rates fall back to one call per second.
	if got := NewLimiter(0).Limit(); got != rate.Limit(1) {
		t.Errorf("Limit() for 0 = %v, want 1", got)
	}
}
