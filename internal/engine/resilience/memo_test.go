package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestMemoCachesSuccess(t *testing.T) {
	t.Parallel()

	m := NewMemo[string](10)
	calls := 0
	fn := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := m.Do("key", fn)
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
		if v != "value" {
			t.Fatalf("Do = %q, want %q", v, "value")
		}
	}
	if calls != 1 {
		t.Errorf("populate fn called %d times, want 1", calls)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestMemoDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	m := NewMemo[int](10)
	calls := 0
	wantErr := errors.New("fetch failed")

	for i := 0; i < 2; i++ {
		if _, err := m.Do("key", func() (int, error) {
			calls++
			return 0, wantErr
		}); !errors.Is(err, wantErr) {
			t.Fatalf("Do = %v, want %v", err, wantErr)
		}
	}
	if calls != 2 {
		t.Errorf("populate fn called %d times, want 2 (errors must not be cached)", calls)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestMemoEvictsLRU(t *testing.T) {
	t.Parallel()

	m := NewMemo[int](2)
	populate := func(v int) func() (int, error) {
		return func() (int, error) { return v, nil }
	}

	m.Do("a", populate(1))
	m.Do("b", populate(2))
	m.Do("c", populate(3)) // evicts "a"

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}

	calls := 0
	m.Do("a", func() (int, error) {
		calls++
		return 1, nil
	})
	if calls != 1 {
		t.Errorf("evicted key served from cache, want repopulation")
	}
}

func TestMemoCollapsesConcurrentMisses(t *testing.T) {
	t.Parallel()

	m := NewMemo[int](10)
	var calls atomic.Int64
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := m.Do("key", func() (int, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
			if err != nil || v != 42 {
				t.Errorf("Do = %d, %v", v, err)
			}
		}()
	}

	close(release)
	wg.Wait()

	// Single-flight may admit a second populate if a goroutine arrives
	// after the first flight completes, but 8 concurrent callers must
	// not each run their own.
	if got := calls.Load(); got > 2 {
		t.Errorf("populate fn called %d times for concurrent misses", got)
	}
}
