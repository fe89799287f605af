package resilience

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Memo is a bounded, LRU-evicting memoization cache. Concurrent misses
// for the same key collapse into a single call of the populate function;
// hits never invoke it, so layers wrapped inside (retry, rate limiting)
// are bypassed entirely on a hit. Successful results are cached for the
// process lifetime, errors are not.
type Memo[V any] struct {
	cache *lru.Cache[string, V]
	group singleflight.Group
}

// NewMemo returns a memo holding at most capacity entries.
func NewMemo[V any](capacity int) *Memo[V] {
	if capacity <= 0 {
		capacity = 1
	}
	cache, _ := lru.New[string, V](capacity)
	return &Memo[V]{cache: cache}
}

// Do returns the cached value for key, or runs fn once to populate it.
func (m *Memo[V]) Do(key string, fn func() (V, error)) (V, error) {
	if v, ok := m.cache.Get(key); ok {
		return v, nil
	}

	res, err, _ := m.group.Do(key, func() (any, error) {
		// A concurrent caller may have populated the entry while we
		// queued behind the flight.
		if v, ok := m.cache.Get(key); ok {
			return v, nil
		}
		v, err := fn()
		if err != nil {
			return v, err
		}
		m.cache.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Len reports the number of cached entries.
func (m *Memo[V]) Len() int {
	return m.cache.Len()
}
