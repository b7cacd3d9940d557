package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/promptcache/observe"
)

// ComputeFunc produces the value for a key on a cache miss. It is the
// expensive call being memoized, typically a reasoning-service request.
type ComputeFunc func(ctx context.Context) (any, error)

// Memoizer is a cache-aside helper: Do checks the cache, and on a miss
// runs the compute function and stores the result. Concurrent Do calls
// for the same key share a single computation instead of racing
// duplicate inserts.
//
// Memoizer serializes its own cache access, so it is safe for
// concurrent use even over the in-memory backend.
type Memoizer struct {
	cache  Cache
	logger observe.Logger

	mu    sync.Mutex // guards cache access, not computation
	group singleflight.Group
}

// NewMemoizer creates a Memoizer over c. A nil logger defaults to a no-op.
func NewMemoizer(c Cache, logger observe.Logger) (*Memoizer, error) {
	if c == nil {
		return nil, ErrNilCache
	}
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &Memoizer{cache: c, logger: logger}, nil
}

// Do returns the cached value for key, computing and inserting it on a
// miss. Compute errors are returned unchanged and never cached. An
// insert failure after a successful compute is logged and swallowed:
// the computation succeeded, and failing to memoize it is a
// degradation, not a failure.
//
// On a durable-backend hit the returned value is the stored bytes; use
// Value to decode. The freshly computed value is returned as-is.
func (m *Memoizer) Do(ctx context.Context, key string, compute ComputeFunc) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	v, ok, err := m.get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		return v, nil
	}

	v, err, _ = m.group.Do(key, func() (any, error) {
		// Re-check: another caller may have finished and inserted
		// while this one waited to enter the flight.
		if v, ok, err := m.get(ctx, key); err == nil && ok {
			return v, nil
		}

		v, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		insertErr := m.cache.Insert(ctx, key, v)
		m.mu.Unlock()
		if insertErr != nil {
			m.logger.Warn(ctx, "failed to memoize result",
				observe.Field{Key: "key", Value: key},
				observe.Field{Key: "error", Value: insertErr.Error()})
		}
		return v, nil
	})
	return v, err
}

func (m *Memoizer) get(ctx context.Context, key string) (any, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Get(ctx, key)
}
