package cache

import (
	"context"
	"errors"
	"strings"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// KeepCapacity, when passed to Reset, clears all entries without
// changing the capacity bound.
const KeepCapacity = 0

// Sentinel errors for cache operations.
var (
	ErrNilCache        = errors.New("cache: cache is nil")
	ErrInvalidKey      = errors.New("cache: key is invalid")
	ErrKeyTooLong      = errors.New("cache: key exceeds max length")
	ErrInvalidCapacity = errors.New("cache: capacity must be positive")
	ErrClosed          = errors.New("cache: cache is closed")
	ErrUnknownBackend  = errors.New("cache: unknown backend")
)

// Cache is the interface for memoizing reasoning-service results, keyed
// by an opaque string fingerprint of the call's inputs.
//
// Contract:
// - Misses: Get returns (nil, false, nil) on a miss; a miss is never an error.
// - Recency: Insert and a hit Get both refresh an entry's recency.
// - Capacity: when any Insert returns, the entry count is within the bound.
// - Teardown: the owner of the instance must call Close.
type Cache interface {
	// Get retrieves a cached value. Durable implementations return the
	// stored bytes; use Value to decode into a concrete type.
	Get(ctx context.Context, key string) (any, bool, error)

	// Insert stores a value under key, overwriting any previous value,
	// then evicts least-recently-used entries to stay within capacity.
	Insert(ctx context.Context, key string, value any) error

	// Reset removes all entries. A positive capacity becomes the new
	// bound; KeepCapacity leaves the bound unchanged.
	Reset(ctx context.Context, capacity int) error

	// Len returns the number of entries currently stored.
	Len(ctx context.Context) (int, error)

	// Close releases the backing store. Idempotent.
	Close() error
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
