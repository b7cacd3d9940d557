// Package cache provides pluggable memoization for deterministic
// reasoning-service calls.
//
// It provides a Cache interface with an in-process LRU implementation
// and a durable SQLite-backed implementation, a process-wide enable
// gate, SHA-256-based request fingerprinting, and a cache-aside
// Memoizer with single-flight deduplication.
package cache
