package cache

import (
	"container/list"
	"context"
)

// MemoryCache is an in-process, recency-bounded cache. Entries live in a
// map keyed by cache key, with a doubly-linked list tracking recency:
// the front of the list is the most recently used entry, the back is the
// next eviction victim. Values are stored as-is, with no serialization.
//
// MemoryCache is not safe for concurrent use. Callers sharing one
// instance across goroutines must serialize access externally.
type MemoryCache struct {
	capacity int
	entries  map[string]*list.Element
	order    *list.List // of *memoryEntry
}

type memoryEntry struct {
	key   string
	value any
}

// NewMemoryCache creates an in-memory cache bounded to capacity entries.
func NewMemoryCache(capacity int) (*MemoryCache, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &MemoryCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}, nil
}

// Get returns the value stored under key, marking it most recently used
// on a hit. A miss returns (nil, false, nil).
func (c *MemoryCache) Get(_ context.Context, key string) (any, bool, error) {
	el, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	c.order.MoveToFront(el)
	return el.Value.(*memoryEntry).value, true, nil
}

// Insert stores value under key as the most recently used entry. If the
// insert pushes the cache over capacity, the single least recently used
// entry is evicted before Insert returns. Entries never read since
// insertion age in insertion order.
func (c *MemoryCache) Insert(_ context.Context, key string, value any) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	if el, ok := c.entries[key]; ok {
		el.Value.(*memoryEntry).value = value
		c.order.MoveToFront(el)
		return nil
	}

	c.entries[key] = c.order.PushFront(&memoryEntry{key: key, value: value})
	if c.order.Len() > c.capacity {
		c.evictOldest()
	}
	return nil
}

func (c *MemoryCache) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.entries, el.Value.(*memoryEntry).key)
}

// Reset removes all entries. A positive capacity becomes the new bound.
func (c *MemoryCache) Reset(_ context.Context, capacity int) error {
	if capacity < 0 {
		return ErrInvalidCapacity
	}
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	if capacity > 0 {
		c.capacity = capacity
	}
	return nil
}

// Len returns the number of entries currently stored.
func (c *MemoryCache) Len(_ context.Context) (int, error) {
	return c.order.Len(), nil
}

// Capacity returns the current capacity bound.
func (c *MemoryCache) Capacity() int {
	return c.capacity
}

// Close is a no-op; the in-memory cache holds no external resources.
func (c *MemoryCache) Close() error {
	return nil
}

// Ensure MemoryCache implements Cache at compile time.
var _ Cache = (*MemoryCache)(nil)
