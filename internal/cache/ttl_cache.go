// Package cache provides a small in-memory TTL cache used to reuse
// normalized images across documents.
package cache

import (
	"sync"
	"time"
)

// Cache is the minimal TTL cache interface used by the image normalizer.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(key K)
	Len() int
}

// Compile-time interface checks.
var (
	_ Cache[string, int] = (*TTLCache[string, int])(nil)
	_ Cache[string, int] = NoopCache[string, int]{}
)

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache stores values in memory with per-entry TTLs.
// When capacity is positive, inserting into a full cache evicts expired
// entries first and then the entry closest to expiry.
type TTLCache[K comparable, V any] struct {
	mu       sync.RWMutex
	items    map[K]cacheEntry[V]
	capacity int
	now      func() time.Time
}

// NewTTLCache constructs a TTLCache. capacity <= 0 means unbounded.
func NewTTLCache[K comparable, V any](capacity int) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		items:    make(map[K]cacheEntry[V]),
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns a cached value if it exists and has not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if c.expired(entry) {
		c.Delete(key)
		return zero, false
	}
	return entry.value, true
}

// Set stores a value with the provided TTL. ttl <= 0 never expires.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if c == nil {
		return
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[key]; !exists && c.capacity > 0 && len(c.items) >= c.capacity {
		c.evictLocked()
	}
	c.items[key] = cacheEntry[V]{
		value:     value,
		expiresAt: expiresAt,
	}
}

// Delete removes a cached entry.
func (c *TTLCache[K, V]) Delete(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *TTLCache[K, V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *TTLCache[K, V]) expired(e cacheEntry[V]) bool {
	return !e.expiresAt.IsZero() && c.now().After(e.expiresAt)
}

// evictLocked must be called with c.mu held for writing.
func (c *TTLCache[K, V]) evictLocked() {
	for k, e := range c.items {
		if c.expired(e) {
			delete(c.items, k)
		}
	}
	if len(c.items) < c.capacity {
		return
	}

	var (
		victim K
		first  = true
		soon   time.Time
	)
	for k, e := range c.items {
		// Entries without expiry are evicted last.
		at := e.expiresAt
		if at.IsZero() {
			at = time.Unix(1<<62, 0)
		}
		if first || at.Before(soon) {
			victim, soon, first = k, at, false
		}
	}
	if !first {
		delete(c.items, victim)
	}
}

// NoopCache always returns cache misses and ignores writes.
type NoopCache[K comparable, V any] struct{}

// Get always returns a miss.
func (NoopCache[K, V]) Get(key K) (V, bool) {
	var zero V
	return zero, false
}

// Set is a no-op.
func (NoopCache[K, V]) Set(key K, value V, ttl time.Duration) {}

// Delete is a no-op.
func (NoopCache[K, V]) Delete(key K) {}

// Len is always zero.
func (NoopCache[K, V]) Len() int { return 0 }
