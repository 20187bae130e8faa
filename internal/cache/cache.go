// Package cache implements an in-memory key/value store with per-entry TTL.
//
// Expiry is evaluated lazily when an entry is read; there is no background
// sweep and no eviction beyond TTL.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Cache maps string keys to values of type V with an absolute expiry.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	clock   clockwork.Clock
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Option configures a Cache.
type Option[V any] func(*Cache[V])

// WithClock sets the clock used for expiry. Defaults to the real clock.
func WithClock[V any](clock clockwork.Clock) Option[V] {
	return func(c *Cache[V]) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// New creates an empty cache.
func New[V any](opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		entries: make(map[string]entry[V]),
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key if it has not expired.
// An expired entry is removed.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(key)
}

// Set stores value under key for ttl. A non-positive ttl stores an entry that
// is already expired.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.clock.Now().Add(ttl)}
}

// Wrap returns the cached value for key, or calls factory, stores its result
// for ttl and returns it. factory runs synchronously while no lock is held,
// so concurrent misses may each call it; the last write wins.
func (c *Cache[V]) Wrap(key string, ttl time.Duration, factory func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := factory()
	c.Set(key, v, ttl)
	return v
}

// Clear removes every entry whose key starts with prefix. An empty prefix
// clears the whole cache.
func (c *Cache[V]) Clear(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prefix == "" {
		n := len(c.entries)
		c.entries = make(map[string]entry[V])
		return n
	}
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, including expired ones not yet
// read.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[V]) getLocked(key string) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}
