// Package cache provides a TTL memo cache for loaded tables and derived
// analysis results. Callers key entries by their input parameters and
// must treat cached values as immutable snapshots.
package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a concurrent TTL cache. Expired entries are dropped lazily on
// access.
type Cache[V any] struct {
	entries *xsync.MapOf[string, entry[V]]
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache whose entries expire after ttl
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: xsync.NewMapOf[string, entry[V]](),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value for key if present and not expired
func (c *Cache[V]) Get(key string) (V, bool) {
	e, ok := c.entries.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.entries.Delete(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value under key with a fresh TTL
func (c *Cache[V]) Set(key string, value V) {
	c.entries.Store(key, entry[V]{value: value, expiresAt: c.now().Add(c.ttl)})
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. Compute errors are not cached.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, v)
	return v, nil
}

// Invalidate removes one entry
func (c *Cache[V]) Invalidate(key string) {
	c.entries.Delete(key)
}

// InvalidatePrefix removes all entries whose key starts with prefix
func (c *Cache[V]) InvalidatePrefix(prefix string) {
	c.entries.Range(func(key string, _ entry[V]) bool {
		if strings.HasPrefix(key, prefix) {
			c.entries.Delete(key)
		}
		return true
	})
}

// Purge removes all entries
func (c *Cache[V]) Purge() {
	c.entries.Clear()
}

// Key builds a cache key from input parameters
func Key(parts ...interface{}) string {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = fmt.Sprint(p)
	}
	return strings.Join(strs, "|")
}
