package cache

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTTL is how long a stored prediction stays servable.
	DefaultTTL = 2 * time.Minute
	// DefaultBucket collapses requests issued within the same window onto
	// one fingerprint.
	DefaultBucket = 5 * time.Minute
)

// Cache memoizes computed predictions per fingerprint. Expired entries are
// dropped lazily on the next lookup; there is no background sweep.
// Concurrent misses on one key collapse into a single computation.
type Cache[V any] struct {
	mu     sync.RWMutex
	data   map[string]entry[V]
	ttl    time.Duration
	bucket time.Duration
	group  singleflight.Group
}

type entry[V any] struct {
	value     V
	createdAt time.Time
}

func New[V any](ttl, bucket time.Duration) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if bucket <= 0 {
		bucket = DefaultBucket
	}
	return &Cache[V]{data: make(map[string]entry[V]), ttl: ttl, bucket: bucket}
}

// Fingerprint derives the cache key from the request-significant fields,
// bucketed to the configured time granularity.
func (c *Cache[V]) Fingerprint(signalType string, strength float64, volatility *float64, now time.Time) string {
	vol := "na"
	if volatility != nil {
		vol = fmt.Sprintf("%.2f", *volatility)
	}
	return fmt.Sprintf("%s|%.2f|%s|%d", signalType, strength, vol, now.Unix()/int64(c.bucket.Seconds()))
}

// GetOrCompute returns the cached value when present and younger than the
// TTL; otherwise it runs compute exactly once per key across concurrent
// callers and stores the result. The bool reports a cache hit.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (V, bool, error) {
	if v, ok := c.lookup(key); ok {
		return v, true, nil
	}
	res, err, _ := c.group.Do(key, func() (any, error) {
		// A sibling caller may have stored the value while we queued.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return v, err
		}
		c.store(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.(V), false, nil
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if time.Since(e.createdAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a fresh write may have landed.
		if cur, ok := c.data[key]; ok && time.Since(cur.createdAt) > c.ttl {
			delete(c.data, key)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) store(key string, v V) {
	c.mu.Lock()
	c.data[key] = entry[V]{value: v, createdAt: time.Now()}
	c.mu.Unlock()
}

// Len reports the number of entries currently held, including any not yet
// lazily expired.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
