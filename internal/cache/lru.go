package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUWithTTL is a size-bounded, thread-safe LRU cache whose entries expire
// after a fixed lifetime. It keeps hit and miss counters for metrics.
type LRUWithTTL[K comparable, V any] struct {
	cache *lru.Cache[K, ttlEntry[V]]
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	hits    uint64
	misses  uint64
	evicted uint64
}

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewLRUWithTTL creates a cache holding at most size entries. A zero ttl
// disables expiry.
func NewLRUWithTTL[K comparable, V any](size int, ttl time.Duration) (*LRUWithTTL[K, V], error) {
	c := &LRUWithTTL[K, V]{ttl: ttl, now: time.Now}

	inner, err := lru.NewWithEvict[K, ttlEntry[V]](size, func(K, ttlEntry[V]) {
		c.mu.Lock()
		c.evicted++
		c.mu.Unlock()
	})
	if err != nil {
		return nil, err
	}
	c.cache = inner
	return c, nil
}

// Get returns the value stored under key unless it is missing or expired.
// Expired entries are removed.
func (c *LRUWithTTL[K, V]) Get(key K) (V, bool) {
	entry, ok := c.cache.Get(key)
	if ok && c.ttl > 0 && c.now().After(entry.expiresAt) {
		c.cache.Remove(key)
		ok = false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return entry.value, true
}

// Set stores value under key, evicting the least recently used entry when
// the cache is full.
func (c *LRUWithTTL[K, V]) Set(key K, value V) {
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}
	c.cache.Add(key, ttlEntry[V]{value: value, expiresAt: expiresAt})
}

// Len returns the number of stored entries, expired ones included.
func (c *LRUWithTTL[K, V]) Len() int {
	return c.cache.Len()
}

// Purge removes every entry.
func (c *LRUWithTTL[K, V]) Purge() {
	c.cache.Purge()
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Evicted uint64  `json:"evicted"` // every dropped entry, expired ones included
	Size    int     `json:"size"`
	HitRate float64 `json:"hit_rate"`
}

// Stats returns the current counters.
func (c *LRUWithTTL[K, V]) Stats() Stats {
	size := c.cache.Len()

	c.mu.Lock()
	defer c.mu.Unlock()

	hitRate := 0.0
	if total := c.hits + c.misses; total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Evicted: c.evicted,
		Size:    size,
		HitRate: hitRate,
	}
}

// Key derives a fixed-length cache key from the given parts.
func Key(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
