// Package api serves annotated listings and lookups over HTTP.
package api

import (
	"sync"
	"time"

	"github.com/yourusername/tt-value/internal/metrics"
	"github.com/yourusername/tt-value/internal/models"
)

// DefaultCacheTTL is how long a refresh result is served before refetching
const DefaultCacheTTL = 5 * time.Minute

const resultCacheName = "results"

// ResultCache holds the latest refresh result. It is fresh while
// now - storedAt < ttl.
type ResultCache struct {
	mu       sync.RWMutex
	ttl      time.Duration
	clock    func() time.Time
	value    []models.AnnotatedListing
	storedAt time.Time
	stored   bool
}

// NewResultCache creates an empty result cache
func NewResultCache(ttl time.Duration, clock func() time.Time) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &ResultCache{ttl: ttl, clock: clock}
}

// Get returns the stored value while it is fresh
func (c *ResultCache) Get() ([]models.AnnotatedListing, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.stored || c.clock().Sub(c.storedAt) >= c.ttl {
		metrics.RecordCacheMiss(resultCacheName)
		return nil, false
	}
	metrics.RecordCacheHit(resultCacheName)
	return c.value, true
}

// Put replaces the stored value
func (c *ResultCache) Put(value []models.AnnotatedListing, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.storedAt = now
	c.stored = true
}

// StoredAt returns when the current value was stored, zero when empty
func (c *ResultCache) StoredAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.storedAt
}

// TTL returns the configured time-to-live
func (c *ResultCache) TTL() time.Duration {
	return c.ttl
}
