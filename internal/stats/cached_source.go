package stats

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/tt-value/internal/metrics"
	"github.com/yourusername/tt-value/internal/models"
)

const snapshotKey = "snapshot"

// CachedSource memoizes the snapshot of another source for a reload interval
type CachedSource struct {
	inner     Source
	cache     *cache.Cache
	ttl       time.Duration
	loadMu    sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewCachedSource wraps a source. A non-positive ttl disables caching.
func NewCachedSource(inner Source, ttl time.Duration) *CachedSource {
	cleanup := ttl * 2
	if ttl <= 0 {
		cleanup = 0
	}
	return &CachedSource{
		inner: inner,
		cache: cache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

// Load returns the cached snapshot or loads a fresh one
func (c *CachedSource) Load(ctx context.Context) (models.Snapshot, error) {
	if c.ttl <= 0 {
		return c.inner.Load(ctx)
	}

	if snap, ok := c.get(); ok {
		return snap, nil
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	// Another caller may have loaded it while we waited
	if snap, found := c.cache.Get(snapshotKey); found {
		return snap.(models.Snapshot), nil
	}

	snap, err := c.inner.Load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	c.cache.Set(snapshotKey, snap, c.ttl)
	metrics.UpdateSnapshotSize(len(snap.Roster), len(snap.Matches))
	return snap, nil
}

func (c *CachedSource) get() (models.Snapshot, bool) {
	if v, found := c.cache.Get(snapshotKey); found {
		atomic.AddUint64(&c.hitCount, 1)
		metrics.RecordCacheHit("stats")
		return v.(models.Snapshot), true
	}
	atomic.AddUint64(&c.missCount, 1)
	metrics.RecordCacheMiss("stats")
	return models.Snapshot{}, false
}

// Invalidate drops the cached snapshot
func (c *CachedSource) Invalidate() {
	c.cache.Delete(snapshotKey)
}

// Stats returns hit and miss counters
func (c *CachedSource) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hitCount), atomic.LoadUint64(&c.missCount)
}
