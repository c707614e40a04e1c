package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/tt-value/internal/models"
)

func TestResultCacheTTL(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	cache := NewResultCache(5*time.Minute, clock)

	_, ok := cache.Get()
	assert.False(t, ok, "empty cache is never fresh")

	value := []models.AnnotatedListing{{Listing: models.Listing{Time: "12:30"}}}
	cache.Put(value, now)

	got, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, value, got)

	now = now.Add(5*time.Minute - time.Nanosecond)
	_, ok = cache.Get()
	assert.True(t, ok)

	now = now.Add(time.Nanosecond)
	_, ok = cache.Get()
	assert.False(t, ok, "stale at exactly ttl")
}

func TestResultCacheDefaults(t *testing.T) {
	cache := NewResultCache(0, nil)
	assert.Equal(t, DefaultCacheTTL, cache.TTL())
	assert.True(t, cache.StoredAt().IsZero())
}

func TestActiveWindowContains(t *testing.T) {
	w := ActiveWindow{StartHour: 7, EndHour: 20, Location: time.UTC}
	day := func(h, m int) time.Time { return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before open", day(6, 59), false},
		{"at open", day(7, 0), true},
		{"midday", day(13, 15), true},
		{"last minute", day(19, 59), true},
		{"at close", day(20, 0), false},
		{"night", day(21, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Contains(tt.at))
		})
	}
}

func TestActiveWindowUsesLocation(t *testing.T) {
	prague := time.FixedZone("CET", 1*60*60)
	w := ActiveWindow{StartHour: 7, EndHour: 20, Location: prague}

	// 19:30 UTC is 20:30 in the window's zone
	assert.False(t, w.Contains(time.Date(2025, 3, 10, 19, 30, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2025, 3, 10, 6, 30, 0, 0, time.UTC)))
}
