package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordAnalysis(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(ResolutionMissesTotal)

	assert.NotPanics(t, func() {
		RecordAnalysis(4, 2, 0.01)
	})
	assert.Equal(t, before+2, testutil.ToFloat64(ResolutionMissesTotal))
}

func TestRecordValueSignal(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(ValueSignalsTotal.WithLabelValues("rating_h2h_value"))

	RecordValueSignal("rating_h2h_value")
	RecordValueSignal("rating_h2h_value")

	assert.Equal(t, before+2, testutil.ToFloat64(ValueSignalsTotal.WithLabelValues("rating_h2h_value")))
}

func TestCacheLookups(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name    string
		record  func(string)
		outcome string
	}{
		{name: "hit", record: RecordCacheHit, outcome: "hit"},
		{name: "miss", record: RecordCacheMiss, outcome: "miss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := CacheLookupsTotal.WithLabelValues("matches", tt.outcome)
			before := testutil.ToFloat64(counter)
			tt.record("matches")
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestRecordAlert(t *testing.T) {
	InitRegistry()
	sent := testutil.ToFloat64(AlertsSentTotal.WithLabelValues("sent"))
	failed := testutil.ToFloat64(AlertsSentTotal.WithLabelValues("failed"))

	RecordAlert(true)
	RecordAlert(false)

	assert.Equal(t, sent+1, testutil.ToFloat64(AlertsSentTotal.WithLabelValues("sent")))
	assert.Equal(t, failed+1, testutil.ToFloat64(AlertsSentTotal.WithLabelValues("failed")))
}

func TestUpdateSnapshotSize(t *testing.T) {
	InitRegistry()
	UpdateSnapshotSize(12, 340)

	assert.Equal(t, 12.0, testutil.ToFloat64(RosterSize))
	assert.Equal(t, 340.0, testutil.ToFloat64(HistorySize))
}

func TestHandler(t *testing.T) {
	InitRegistry()
	RecordRefresh(3, 0.2)
	RecordRefreshFailure("http")

	handler := Handler()
	require.NotNil(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "tt_value_refresh_duration_seconds"))
	assert.True(t, strings.Contains(body, "tt_value_refresh_failures_total"))
}
