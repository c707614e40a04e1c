// Package metrics provides centralized Prometheus metrics registry for the value engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ListingsAnalyzedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tt_value",
		Name:      "listings_analyzed_total",
		Help:      "Total number of listings passed through the analyzer",
	})
	ResolutionMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tt_value",
		Name:      "resolution_misses_total",
		Help:      "Total number of listed names that could not be matched to a known player",
	})
	ValueSignalsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tt_value",
		Name:      "value_signals_total",
		Help:      "Total number of value signals by detector",
	}, []string{"detector"})
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tt_value",
		Name:      "cache_lookups_total",
		Help:      "Result cache lookups by outcome",
	}, []string{"cache", "outcome"})
	RefreshFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tt_value",
		Name:      "refresh_failures_total",
		Help:      "Total number of failed refresh cycles by source",
	}, []string{"source"})
	AlertsSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tt_value",
		Name:      "alerts_sent_total",
		Help:      "Total number of alert notifications by outcome",
	}, []string{"outcome"})
	CircuitBreakerTripsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tt_value",
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of circuit breaker state changes to open",
	}, []string{"breaker"})
)

// Gauge metrics
var (
	RosterSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tt_value",
		Name:      "roster_size",
		Help:      "Number of players in the current stats snapshot",
	})
	HistorySize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tt_value",
		Name:      "history_size",
		Help:      "Number of match records in the current stats snapshot",
	})
	LastRefreshListings = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tt_value",
		Name:      "last_refresh_listings",
		Help:      "Number of listings returned by the last successful refresh",
	})
)

// Histogram metrics
var (
	RefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tt_value",
		Name:      "refresh_duration_seconds",
		Help:      "Duration of refresh cycles in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})
	AnalyzeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tt_value",
		Name:      "analyze_duration_seconds",
		Help:      "Duration of analysis passes in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(ListingsAnalyzedTotal)
		registry.MustRegister(ResolutionMissesTotal)
		registry.MustRegister(ValueSignalsTotal)
		registry.MustRegister(CacheLookupsTotal)
		registry.MustRegister(RefreshFailuresTotal)
		registry.MustRegister(AlertsSentTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)

		// Register gauge metrics
		registry.MustRegister(RosterSize)
		registry.MustRegister(HistorySize)
		registry.MustRegister(LastRefreshListings)

		// Register histogram metrics
		registry.MustRegister(RefreshDuration)
		registry.MustRegister(AnalyzeDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAnalysis records an analysis pass over a batch of listings.
func RecordAnalysis(listings, misses int, durationSeconds float64) {
	ListingsAnalyzedTotal.Add(float64(listings))
	ResolutionMissesTotal.Add(float64(misses))
	AnalyzeDuration.Observe(durationSeconds)
}

// RecordValueSignal records a value signal raised by a detector.
func RecordValueSignal(detector string) {
	ValueSignalsTotal.WithLabelValues(detector).Inc()
}

// RecordCacheHit records a result cache hit.
func RecordCacheHit(cache string) {
	CacheLookupsTotal.WithLabelValues(cache, "hit").Inc()
}

// RecordCacheMiss records a result cache miss.
func RecordCacheMiss(cache string) {
	CacheLookupsTotal.WithLabelValues(cache, "miss").Inc()
}

// RecordRefresh records a successful refresh cycle.
func RecordRefresh(listings int, durationSeconds float64) {
	LastRefreshListings.Set(float64(listings))
	RefreshDuration.Observe(durationSeconds)
}

// RecordRefreshFailure records a failed refresh cycle.
func RecordRefreshFailure(source string) {
	RefreshFailuresTotal.WithLabelValues(source).Inc()
}

// RecordAlert records an alert delivery attempt.
func RecordAlert(success bool) {
	outcome := "sent"
	if !success {
		outcome = "failed"
	}
	AlertsSentTotal.WithLabelValues(outcome).Inc()
}

// RecordCircuitBreakerTrip records a circuit breaker opening.
func RecordCircuitBreakerTrip(name string) {
	CircuitBreakerTripsTotal.WithLabelValues(name).Inc()
}

// UpdateSnapshotSize updates the stats snapshot gauges.
func UpdateSnapshotSize(players, matches int) {
	RosterSize.Set(float64(players))
	HistorySize.Set(float64(matches))
}
