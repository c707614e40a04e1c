package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/tt-value/internal/datasource"
	"github.com/yourusername/tt-value/internal/logger"
	"github.com/yourusername/tt-value/internal/metrics"
	"github.com/yourusername/tt-value/internal/models"
	"github.com/yourusername/tt-value/internal/stats"
)

// SignalSink receives the annotated listings of every successful refresh
type SignalSink interface {
	Notify(ctx context.Context, results []models.AnnotatedListing) error
}

// DefaultSinkTimeout bounds one sink delivery
const DefaultSinkTimeout = 2 * time.Minute

// RefreshService runs one fetch-and-analyze cycle per call
type RefreshService struct {
	market      datasource.MarketSource
	stats       stats.Source
	options     []AnalyzerOption
	sinks       []SignalSink
	sinkTimeout time.Duration
	pending     sync.WaitGroup
	logger      *logrus.Logger
	audit       *logger.AuditLogger
}

// NewRefreshService creates a new refresh service
func NewRefreshService(
	market datasource.MarketSource,
	statsSource stats.Source,
	log *logrus.Logger,
	opts ...AnalyzerOption,
) *RefreshService {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	return &RefreshService{
		market:      market,
		stats:       statsSource,
		options:     append([]AnalyzerOption{WithLogger(log)}, opts...),
		sinkTimeout: DefaultSinkTimeout,
		logger:      log,
		audit:       logger.NewAuditLogger(log),
	}
}

// AddSink registers a receiver for refresh results
func (r *RefreshService) AddSink(sink SignalSink) {
	r.sinks = append(r.sinks, sink)
}

// SetSinkTimeout changes how long a single sink delivery may run
func (r *RefreshService) SetSinkTimeout(d time.Duration) {
	if d > 0 {
		r.sinkTimeout = d
	}
}

// Wait blocks until every sink delivery started by Refresh has returned
func (r *RefreshService) Wait() {
	r.pending.Wait()
}

// Refresh fetches listings and the stats snapshot and analyzes them.
// A market failure fails the cycle with models.ErrUpstreamFetch; missing stats
// only degrade the result to unresolved listings.
func (r *RefreshService) Refresh(ctx context.Context) ([]models.AnnotatedListing, error) {
	cycleID := uuid.NewString()
	ctx = WithCycleID(ctx, cycleID)
	startedAt := time.Now()
	source := r.market.Name()

	listings, err := r.market.FetchListings(ctx)
	if err != nil {
		metrics.RecordRefreshFailure(source)
		r.audit.LogRefreshFailure(cycleID, source, err)
		return nil, fmt.Errorf("%w: %s: %w", models.ErrUpstreamFetch, source, err)
	}

	snapshot, err := r.stats.Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.WithError(err).WithField("cycle_id", cycleID).Warn("Stats snapshot unavailable, analyzing without player data")
		snapshot = models.Snapshot{}
	}
	metrics.UpdateSnapshotSize(len(snapshot.Roster), len(snapshot.Matches))

	results := NewAnalyzer(snapshot, r.options...).Analyze(ctx, listings)

	elapsed := time.Since(startedAt)
	metrics.RecordRefresh(len(results), elapsed.Seconds())
	r.audit.LogRefreshCycle(cycleID, source, len(results), startedAt, float64(elapsed.Milliseconds()))

	r.dispatch(ctx, cycleID, results)
	return results, nil
}

// dispatch hands results to every sink in the background. Deliveries outlive
// the request that triggered the refresh but are bounded by sinkTimeout.
func (r *RefreshService) dispatch(ctx context.Context, cycleID string, results []models.AnnotatedListing) {
	if len(r.sinks) == 0 {
		return
	}
	delivered := make([]models.AnnotatedListing, len(results))
	copy(delivered, results)
	base := context.WithoutCancel(ctx)

	for _, sink := range r.sinks {
		r.pending.Add(1)
		go func(sink SignalSink) {
			defer r.pending.Done()
			sinkCtx, cancel := context.WithTimeout(base, r.sinkTimeout)
			defer cancel()
			if err := sink.Notify(sinkCtx, delivered); err != nil {
				r.logger.WithError(err).WithField("cycle_id", cycleID).Warn("Signal sink failed")
			}
		}(sink)
	}
}
