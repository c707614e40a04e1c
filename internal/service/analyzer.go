// Package service wires identity resolution, history and value detection into
// analysis passes over market listings.
package service

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/tt-value/internal/history"
	"github.com/yourusername/tt-value/internal/identity"
	"github.com/yourusername/tt-value/internal/logger"
	"github.com/yourusername/tt-value/internal/metrics"
	"github.com/yourusername/tt-value/internal/models"
	"github.com/yourusername/tt-value/internal/probability"
	"github.com/yourusername/tt-value/internal/strategy"
)

// Clock returns the current time
type Clock func() time.Time

// AnalyzerOption configures an Analyzer
type AnalyzerOption func(*Analyzer)

// WithEstimates attaches probability model estimates to resolved listings
func WithEstimates(enabled bool) AnalyzerOption {
	return func(a *Analyzer) {
		a.withEstimates = enabled
	}
}

// WithClock sets the clock used for daily form counters
func WithClock(clock Clock) AnalyzerOption {
	return func(a *Analyzer) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithDetector replaces the default rule based detector
func WithDetector(detector strategy.Detector) AnalyzerOption {
	return func(a *Analyzer) {
		if detector != nil {
			a.detector = detector
		}
	}
}

// WithDetectorFactory builds the detector from the analyzer's history index
func WithDetectorFactory(factory func(strategy.HeadToHeadProvider) strategy.Detector) AnalyzerOption {
	return func(a *Analyzer) {
		if factory != nil {
			a.detector = factory(a.index)
		}
	}
}

// WithLogger sets the base logger
func WithLogger(base *logrus.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if base != nil {
			a.signals = logger.NewSignalLogger(base)
		}
	}
}

// Analyzer annotates listings against one stats snapshot. It holds no mutable
// state, so the same listings and clock always yield the same output.
type Analyzer struct {
	matcher       *identity.Matcher
	index         *history.Index
	detector      strategy.Detector
	clock         Clock
	withEstimates bool
	signals       *logger.SignalLogger
}

// NewAnalyzer builds the matcher and history index for a snapshot
func NewAnalyzer(snapshot models.Snapshot, opts ...AnalyzerOption) *Analyzer {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	a := &Analyzer{
		matcher: identity.NewMatcher(snapshot.Roster),
		index:   history.NewIndex(snapshot.Matches),
		clock:   time.Now,
		signals: logger.NewSignalLogger(discard),
	}
	a.detector = strategy.NewRuleBasedDetector(a.index)

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Index returns the history index built for the snapshot
func (a *Analyzer) Index() *history.Index {
	return a.index
}

// Analyze annotates every listing independently. A listing whose names do not
// resolve keeps the empty analysis; the pass itself never fails.
func (a *Analyzer) Analyze(ctx context.Context, listings []models.Listing) []models.AnnotatedListing {
	start := time.Now()
	now := a.clock()
	cycleID := CycleIDFromContext(ctx)

	results := make([]models.AnnotatedListing, len(listings))
	misses, resolved, signals := 0, 0, 0

	for i, listing := range listings {
		out, missed := a.annotate(listing, now)
		results[i] = out
		misses += missed
		if out.Resolved() {
			resolved++
		}
		if out.Analysis.IsValue {
			signals++
			metrics.RecordValueSignal(a.detector.Name())
			a.signals.LogValueSignal(a.detector.Name(), listing.Key(), out.Analysis.Score, out.Analysis.Reasons)
		}
	}

	elapsed := time.Since(start)
	metrics.RecordAnalysis(len(listings), misses, elapsed.Seconds())
	a.signals.LogAnalysisPass(cycleID, len(listings), resolved, signals, float64(elapsed.Microseconds())/1000)

	return results
}

// annotate resolves one listing and returns the number of unresolved names
func (a *Analyzer) annotate(listing models.Listing, now time.Time) (models.AnnotatedListing, int) {
	out := models.AnnotatedListing{Listing: listing, Analysis: models.NoSignal()}

	matchedA, okA := a.matcher.Match(listing.PlayerA)
	matchedB, okB := a.matcher.Match(listing.PlayerB)

	missed := 0
	if !okA {
		missed++
		a.signals.LogUnresolvedName(listing.Key(), "A", listing.PlayerA)
	}
	if !okB {
		missed++
		a.signals.LogUnresolvedName(listing.Key(), "B", listing.PlayerB)
	}
	if missed > 0 {
		return out, missed
	}

	// Copies so daily counters never leak back into the roster
	playerA, playerB := *matchedA, *matchedB
	playerA.DailyWins, playerA.DailyLosses = a.index.DailyRecord(playerA.ID, now)
	playerB.DailyWins, playerB.DailyLosses = a.index.DailyRecord(playerB.ID, now)

	out.Stats = &models.MatchStats{P1: playerA.Summary(), P2: playerB.Summary()}
	out.Analysis = a.detector.Detect(&playerA, &playerB, listing.Odds)

	if a.withEstimates {
		estimate := probability.Estimate(playerA, playerB, a.index.HeadToHead(playerA.ID, playerB.ID))
		out.Estimate = &estimate
		a.signals.LogEstimate(listing.Key(), estimate.ProbA, estimate.ProbB, estimate.Dominance, estimate.Momentum)
	}

	return out, 0
}
