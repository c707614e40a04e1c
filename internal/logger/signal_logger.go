// Package logger provides value-signal logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// SignalLogger provides dedicated logging for analysis passes and value signals.
type SignalLogger struct {
	*logrus.Entry
}

// NewSignalLogger creates a new signal logger.
func NewSignalLogger(baseLogger *logrus.Logger) *SignalLogger {
	return &SignalLogger{
		Entry: baseLogger.WithField("component", "signals"),
	}
}

// LogAnalysisPass logs the outcome of one analysis pass.
func (sl *SignalLogger) LogAnalysisPass(cycleID string, listings, resolved, signals int, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"cycle_id":             cycleID,
		"listings":             listings,
		"resolved":             resolved,
		"unresolved":           listings - resolved,
		"signals":              signals,
		"analysis_duration_ms": durationMs,
	}).Info("Analysis pass completed")
}

// LogValueSignal logs a listing flagged as value.
func (sl *SignalLogger) LogValueSignal(detector, listingKey string, score int, reasons []string) {
	sl.WithFields(logrus.Fields{
		"detector":    detector,
		"listing_key": listingKey,
		"score":       score,
		"reasons":     reasons,
	}).Info("Value signal raised")
}

// LogUnresolvedName logs a listed name that matched no known player.
func (sl *SignalLogger) LogUnresolvedName(listingKey, side, name string) {
	sl.WithFields(logrus.Fields{
		"listing_key": listingKey,
		"side":        side,
		"listed_name": name,
	}).Debug("Listed name not resolved")
}

// LogEstimate logs the probability estimate attached to a listing.
func (sl *SignalLogger) LogEstimate(listingKey string, probA, probB int, dominance, momentum bool) {
	sl.WithFields(logrus.Fields{
		"listing_key": listingKey,
		"prob_a":      probA,
		"prob_b":      probB,
		"dominance":   dominance,
		"momentum":    momentum,
	}).Debug("Probability estimate computed")
}
