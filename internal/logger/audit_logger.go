// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for refresh cycles and alerts.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogRefreshCycle logs a completed refresh cycle.
func (al *AuditLogger) LogRefreshCycle(cycleID, source string, listings int, startedAt time.Time, durationMs float64) {
	al.WithFields(logrus.Fields{
		"cycle_id":    cycleID,
		"source":      source,
		"listings":    listings,
		"started_at":  startedAt.Unix(),
		"duration_ms": durationMs,
	}).Info("Refresh cycle recorded")
}

// LogRefreshFailure logs a refresh cycle that could not reach its upstream.
func (al *AuditLogger) LogRefreshFailure(cycleID, source string, err error) {
	al.WithFields(logrus.Fields{
		"cycle_id": cycleID,
		"source":   source,
	}).WithError(err).Error("Refresh cycle failed")
}

// LogCircuitBreakerEvent logs circuit breaker state transitions.
func (al *AuditLogger) LogCircuitBreakerEvent(name, fromState, toState string) {
	al.WithFields(logrus.Fields{
		"breaker":    name,
		"from_state": fromState,
		"to_state":   toState,
	}).Warn("Circuit breaker state changed")
}

// LogAlertDelivery logs an alert notification attempt.
func (al *AuditLogger) LogAlertDelivery(listingKey string, chatID int64, delivered bool) {
	al.WithFields(logrus.Fields{
		"listing_key": listingKey,
		"chat_id":     chatID,
		"delivered":   delivered,
	}).Info("Alert delivery recorded")
}
