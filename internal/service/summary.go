package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/tt-value/internal/models"
)

// Summary counts the outcome of an analysis pass
type Summary struct {
	Total      int `json:"total"`
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
	Value      int `json:"value"`
}

// Summarize counts resolved, unresolved and value listings
func Summarize(results []models.AnnotatedListing) Summary {
	s := Summary{Total: len(results)}
	for i := range results {
		if results[i].Resolved() {
			s.Resolved++
		} else {
			s.Unresolved++
		}
		if results[i].Analysis.IsValue {
			s.Value++
		}
	}
	return s
}

// ValueBets keeps only listings flagged as value, in their original order
func ValueBets(results []models.AnnotatedListing) []models.AnnotatedListing {
	out := make([]models.AnnotatedListing, 0)
	for _, r := range results {
		if r.Analysis.IsValue {
			out = append(out, r)
		}
	}
	return out
}

type cycleIDKey struct{}

// WithCycleID tags a context with a refresh cycle ID for log correlation
func WithCycleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, cycleIDKey{}, id)
}

// CycleIDFromContext returns the cycle ID, or a fresh one when untagged
func CycleIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(cycleIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
