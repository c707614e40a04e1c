// Package stats loads the player roster and match history the engine reads from.
package stats

import (
	"context"

	"github.com/yourusername/tt-value/internal/models"
)

// Source provides a read-only snapshot of the stats datasets
type Source interface {
	Load(ctx context.Context) (models.Snapshot, error)
}

// StaticSource serves a fixed snapshot
type StaticSource struct {
	Snapshot models.Snapshot
}

// Load returns the configured snapshot
func (s StaticSource) Load(ctx context.Context) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, err
	}
	return s.Snapshot, nil
}
