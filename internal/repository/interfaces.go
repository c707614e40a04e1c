package repository

import (
	"context"

	"github.com/yourusername/tt-value/internal/models"
)

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	Upsert(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
}

// MatchRepository defines the interface for match history data access
type MatchRepository interface {
	Insert(ctx context.Context, match *models.MatchRecord) error
	InsertBatch(ctx context.Context, matches []models.MatchRecord) error
	List(ctx context.Context) ([]models.MatchRecord, error)
	ListByPlayer(ctx context.Context, playerID int64, limit int) ([]models.MatchRecord, error)
}
