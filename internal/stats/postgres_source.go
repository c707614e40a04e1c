package stats

import (
	"context"
	"fmt"

	"github.com/yourusername/tt-value/internal/models"
	"github.com/yourusername/tt-value/internal/repository"
)

// PostgresSource reads the snapshot from the players and match_history tables
type PostgresSource struct {
	players repository.PlayerRepository
	matches repository.MatchRepository
}

// NewPostgresSource creates a database backed stats source
func NewPostgresSource(repos *repository.Repositories) *PostgresSource {
	return &PostgresSource{
		players: repos.Player,
		matches: repos.Match,
	}
}

// Load queries both tables
func (s *PostgresSource) Load(ctx context.Context) (models.Snapshot, error) {
	roster, err := s.players.List(ctx)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load roster: %w", err)
	}

	matches, err := s.matches.List(ctx)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load match history: %w", err)
	}

	return models.Snapshot{Roster: roster, Matches: matches}, nil
}
