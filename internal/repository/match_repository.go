package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/tt-value/internal/database"
	"github.com/yourusername/tt-value/internal/models"
)

const matchColumns = `tournament_id, tournament_name, played_at, player_one_id, player_one_name,
	player_two_id, player_two_name, score_one, score_two, winner_id`

const insertMatchQuery = `
	INSERT INTO match_history (` + matchColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match history repository
func NewPostgresMatchRepository(db *database.DB) MatchRepository {
	return &PostgresMatchRepository{db: db}
}

// Insert stores a finished match
func (r *PostgresMatchRepository) Insert(ctx context.Context, m *models.MatchRecord) error {
	_, err := r.db.GetPool().Exec(ctx, insertMatchQuery, matchArgs(m)...)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

// InsertBatch stores several matches in one round trip
func (r *PostgresMatchRepository) InsertBatch(ctx context.Context, matches []models.MatchRecord) error {
	if len(matches) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range matches {
		batch.Queue(insertMatchQuery, matchArgs(&matches[i])...)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for i := range matches {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert match %d in batch: %w", i, err)
		}
	}

	return nil
}

// List retrieves the whole history in insertion order
func (r *PostgresMatchRepository) List(ctx context.Context) ([]models.MatchRecord, error) {
	query := `SELECT ` + matchColumns + ` FROM match_history ORDER BY id ASC`
	return r.query(ctx, query)
}

// ListByPlayer retrieves the newest matches a player took part in
func (r *PostgresMatchRepository) ListByPlayer(ctx context.Context, playerID int64, limit int) ([]models.MatchRecord, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM match_history
		WHERE player_one_id = $1 OR player_two_id = $1
		ORDER BY played_at DESC, id ASC
		LIMIT $2
	`
	return r.query(ctx, query, playerID, limit)
}

func (r *PostgresMatchRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.MatchRecord, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query match history: %w", err)
	}
	defer rows.Close()

	matches := make([]models.MatchRecord, 0)
	for rows.Next() {
		var m models.MatchRecord
		if err := rows.Scan(
			&m.TournamentID, &m.TournamentName, &m.Date, &m.PlayerOneID, &m.PlayerOneName,
			&m.PlayerTwoID, &m.PlayerTwoName, &m.ScoreOne, &m.ScoreTwo, &m.WinnerID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match history: %w", err)
	}

	return matches, nil
}

func matchArgs(m *models.MatchRecord) []interface{} {
	return []interface{}{
		m.TournamentID, m.TournamentName, m.Date, m.PlayerOneID, m.PlayerOneName,
		m.PlayerTwoID, m.PlayerTwoName, m.ScoreOne, m.ScoreTwo, m.WinnerID,
	}
}
