package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/tt-value/internal/database"
	"github.com/yourusername/tt-value/internal/models"
)

// PostgresPlayerRepository implements PlayerRepository for PostgreSQL
type PostgresPlayerRepository struct {
	db *database.DB
}

// NewPostgresPlayerRepository creates a new player repository
func NewPostgresPlayerRepository(db *database.DB) PlayerRepository {
	return &PostgresPlayerRepository{db: db}
}

// Upsert inserts a player or refreshes its name, rating and image
func (r *PostgresPlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (id, name, rating, image_url, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, rating = EXCLUDED.rating, image_url = EXCLUDED.image_url, updated_at = now()
	`

	_, err := r.db.GetPool().Exec(ctx, query, player.ID, player.Name, player.Rating, player.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}

	return nil
}

// GetByID retrieves a player by ID
func (r *PostgresPlayerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	query := `SELECT id, name, rating, image_url FROM players WHERE id = $1`

	player := &models.Player{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(&player.ID, &player.Name, &player.Rating, &player.ImageURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// List retrieves all players ordered by ID
func (r *PostgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT id, name, rating, image_url FROM players ORDER BY id ASC`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Rating, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	return players, nil
}
