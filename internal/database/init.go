package database

import (
	"context"
	"fmt"

	"github.com/yourusername/tt-value/internal/config"
)

// schema holds the stats tables read by the postgres stats source
const schema = `
CREATE TABLE IF NOT EXISTS players (
	id          BIGINT PRIMARY KEY,
	name        TEXT NOT NULL,
	rating      DOUBLE PRECISION NOT NULL DEFAULT 0,
	image_url   TEXT NOT NULL DEFAULT '',
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS match_history (
	id               BIGSERIAL PRIMARY KEY,
	tournament_id    BIGINT NOT NULL DEFAULT 0,
	tournament_name  TEXT NOT NULL DEFAULT '',
	played_at        TIMESTAMPTZ NOT NULL,
	player_one_id    BIGINT NOT NULL,
	player_one_name  TEXT NOT NULL,
	player_two_id    BIGINT NOT NULL,
	player_two_name  TEXT NOT NULL,
	score_one        INT NOT NULL,
	score_two        INT NOT NULL,
	winner_id        BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS match_history_player_one_idx ON match_history (player_one_id, played_at DESC);
CREATE INDEX IF NOT EXISTS match_history_player_two_idx ON match_history (player_two_id, played_at DESC);
`

// Initialize creates a database connection pool and verifies the stats tables exist
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	for _, table := range []string{"players", "match_history"} {
		var found bool
		err = db.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)", table,
		).Scan(&found)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !found {
			db.Close()
			return nil, fmt.Errorf("table %s not found, run 'tt-value migrate' first", table)
		}
	}

	return db, nil
}

// EnsureSchema creates the stats tables when they are missing
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
