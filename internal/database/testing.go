package database

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestDatabaseURLEnv names the variable holding the integration test database URL
const TestDatabaseURLEnv = "TT_VALUE_TEST_DATABASE_URL"

// SetupTestDB connects to the integration test database and applies the schema.
// The test is skipped when no database is configured.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	url := os.Getenv(TestDatabaseURLEnv)
	if url == "" {
		t.Skipf("integration test - set %s to run", TestDatabaseURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDBFromURL(ctx, url)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		t.Fatalf("failed to apply test schema: %v", err)
	}

	return db
}

// TeardownTestDB truncates the stats tables and closes the connection
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.pool.Exec(ctx, "TRUNCATE players, match_history"); err != nil {
		t.Logf("warning: failed to truncate test tables: %v", err)
	}
	db.Close()
}
