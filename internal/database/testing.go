package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yourusername/results-collector/internal/config"
)

// TestConfigPathEnv points integration tests at a config file with a
// reachable postgres database.
const TestConfigPathEnv = "RESULTS_COLLECTOR_TEST_CONFIG"

// SetupTestDB connects to the integration database and applies the schema.
// The test is skipped when no test config is provided.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	path := os.Getenv(TestConfigPathEnv)
	if path == "" {
		t.Skip("Integration test - set " + TestConfigPathEnv + " to run against postgres")
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	return db
}

// TeardownTestDB empties the collector tables and closes the pool.
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.Exec(ctx, "TRUNCATE cars, carclasses, tracks, series, teams, events, event_result, series_result")
	if err != nil {
		t.Logf("warning: failed to truncate test tables: %v", err)
	}
	_ = db.Close()
}
