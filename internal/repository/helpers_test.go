package repository

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/benx421/payment-gateway/processor/internal/config"
	"github.com/benx421/payment-gateway/processor/internal/db"
)

// setupTestDB connects to the database described by the DB_* variables and
// applies the migrations. The test is skipped when DB_HOST is not set.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	return setupTestDBWithDriver(t, "")
}

// setupTestDBWithDriver is setupTestDB with DB_DRIVER overridden when driver
// is not empty.
func setupTestDBWithDriver(t *testing.T, driver string) *db.DB {
	t.Helper()

	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set; skipping database integration test")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if driver != "" {
		cfg.Database.Driver = driver
	}

	database, err := db.Connect(context.Background(), &cfg.Database, testLogger())
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return database
}

func cleanupTestDB(t *testing.T, database *db.DB) {
	t.Helper()
	if err := database.Close(); err != nil {
		log.Printf("failed to close test database: %v", err)
	}
}

func truncateTables(t *testing.T, database *db.DB) {
	t.Helper()

	tables := []string{"transactions", "cards"}
	for _, table := range tables {
		_, err := database.ExecContext(context.Background(), "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE")
		if err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}
