// Package db opens and migrates the Postgres database behind the postgres
// store backend.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/benx421/payment-gateway/processor/internal/config"

	// Register the postgres (lib/pq) and pgx drivers with database/sql
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/lib/pq"
)

// DB wraps the database connection pool
type DB struct {
	*sql.DB
	logger *slog.Logger
}

// Connect opens the pool and pings it, retrying up to cfg.ConnectAttempts
// times so the processor can start alongside its database.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	logger = logger.With("driver", cfg.Driver, "host", cfg.Host, "port", cfg.Port, "database", cfg.DBName)
	logger.Info("connecting to database")

	pool, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := ping(ctx, pool, cfg.ConnectAttempts, cfg.ConnectBackoff, logger); err != nil {
		_ = pool.Close()
		return nil, err
	}

	logger.Info("connected to database",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
		"conn_max_lifetime", cfg.ConnMaxLifetime,
	)

	return &DB{DB: pool, logger: logger}, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// ping waits backoff*n before the n'th retry.
func ping(ctx context.Context, p pinger, attempts int, backoff time.Duration, logger *slog.Logger) error {
	attempts = max(attempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = p.PingContext(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		wait := backoff * time.Duration(attempt)
		logger.Warn("database not ready, retrying", "attempt", attempt, "wait", wait, "error", err)
		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to ping database: %w", ctx.Err())
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("failed to ping database after %d attempts: %w", attempts, err)
}

// Close closes the database connection and logs the closure.
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}
