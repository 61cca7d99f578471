package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/dailynote/internal/config"
	"github.com/phrazzld/dailynote/internal/platform/memory"
	"github.com/phrazzld/dailynote/internal/platform/postgres"
	"github.com/phrazzld/dailynote/internal/platform/sqlite"
	"github.com/phrazzld/dailynote/internal/store"
	"github.com/pressly/goose/v3"
)

// openDocumentStore connects to the configured backend, applies migrations
// and returns the store with a function that releases it.
func openDocumentStore(
	ctx context.Context,
	cfg config.DatabaseConfig,
	log *slog.Logger,
) (store.DocumentStore, func() error, error) {
	switch cfg.Driver {
	case "memory":
		log.Warn("using in-memory document store; nothing will be persisted")
		return memory.NewDocumentStore(log), func() error { return nil }, nil

	case "postgres":
		db, err := sql.Open("pgx", cfg.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

		if err := prepare(ctx, db, cfg, log, postgres.Migrate); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("database connection established", slog.String("driver", cfg.Driver))
		return postgres.NewDocumentStore(db, log), db.Close, nil

	case "sqlite3":
		db, err := sqlite.Open(cfg.URL)
		if err != nil {
			return nil, nil, err
		}

		if err := prepare(ctx, db, cfg, log, sqlite.Migrate); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("database connection established", slog.String("driver", cfg.Driver))
		return sqlite.NewDocumentStore(db, log), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

type migrateFunc func(ctx context.Context, db *sql.DB, logger goose.Logger) error

// prepare pings db within the connect timeout and applies migrations.
func prepare(ctx context.Context, db *sql.DB, cfg config.DatabaseConfig, log *slog.Logger, migrate migrateFunc) error {
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(ctx, db, &slogGooseLogger{logger: log}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
