package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/taskly/taskly-api/internal/config"
	"github.com/taskly/taskly-api/internal/platform/mongodb"
	"github.com/taskly/taskly-api/internal/platform/postgres"
	"github.com/taskly/taskly-api/internal/store"
)

const (
	driverPostgres = "postgres"
	driverMongo    = "mongo"

	connectTimeout = 10 * time.Second
)

// storeSet is the persistence layer selected by configuration.
type storeSet struct {
	users store.UserStore
	tasks store.TaskStore
	close func(ctx context.Context)
}

// openStores connects to the configured engine and builds its stores.
func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storeSet, error) {
	switch cfg.Database.Driver {
	case driverPostgres:
		db, err := openPostgres(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		return &storeSet{
			users: postgres.NewPostgresUserStore(db, log),
			tasks: postgres.NewPostgresTaskStore(db, log),
			close: func(context.Context) {
				if err := db.Close(); err != nil {
					log.Error("failed to close database", slog.String("error", err.Error()))
				}
			},
		}, nil

	case driverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		client, err := mongodb.Connect(connectCtx, cfg.Database.URL, log)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Database.Name)
		if err := mongodb.EnsureIndexes(connectCtx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to ensure mongo indexes: %w", err)
		}
		return &storeSet{
			users: mongodb.NewMongoUserStore(db, log),
			tasks: mongodb.NewMongoTaskStore(db, log),
			close: func(ctx context.Context) {
				if err := client.Disconnect(ctx); err != nil {
					log.Error("failed to disconnect from mongo", slog.String("error", err.Error()))
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// openPostgres opens a pgx-backed pool sized from cfg and verifies it with a ping.
func openPostgres(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return db, nil
}
