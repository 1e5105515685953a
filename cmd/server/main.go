// Package main is the taskly-api binary: the HTTP server plus the migrate and
// seed maintenance commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/taskly/taskly-api/internal/config"
	"github.com/taskly/taskly-api/internal/platform/logger"
	"github.com/taskly/taskly-api/internal/platform/postgres"
)

const version = "1.0.0"

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "taskly-api: %v\n", err)
		os.Exit(1)
	}
}

// newCommand builds the CLI. Running the binary without a subcommand serves HTTP.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "taskly-api",
		Usage:   "Multi-tenant task tracking API",
		Version: version,
		Action:  runServe,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Action: runServe,
			},
			migrateCommand(),
			seedCommand(),
			hashCommand(),
		},
	}
}

func migrateCommand() *cli.Command {
	sub := func(name, usage string) *cli.Command {
		return &cli.Command{
			Name:  name,
			Usage: usage,
			Action: func(ctx context.Context, _ *cli.Command) error {
				return runMigrate(ctx, name)
			},
		}
	}
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the PostgreSQL schema",
		Commands: []*cli.Command{
			sub(postgres.MigrateUp, "Apply all pending migrations"),
			sub(postgres.MigrateDown, "Roll back the latest migration"),
			sub(postgres.MigrateStatus, "Show the status of every migration"),
			sub(postgres.MigrateVersion, "Print the current schema version"),
			sub(postgres.MigrateReset, "Roll back every migration"),
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Insert or remove the demo user",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "insert",
				Aliases: []string{"i"},
				Usage:   "Create the demo user",
			},
			&cli.BoolFlag{
				Name:    "destroy",
				Aliases: []string{"d"},
				Usage:   "Delete the demo user and its tasks",
			},
		},
		Action: runSeed,
	}
}

// bootstrap loads configuration and installs the process logger.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))
	return cfg, log, nil
}

func runServe(ctx context.Context, _ *cli.Command) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	stores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, log, stores)
	if err != nil {
		stores.close(context.Background())
		return err
	}
	return app.Run(ctx)
}

func runMigrate(ctx context.Context, command string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	if cfg.Database.Driver != driverPostgres {
		return fmt.Errorf("migrations apply to the %s driver only; mongo indexes are created at startup", driverPostgres)
	}

	db, err := openPostgres(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if err := postgres.Migrate(ctx, db, command, log); err != nil {
		return fmt.Errorf("migrate %s failed: %w", command, err)
	}
	return nil
}
