package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/taskly/taskly-api/internal/service"
	"github.com/taskly/taskly-api/internal/store"
)

// The demo account created by "seed --insert".
const (
	demoName     = "mohyware"
	demoEmail    = "mohy@gmail.com"
	demoPassword = "secret"
)

var errSeedMode = errors.New("exactly one of --insert or --destroy is required")

func runSeed(ctx context.Context, cmd *cli.Command) error {
	insert, destroy := cmd.Bool("insert"), cmd.Bool("destroy")
	if insert == destroy {
		return errSeedMode
	}

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	stores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.close(context.Background())

	app, err := newApplication(cfg, log, stores)
	if err != nil {
		return err
	}

	if insert {
		return app.seedInsert(ctx)
	}
	return app.seedDestroy(ctx)
}

// seedInsert registers the demo user through the auth service so the password
// is hashed exactly as for real sign-ups. An existing demo user is left alone.
func (app *application) seedInsert(ctx context.Context) error {
	_, err := app.authService.Register(ctx, service.RegisterInput{
		Email:    demoEmail,
		Password: demoPassword,
		Name:     demoName,
	})
	switch {
	case errors.Is(err, store.ErrEmailExists):
		app.logger.Info("demo user already present", slog.String("email", demoEmail))
		return nil
	case err != nil:
		return fmt.Errorf("failed to insert demo user: %w", err)
	}
	app.logger.Info("data inserted", slog.String("email", demoEmail))
	return nil
}

// seedDestroy removes the demo user; its tasks go with it.
func (app *application) seedDestroy(ctx context.Context) error {
	err := app.userStore.DeleteByEmail(ctx, demoEmail)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		app.logger.Info("demo user not present", slog.String("email", demoEmail))
		return nil
	case err != nil:
		return fmt.Errorf("failed to destroy demo user: %w", err)
	}
	app.logger.Info("data destroyed", slog.String("email", demoEmail))
	return nil
}
