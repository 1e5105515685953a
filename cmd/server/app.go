package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskly/taskly-api/internal/config"
	"github.com/taskly/taskly-api/internal/platform/metrics"
	"github.com/taskly/taskly-api/internal/service"
	"github.com/taskly/taskly-api/internal/service/auth"
	"github.com/taskly/taskly-api/internal/store"
)

// application holds the wired dependencies shared by every command.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	userStore   store.UserStore
	taskStore   store.TaskStore
	jwtService  auth.JWTService
	authService service.AuthService
	taskService service.TaskService
	metrics     *metrics.Metrics
	closeStores func(ctx context.Context)
}

// newApplication builds the services on top of the selected stores.
func newApplication(cfg *config.Config, logger *slog.Logger, stores *storeSet) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	authService, err := service.NewAuthService(
		stores.users,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		jwtService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	taskService, err := service.NewTaskService(stores.tasks, cfg.Tasks, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	var m *metrics.Metrics
	if cfg.Telemetry.MetricsEnabled {
		m = metrics.New()
	}

	closeStores := stores.close
	if closeStores == nil {
		closeStores = func(context.Context) {}
	}

	return &application{
		config:      cfg,
		logger:      logger,
		userStore:   stores.users,
		taskStore:   stores.tasks,
		jwtService:  jwtService,
		authService: authService,
		taskService: taskService,
		metrics:     m,
		closeStores: closeStores,
	}, nil
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives,
// then releases the stores.
func (app *application) Run(ctx context.Context) error {
	defer app.closeStores(context.Background())
	return app.serve(ctx, app.setupRouter())
}
