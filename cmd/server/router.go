package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/taskly/taskly-api/internal/api"
	"github.com/taskly/taskly-api/internal/api/middleware"
)

const bannerName = "Tasks API"

// setupRouter mounts every route and the middleware stack.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Trace(app.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	if app.metrics != nil {
		r.Use(middleware.Metrics(app.metrics))
	}

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	r.Get("/", api.Banner(bannerName, version))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if app.metrics != nil {
		r.Handle("/metrics", app.metrics.Handler())
	}

	authHandler := api.NewAuthHandler(app.authService, app.logger)
	if app.metrics != nil {
		authHandler.WithRecorder(app.metrics)
	}
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	authMiddleware := middleware.NewAuthMiddleware(app.jwtService, app.logger)

	r.Route("/api/v1", func(r chi.Router) {
		if rl := app.config.RateLimit; rl.Enabled {
			limiter := middleware.NewRateLimiter(rl.Requests, time.Duration(rl.WindowMinutes)*time.Minute, app.metrics)
			r.Use(limiter.Middleware)
		}

		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/tasks", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Get("/{"+api.TaskIDParam+"}", taskHandler.GetTask)
			r.Patch("/{"+api.TaskIDParam+"}", taskHandler.UpdateTask)
			r.Delete("/{"+api.TaskIDParam+"}", taskHandler.DeleteTask)
		})
	})

	return otelhttp.NewHandler(r, app.config.Telemetry.ServiceName,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
