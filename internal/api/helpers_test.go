package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/taskly/taskly-api/internal/api/middleware"
	"github.com/taskly/taskly-api/internal/config"
	"github.com/taskly/taskly-api/internal/mocks"
	"github.com/taskly/taskly-api/internal/platform/logger"
	"github.com/taskly/taskly-api/internal/service"
	"github.com/taskly/taskly-api/internal/service/auth"
)

const testJWTSecret = "test-secret-that-is-at-least-32-bytes-long"

// testAPI is the full auth and task surface backed by in-memory stores.
type testAPI struct {
	router   http.Handler
	users    *mocks.MockUserStore
	tasks    *mocks.MockTaskStore
	attempts *attemptRecorder
}

// attemptRecorder remembers auth outcomes as "action:true|false".
type attemptRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *attemptRecorder) ObserveAuthAttempt(action string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, fmt.Sprintf("%s:%t", action, success))
}

func (r *attemptRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.outcomes...)
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithStores(t, mocks.NewMockUserStore(), mocks.NewMockTaskStore())
}

func newTestAPIWithStores(t *testing.T, users *mocks.MockUserStore, tasks *mocks.MockTaskStore) *testAPI {
	t.Helper()
	log := logger.Discard()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	})
	require.NoError(t, err)

	authService, err := service.NewAuthService(users, auth.NewBcryptHasher(4), jwtService, log)
	require.NoError(t, err)
	taskService, err := service.NewTaskService(tasks, config.TasksConfig{DefaultPageSize: 10, MaxPageSize: 100}, log)
	require.NoError(t, err)

	attempts := &attemptRecorder{}
	authHandler := NewAuthHandler(authService, log).WithRecorder(attempts)
	taskHandler := NewTaskHandler(taskService, log)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	r := chi.NewRouter()
	r.Use(middleware.Trace(log))
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Route("/tasks", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Get("/{id}", taskHandler.GetTask)
		r.Patch("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
	})

	return &testAPI{router: r, users: users, tasks: tasks, attempts: attempts}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// register creates a user and returns its token.
func (a *testAPI) register(t *testing.T, name, email string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp AuthResponse
	decode(t, rec, &resp)
	return resp.Token
}

func (a *testAPI) createTask(t *testing.T, token, title, description string) TaskResponse {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/tasks", token, map[string]string{
		"title": title, "description": description,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var env TaskEnvelope
	decode(t, rec, &env)
	return env.Task
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rec, &body)
	return body.Error
}
