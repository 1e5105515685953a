package api

import (
	"log/slog"
	"net/http"

	"github.com/taskly/taskly-api/internal/api/shared"
	"github.com/taskly/taskly-api/internal/service"
)

// AuthAttemptRecorder counts register and login outcomes.
type AuthAttemptRecorder interface {
	ObserveAuthAttempt(action string, success bool)
}

// AuthHandler serves /auth/register and /auth/login.
type AuthHandler struct {
	authService service.AuthService
	recorder    AuthAttemptRecorder
	logger      *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService service.AuthService, logger *slog.Logger) *AuthHandler {
	if authService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("authService cannot be nil for AuthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authService: authService,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// WithRecorder attaches a recorder that sees every register and login outcome.
func (h *AuthHandler) WithRecorder(recorder AuthAttemptRecorder) *AuthHandler {
	h.recorder = recorder
	return h
}

func (h *AuthHandler) record(action string, err error) {
	if h.recorder != nil {
		h.recorder.ObserveAuthAttempt(action, err == nil)
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Debug("invalid register body", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	h.record("register", err)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		User:  UserSummary{Name: result.User.Name},
		Token: result.Token,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Debug("invalid login body", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	h.record("login", err)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:  UserSummary{Name: result.User.Name},
		Token: result.Token,
	})
}
