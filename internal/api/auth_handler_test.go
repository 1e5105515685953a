package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskly/taskly-api/internal/mocks"
)

func TestRegister(t *testing.T) {
	t.Run("returns name and token", func(t *testing.T) {
		api := newTestAPI(t)
		rec := api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
			"name": "mohyware", "email": "mohy@gmail.com", "password": "secret",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp AuthResponse
		decode(t, rec, &resp)
		assert.Equal(t, "mohyware", resp.User.Name)
		assert.NotEmpty(t, resp.Token)
		assert.NotContains(t, rec.Body.String(), "secret")
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		api := newTestAPI(t)
		api.register(t, "a", "a@x.com")

		rec := api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
			"name": "b", "email": "A@x.com", "password": "secret",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, msgEmailInUse, errorMessage(t, rec))
		assert.Equal(t, 1, api.users.Len())
	})

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"missing name", map[string]string{"email": "a@x.com", "password": "p"}, msgMissingRegister},
		{"missing password", map[string]string{"email": "a@x.com", "name": "n"}, msgMissingRegister},
		{"empty body", nil, msgMissingRegister},
		{"invalid email", map[string]string{"email": "nope", "password": "p", "name": "n"},
			"email is not a valid email address"},
		{"malformed json", `{"email":`, msgInvalidRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := newTestAPI(t)
			rec := api.do(t, http.MethodPost, "/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.message, errorMessage(t, rec))
			assert.Zero(t, api.users.Len())
		})
	}

	t.Run("store failure is hidden", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		users.CreateError = errors.New("pq: connection to 10.1.2.3 refused")
		api := newTestAPIWithStores(t, users, mocks.NewMockTaskStore())

		rec := api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
			"name": "n", "email": "a@x.com", "password": "p",
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, msgUnexpected, errorMessage(t, rec))
		assert.NotContains(t, rec.Body.String(), "10.1.2.3")
	})
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "mohyware", "mohy@gmail.com")

	t.Run("success", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/auth/login", "", map[string]string{
			"email": "mohy@gmail.com", "password": "secret",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		var resp AuthResponse
		decode(t, rec, &resp)
		assert.Equal(t, "mohyware", resp.User.Name)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "mohy@gmail.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, msgMissingLogin, errorMessage(t, rec))
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		wrong := api.do(t, http.MethodPost, "/auth/login", "", map[string]string{
			"email": "mohy@gmail.com", "password": "nope",
		})
		unknown := api.do(t, http.MethodPost, "/auth/login", "", map[string]string{
			"email": "ghost@gmail.com", "password": "nope",
		})

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, msgInvalidCreds, errorMessage(t, wrong))
		assert.Equal(t, msgInvalidCreds, errorMessage(t, unknown))
	})
}

func TestAuthAttemptsRecorded(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "mohyware", "mohy@gmail.com")

	api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "again", "email": "mohy@gmail.com", "password": "secret",
	})
	api.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "mohy@gmail.com", "password": "secret",
	})
	api.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "mohy@gmail.com", "password": "wrong",
	})
	// Undecodable bodies never reach the service and are not counted.
	api.do(t, http.MethodPost, "/auth/login", "", "{")

	assert.Equal(t, []string{
		"register:true",
		"register:false",
		"login:true",
		"login:false",
	}, api.attempts.all())
}
