package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/platform/logger"
	"github.com/taskly/taskly-api/internal/service/auth"
	"github.com/taskly/taskly-api/internal/store"
)

type authFixture struct {
	svc    AuthService
	users  *MockUserStore
	hasher *MockPasswordHasher
	tokens *MockJWTService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:  new(MockUserStore),
		hasher: new(MockPasswordHasher),
		tokens: new(MockJWTService),
	}
	svc, err := NewAuthService(f.users, f.hasher, f.tokens, logger.Discard())
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestNewAuthService(t *testing.T) {
	t.Parallel()

	_, err := NewAuthService(nil, new(MockPasswordHasher), new(MockJWTService), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = NewAuthService(new(MockUserStore), nil, new(MockJWTService), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = NewAuthService(new(MockUserStore), new(MockPasswordHasher), nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores hashed user and issues token", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.hasher.On("Hash", "secret").Return("hashed-secret", nil)
		f.users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "mohy@gmail.com" &&
				u.Name == "mohyware" &&
				u.HashedPassword == "hashed-secret" &&
				u.Password == ""
		})).Return(nil)
		f.tokens.On("GenerateToken", ctx, mock.AnythingOfType("uuid.UUID"), "mohyware").Return("signed", nil)

		result, err := f.svc.Register(ctx, RegisterInput{
			Email:    " Mohy@Gmail.com ",
			Password: "secret",
			Name:     "mohyware",
		})
		require.NoError(t, err)
		assert.Equal(t, "signed", result.Token)
		assert.Equal(t, "mohyware", result.User.Name)
		assert.NotEqual(t, uuid.Nil, result.User.ID)
		f.users.AssertExpectations(t)
		f.tokens.AssertExpectations(t)
	})

	missing := []RegisterInput{
		{Password: "secret", Name: "n"},
		{Email: "a@b.co", Name: "n"},
		{Email: "a@b.co", Password: "secret"},
		{Email: "  ", Password: "secret", Name: "n"},
	}
	for _, input := range missing {
		f := newAuthFixture(t)
		_, err := f.svc.Register(ctx, input)
		assert.ErrorIs(t, err, ErrMissingRegistrationFields)
		assert.Empty(t, f.users.Calls)
	}

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		_, err := f.svc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "secret", Name: "n"})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Empty(t, f.hasher.Calls)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.hasher.On("Hash", "secret").Return("h", nil)
		f.users.On("Create", ctx, mock.Anything).Return(store.ErrEmailExists)

		_, err := f.svc.Register(ctx, RegisterInput{Email: "a@b.co", Password: "secret", Name: "n"})
		assert.ErrorIs(t, err, store.ErrEmailExists)
		f.tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("hash failure", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		boom := errors.New("bcrypt exploded")
		f.hasher.On("Hash", "secret").Return("", boom)

		_, err := f.svc.Register(ctx, RegisterInput{Email: "a@b.co", Password: "secret", Name: "n"})
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, f.users.Calls)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stored := &domain.User{
		ID:             uuid.New(),
		Name:           "mohyware",
		Email:          "mohy@gmail.com",
		HashedPassword: "hashed-secret",
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.users.On("GetByEmail", ctx, "mohy@gmail.com").Return(stored, nil)
		f.hasher.On("Compare", "hashed-secret", "secret").Return(nil)
		f.tokens.On("GenerateToken", ctx, stored.ID, "mohyware").Return("signed", nil)

		result, err := f.svc.Login(ctx, "mohy@gmail.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "signed", result.Token)
		assert.Same(t, stored, result.User)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		_, err := f.svc.Login(ctx, "", "secret")
		assert.ErrorIs(t, err, ErrMissingLoginFields)
		_, err = f.svc.Login(ctx, "mohy@gmail.com", "")
		assert.ErrorIs(t, err, ErrMissingLoginFields)
		assert.Empty(t, f.users.Calls)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.users.On("GetByEmail", ctx, "mohy@gmail.com").Return(stored, nil)
		f.users.On("GetByEmail", ctx, "ghost@gmail.com").Return(nil, store.ErrUserNotFound)
		f.hasher.On("Compare", "hashed-secret", "wrong").Return(auth.ErrPasswordMismatch)
		f.hasher.On("Hash", mock.Anything).Return("dummy-hash", nil)
		f.hasher.On("Compare", "dummy-hash", "wrong").Return(auth.ErrPasswordMismatch)

		_, wrongPassword := f.svc.Login(ctx, "mohy@gmail.com", "wrong")
		_, unknownEmail := f.svc.Login(ctx, "ghost@gmail.com", "wrong")

		assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
		f.hasher.AssertCalled(t, "Compare", "dummy-hash", "wrong")
		f.tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lookup failure", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		boom := errors.New("connection refused")
		f.users.On("GetByEmail", ctx, "mohy@gmail.com").Return(nil, boom)

		_, err := f.svc.Login(ctx, "mohy@gmail.com", "secret")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}
