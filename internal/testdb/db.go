//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx driver
	"golang.org/x/crypto/bcrypt"

	"github.com/taskly/taskly-api/internal/ciutil"
	"github.com/taskly/taskly-api/internal/platform/logger"
	"github.com/taskly/taskly-api/internal/platform/postgres"
	"github.com/taskly/taskly-api/internal/store"
)

var migrateOnce sync.Once
var migrateErr error

// GetTestDatabaseURL returns the PostgreSQL URL for integration tests.
func GetTestDatabaseURL() string {
	return ciutil.TestDatabaseURL(nil)
}

// skipOrFail skips t when a database is missing locally and fails it in CI.
func skipOrFail(t *testing.T, envVar string) {
	t.Helper()
	if ciutil.MissingDatabaseIsFatal() {
		t.Fatalf("%s must be set in CI", envVar)
	}
	t.Skipf("%s not set - skipping integration test", envVar)
}

// GetTestDBWithT opens a connection to the test database, applies the
// migrations once per test binary and closes the connection on cleanup.
// The test is skipped when no database is configured.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		skipOrFail(t, ciutil.EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(ctx, db, postgres.MigrateUp, logger.Discard())
	})
	if migrateErr != nil {
		t.Fatalf("failed to migrate test database: %v", migrateErr)
	}

	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// MustInsertUser inserts a user with a minimum-cost bcrypt hash of "password"
// and returns its ID.
func MustInsertUser(ctx context.Context, t *testing.T, db store.DBTX, email string) uuid.UUID {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	id := uuid.New()
	now := time.Now().UTC()
	_, err = db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, "Test User", email, string(hash), now, now)
	if err != nil {
		t.Fatalf("failed to insert test user: %v", err)
	}
	return id
}
