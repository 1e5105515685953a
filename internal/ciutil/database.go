package ciutil

import (
	"log/slog"
)

// Variables naming the integration test databases, preferred name first.
const (
	EnvTestDatabaseURL = "TASKLY_TEST_DATABASE_URL"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvTasklyDBURL     = "TASKLY_DATABASE_URL"

	EnvTestMongoURL = "TASKLY_TEST_MONGO_URL"
)

// TestDatabaseURL returns the PostgreSQL URL for integration tests, or "" when
// none is configured.
func TestDatabaseURL(logger *slog.Logger) string {
	dbURL := EnvWithFallbacks([]string{EnvTestDatabaseURL, EnvDatabaseURL, EnvTasklyDBURL}, "", logger)
	if dbURL != "" && logger != nil {
		logger.Debug("using test database", slog.String("url", MaskSensitiveValue(dbURL)))
	}
	return dbURL
}

// TestMongoURL returns the MongoDB URL for integration tests, or "" when none
// is configured.
func TestMongoURL(logger *slog.Logger) string {
	return EnvWithFallbacks([]string{EnvTestMongoURL}, "", logger)
}

// MissingDatabaseIsFatal reports whether an unconfigured test database should
// fail the run instead of skipping it. CI runs are expected to provide one.
func MissingDatabaseIsFatal() bool {
	return IsCI()
}
