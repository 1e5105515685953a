//go:build integration

package testdb

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskly/taskly-api/internal/ciutil"
	"github.com/taskly/taskly-api/internal/platform/logger"
	"github.com/taskly/taskly-api/internal/platform/mongodb"
)

// GetTestMongoURL returns the MongoDB URL for integration tests.
func GetTestMongoURL() string {
	return ciutil.TestMongoURL(nil)
}

// GetTestMongoDatabase connects to MongoDB and returns a uniquely named
// database with indexes in place. The database is dropped on cleanup.
func GetTestMongoDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	url := GetTestMongoURL()
	if url == "" {
		skipOrFail(t, ciutil.EnvTestMongoURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, url, logger.Discard())
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}

	name := "taskly_test_" + strings.ReplaceAll(uuid.NewString()[:8], "-", "")
	db := client.Database(name)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("failed to drop test database %s: %v", name, err)
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("failed to disconnect from mongo: %v", err)
		}
	})

	return db
}
