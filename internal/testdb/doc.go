//go:build integration

// Package testdb provides helpers for integration tests that need a real
// database.
//
// PostgreSQL tests run each case inside a transaction that is rolled back
// when the case finishes, so they can run in parallel against one schema:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    tasks := postgres.NewPostgresTaskStore(tx, nil)
//	    ...
//	})
//
// MongoDB tests get a freshly named database that is dropped on cleanup.
//
// Tests are skipped when TASKLY_TEST_DATABASE_URL (PostgreSQL, falling back to
// DATABASE_URL) or TASKLY_TEST_MONGO_URL (MongoDB) is unset, and fail instead
// when running under CI.
package testdb
