//go:build integration

// Package testdb provides utilities for PostgreSQL integration tests.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests can share one database without interfering with each
// other.
//
// # Basic Usage
//
//	func TestMyFeature(t *testing.T) {
//	    if testdb.ShouldSkipDatabaseTest() {
//	        t.Skip("DATABASE_URL not set - skipping integration test")
//	    }
//
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        docs := postgres.NewDocumentStore(tx, nil)
//	        // ...
//	    })
//	}
//
// # Environment Variables
//
// - DATABASE_URL: Primary connection string
// - DAILYNOTE_TEST_DB_URL: Alternative connection string
package testdb
