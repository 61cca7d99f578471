// Package sqlite provides a single-file store.DocumentStore on SQLite
// (mattn/go-sqlite3) for local runs without a PostgreSQL server. Field
// equality queries use SQLite's JSON1 functions.
package sqlite
