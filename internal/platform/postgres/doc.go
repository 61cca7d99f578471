// Package postgres provides the PostgreSQL implementation of store.DocumentStore.
// Documents live in a single JSONB-backed table created by the embedded goose
// migrations. It handles query execution, error mapping and the conversion
// between rows and store.Document values.
package postgres
