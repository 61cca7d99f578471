package store

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// Fields is the JSON object body of a document.
type Fields map[string]any

// Document is a keyed JSON object inside a named collection.
type Document struct {
	Collection string
	Key        string
	Fields     Fields
	// CreatedAt is assigned by the store at write time.
	CreatedAt time.Time
}

// String returns the named field when it holds a string, or "".
func (d *Document) String(field string) string {
	if d == nil || d.Fields == nil {
		return ""
	}
	s, _ := d.Fields[field].(string)
	return s
}

// Decode unmarshals the document fields into v via their JSON form.
func (d *Document) Decode(v any) error {
	data, err := json.Marshal(d.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode document fields: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode document fields: %w", err)
	}
	return nil
}

// DocumentStore is the persistence gateway: a document database with
// key lookups, writes and equality queries over top-level fields.
type DocumentStore interface {
	// Get returns the document stored at key.
	// Returns ErrDocumentNotFound if there is none.
	Get(ctx context.Context, collection, key string) (*Document, error)

	// Set writes fields at key, fully overwriting any existing document.
	Set(ctx context.Context, collection, key string, fields Fields) error

	// Create writes fields at key only if no document exists there.
	// Returns ErrKeyExists otherwise.
	Create(ctx context.Context, collection, key string, fields Fields) error

	// Add stores fields under a newly generated key and returns the key.
	Add(ctx context.Context, collection string, fields Fields) (string, error)

	// AddUnique behaves like Add unless another document in the collection
	// has the same value for uniqueField, in which case it returns
	// ErrUniqueValueExists and writes nothing. The check and the insert are
	// atomic.
	AddUnique(ctx context.Context, collection, uniqueField string, fields Fields) (string, error)

	// QueryEquals returns the documents whose top-level field equals value,
	// in insertion order. Returns an empty slice if nothing matches.
	QueryEquals(ctx context.Context, collection, field string, value any) ([]*Document, error)
}

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ValidateName checks that a collection or field name is a plain identifier.
// Names are interpolated into JSON paths by some backends.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: invalid name %q", ErrInvalidEntity, name)
	}
	return nil
}

// UniqueValue returns the string form used to index fields[field] for
// AddUnique. Missing or null values cannot be indexed.
func UniqueValue(fields Fields, field string) (string, error) {
	v, ok := fields[field]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: unique field %q is missing", ErrInvalidEntity, field)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: unique field %q: %v", ErrInvalidEntity, field, err)
	}
	return string(data), nil
}
