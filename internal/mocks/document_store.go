package mocks

import (
	"context"

	"github.com/phrazzld/dailynote/internal/store"
)

// MockDocumentStore wraps a real store.DocumentStore and lets a test
// override individual operations. Operations without an override are
// delegated to Inner.
type MockDocumentStore struct {
	Inner store.DocumentStore

	GetFn         func(ctx context.Context, collection, key string) (*store.Document, error)
	SetFn         func(ctx context.Context, collection, key string, fields store.Fields) error
	CreateFn      func(ctx context.Context, collection, key string, fields store.Fields) error
	AddFn         func(ctx context.Context, collection string, fields store.Fields) (string, error)
	AddUniqueFn   func(ctx context.Context, collection, uniqueField string, fields store.Fields) (string, error)
	QueryEqualsFn func(ctx context.Context, collection, field string, value any) ([]*store.Document, error)
}

var _ store.DocumentStore = (*MockDocumentStore)(nil)

// Get implements store.DocumentStore.
func (m *MockDocumentStore) Get(ctx context.Context, collection, key string) (*store.Document, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, collection, key)
	}
	return m.Inner.Get(ctx, collection, key)
}

// Set implements store.DocumentStore.
func (m *MockDocumentStore) Set(ctx context.Context, collection, key string, fields store.Fields) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, collection, key, fields)
	}
	return m.Inner.Set(ctx, collection, key, fields)
}

// Create implements store.DocumentStore.
func (m *MockDocumentStore) Create(ctx context.Context, collection, key string, fields store.Fields) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, collection, key, fields)
	}
	return m.Inner.Create(ctx, collection, key, fields)
}

// Add implements store.DocumentStore.
func (m *MockDocumentStore) Add(ctx context.Context, collection string, fields store.Fields) (string, error) {
	if m.AddFn != nil {
		return m.AddFn(ctx, collection, fields)
	}
	return m.Inner.Add(ctx, collection, fields)
}

// AddUnique implements store.DocumentStore.
func (m *MockDocumentStore) AddUnique(
	ctx context.Context,
	collection, uniqueField string,
	fields store.Fields,
) (string, error) {
	if m.AddUniqueFn != nil {
		return m.AddUniqueFn(ctx, collection, uniqueField, fields)
	}
	return m.Inner.AddUnique(ctx, collection, uniqueField, fields)
}

// QueryEquals implements store.DocumentStore.
func (m *MockDocumentStore) QueryEquals(
	ctx context.Context,
	collection, field string,
	value any,
) ([]*store.Document, error) {
	if m.QueryEqualsFn != nil {
		return m.QueryEqualsFn(ctx, collection, field, value)
	}
	return m.Inner.QueryEquals(ctx, collection, field, value)
}
