package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrDocumentNotFound", err: ErrDocumentNotFound, expected: true},
		{
			name:     "wrapped ErrDocumentNotFound",
			err:      fmt.Errorf("failed to load theme: %w", ErrDocumentNotFound),
			expected: true,
		},
		{name: "duplicate is not not-found", err: ErrKeyExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: true},
		{name: "ErrKeyExists", err: ErrKeyExists, expected: true},
		{name: "ErrUniqueValueExists", err: ErrUniqueValueExists, expected: true},
		{
			name:     "StoreError wrapping ErrUniqueValueExists",
			err:      NewStoreError("articles", "add", "title taken", ErrUniqueValueExists),
			expected: true,
		},
		{name: "not found is not duplicate", err: ErrDocumentNotFound, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		inner := errors.New("connection reset")
		err := NewStoreError("articles", "query", "failed to query by title", inner)

		assert.Equal(t, "query operation on articles failed: failed to query by title: connection reset", err.Error())
		assert.ErrorIs(t, err, inner)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("daily_themes", "get", "bad key", nil)

		assert.Equal(t, "get operation on daily_themes failed: bad key", err.Error())
		assert.Nil(t, err.Unwrap())
	})
}
