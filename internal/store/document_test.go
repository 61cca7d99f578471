package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentString(t *testing.T) {
	doc := &Document{Fields: Fields{"theme": "Frugal Living", "count": 3}}

	assert.Equal(t, "Frugal Living", doc.String("theme"))
	assert.Equal(t, "", doc.String("count"), "non-string fields read as empty")
	assert.Equal(t, "", doc.String("missing"))

	var nilDoc *Document
	assert.Equal(t, "", nilDoc.String("theme"))
}

func TestDocumentDecode(t *testing.T) {
	doc := &Document{Fields: Fields{
		"title": "X",
		"tags":  []any{"a", "b"},
	}}

	var out struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}
	require.NoError(t, doc.Decode(&out))
	assert.Equal(t, "X", out.Title)
	assert.Equal(t, []string{"a", "b"}, out.Tags)
}

func TestValidateName(t *testing.T) {
	valid := []string{"articles", "daily_themes", "title", "_x1"}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), name)
	}

	invalid := []string{"", "1abc", "title'); drop", "a.b", "with space"}
	for _, name := range invalid {
		err := ValidateName(name)
		assert.ErrorIs(t, err, ErrInvalidEntity, name)
	}
}

func TestUniqueValue(t *testing.T) {
	v, err := UniqueValue(Fields{"title": "X"}, "title")
	require.NoError(t, err)
	assert.Equal(t, "X", v)

	v, err = UniqueValue(Fields{"n": 42}, "n")
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	_, err = UniqueValue(Fields{}, "title")
	assert.ErrorIs(t, err, ErrInvalidEntity)

	_, err = UniqueValue(Fields{"title": nil}, "title")
	assert.ErrorIs(t, err, ErrInvalidEntity)
}
