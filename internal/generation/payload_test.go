package generation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

const cleanPayload = `{"title": "X", "content": "Body with } brace", "tags": ["a", "b"]}`

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "clean input is unchanged", input: cleanPayload, expected: cleanPayload},
		{name: "surrounding whitespace", input: "\n  " + cleanPayload + "\n", expected: cleanPayload},
		{name: "json fence", input: "```json\n" + cleanPayload + "\n```", expected: cleanPayload},
		{name: "bare fence", input: "```\n" + cleanPayload + "\n```", expected: cleanPayload},
		{name: "uppercase tag", input: "```JSON\n" + cleanPayload + "\n```\n", expected: cleanPayload},
		{name: "single line fence", input: "```json" + cleanPayload + "```", expected: cleanPayload},
		{name: "object on opening line", input: "```" + cleanPayload + "\n```", expected: cleanPayload},
		{name: "missing closing fence", input: "```json\n" + cleanPayload, expected: cleanPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}

func TestStripCodeFenceIsIdempotent(t *testing.T) {
	once := StripCodeFence("```json\n" + cleanPayload + "\n```")
	assert.Equal(t, once, StripCodeFence(once))
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{name: "plain object", input: `{"a":1}`, expected: `{"a":1}`, ok: true},
		{name: "leading chatter", input: `Sure! {"a":{"b":2}} Enjoy.`, expected: `{"a":{"b":2}}`, ok: true},
		{name: "braces in strings", input: `x {"a":"}{","b":"\"}"} y`, expected: `{"a":"}{","b":"\"}"}`, ok: true},
		{name: "first of two objects", input: `{"a":1}{"b":2}`, expected: `{"a":1}`, ok: true},
		{name: "no object", input: `just text`, ok: false},
		{name: "truncated", input: `{"a": {"b": 1}`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractObject(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeObject(t *testing.T) {
	want := testPayload{Title: "X", Content: "Body with } brace", Tags: []string{"a", "b"}}

	inputs := map[string]string{
		"clean":          cleanPayload,
		"fenced":         "```json\n" + cleanPayload + "\n```",
		"chatter around": "Here is your article:\n" + cleanPayload + "\nLet me know!",
		"fenced chatter": "Here you go\n```json\n" + cleanPayload + "\n```",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var got testPayload
			require.NoError(t, DecodeObject(input, &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestDecodeObjectFailures(t *testing.T) {
	inputs := map[string]string{
		"empty":          "",
		"fence only":     "```json\n```",
		"prose":          "I cannot write that article.",
		"truncated":      `{"title": "X", "content": "cut off`,
		"invalid inside": `text {"title": X} text`,
		"wrong shape":    `{"title": ["not", "a", "string"]}`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var got testPayload
			err := DecodeObject(input, &got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidResponse), "got %v", err)
		})
	}
}
