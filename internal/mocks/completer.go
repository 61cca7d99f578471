package mocks

import (
	"context"
	"sync"
)

// Reply is one scripted result of MockCompleter.Complete.
type Reply struct {
	Text string
	Err  error
}

// MockCompleter implements generation.Completer for testing.
//
// Replies are served in order. When the script runs out, the last reply is
// repeated; with an empty script Text and Err are returned.
type MockCompleter struct {
	// CompleteFn allows test cases to take over the Complete behavior entirely
	CompleteFn func(ctx context.Context, prompt string) (string, error)

	// Replies is the scripted sequence of results
	Replies []Reply

	// Default response values
	Text string
	Err  error

	// CancelAfter invokes Cancel once Complete has been called this many times.
	// Zero disables it.
	CancelAfter int
	Cancel      context.CancelFunc

	// Call tracking for verification
	CompleteCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Complete was called
		Count int

		// Prompts contains all prompts passed to Complete calls
		Prompts []string
	}
}

// NewMockCompleter creates a MockCompleter that answers with texts in order.
func NewMockCompleter(texts ...string) *MockCompleter {
	m := &MockCompleter{}
	for _, text := range texts {
		m.Replies = append(m.Replies, Reply{Text: text})
	}
	return m
}

// NewMockCompleterWithError creates a MockCompleter that always fails with err.
func NewMockCompleterWithError(err error) *MockCompleter {
	return &MockCompleter{Err: err}
}

// Complete implements the generation.Completer interface
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.CompleteCalls.mu.Lock()
	m.CompleteCalls.Count++
	call := m.CompleteCalls.Count
	m.CompleteCalls.Prompts = append(m.CompleteCalls.Prompts, prompt)
	m.CompleteCalls.mu.Unlock()

	if m.CancelAfter > 0 && call >= m.CancelAfter && m.Cancel != nil {
		m.Cancel()
	}

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, prompt)
	}

	if len(m.Replies) > 0 {
		idx := call - 1
		if idx >= len(m.Replies) {
			idx = len(m.Replies) - 1
		}
		return m.Replies[idx].Text, m.Replies[idx].Err
	}

	return m.Text, m.Err
}

// Calls returns how many times Complete has been called.
func (m *MockCompleter) Calls() int {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	return m.CompleteCalls.Count
}

// Prompts returns a copy of every prompt received so far.
func (m *MockCompleter) Prompts() []string {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	out := make([]string, len(m.CompleteCalls.Prompts))
	copy(out, m.CompleteCalls.Prompts)
	return out
}
