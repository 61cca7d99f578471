package events

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *ProgressEvent
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *ProgressEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestNewProgressEvent(t *testing.T) {
	event, err := NewProgressEvent(TypeArticleSaved, ArticleSaved{Key: "k1", Title: "X", Saved: 1})
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, TypeArticleSaved, event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	var payload ArticleSaved
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, ArticleSaved{Key: "k1", Title: "X", Saved: 1}, payload)
}

func TestNewProgressEventUnencodablePayload(t *testing.T) {
	_, err := NewProgressEvent(TypeArticleSaved, make(chan int))
	assert.Error(t, err)
}

func TestEmitNilEmitter(t *testing.T) {
	assert.NoError(t, Emit(context.Background(), nil, TypeDuplicateFound, DuplicateFound{Title: "X"}))
}

func TestBroadcaster(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewBroadcaster(logger)
		err := Emit(context.Background(), emitter, TypeDuplicateFound, DuplicateFound{Title: "X"})
		assert.NoError(t, err)
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewBroadcaster(logger)
		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.Subscribe(handler1)
		emitter.Subscribe(handler2)

		event, err := NewProgressEvent(TypeDuplicateFound, DuplicateFound{Title: "X"})
		require.NoError(t, err)

		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewBroadcaster(logger)
		successHandler := &MockEventHandler{}
		failingHandler := &MockEventHandler{HandlerError: errors.New("handler error")}
		emitter.Subscribe(failingHandler)
		emitter.Subscribe(successHandler)

		err := Emit(context.Background(), emitter, TypeDuplicateFound, DuplicateFound{Title: "X"})

		assert.EqualError(t, err, "handler error")
		assert.Equal(t, 1, successHandler.HandledCount, "later handlers still run")
		assert.Equal(t, 1, failingHandler.HandledCount)
	})
}

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := NewConsoleHandler(&buf)
	ctx := context.Background()

	emit := func(eventType string, payload interface{}) {
		event, err := NewProgressEvent(eventType, payload)
		require.NoError(t, err)
		require.NoError(t, handler.HandleEvent(ctx, event))
	}

	emit(TypeThemeResolved, ThemeResolved{Date: "2024-01-01", Theme: "Frugal Living"})
	emit(TypeArticleSaved, ArticleSaved{Title: "X"})
	emit(TypeDuplicateFound, DuplicateFound{Title: "X"})
	emit(TypeAttemptFailed, AttemptFailed{Attempt: 3, Error: "invalid response from language model"})
	emit("unknown", map[string]string{})

	expected := "Today's Theme: Frugal Living\n" +
		"Saved: X\n" +
		"Duplicate found: X, retrying...\n" +
		"Error: invalid response from language model\n"
	assert.Equal(t, expected, buf.String())
}

func TestBroadcasterJoinsHandlerErrors(t *testing.T) {
	b := NewBroadcaster(slog.New(slog.NewTextHandler(io.Discard, nil)))
	var seen []string
	b.Subscribe(HandlerFunc(func(_ context.Context, e *ProgressEvent) error {
		seen = append(seen, "first")
		return errors.New("first failed")
	}))
	b.Subscribe(HandlerFunc(func(_ context.Context, e *ProgressEvent) error {
		seen = append(seen, "second")
		return errors.New("second failed")
	}))

	err := Emit(context.Background(), b, TypeArticleSaved, ArticleSaved{Title: "X"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "first failed")
	assert.Contains(t, err.Error(), "second failed")
	assert.Equal(t, []string{"first", "second"}, seen)
}
