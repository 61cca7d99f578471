package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted during a run.
const (
	TypeThemeResolved  = "theme_resolved"
	TypeArticleSaved   = "article_saved"
	TypeDuplicateFound = "duplicate_found"
	TypeAttemptFailed  = "attempt_failed"
)

// ProgressEvent is one observable step of a generation run.
type ProgressEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// ThemeResolved is the payload of TypeThemeResolved.
type ThemeResolved struct {
	Date    string `json:"date"`
	Theme   string `json:"theme"`
	Created bool   `json:"created"`
}

// ArticleSaved is the payload of TypeArticleSaved.
type ArticleSaved struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	// Saved is the running count of articles stored in this run.
	Saved int `json:"saved"`
}

// DuplicateFound is the payload of TypeDuplicateFound.
type DuplicateFound struct {
	Title string `json:"title"`
}

// AttemptFailed is the payload of TypeAttemptFailed. Error is already redacted.
type AttemptFailed struct {
	Attempt int    `json:"attempt"`
	Error   string `json:"error"`
	Fatal   bool   `json:"fatal"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *ProgressEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewProgressEvent creates a new ProgressEvent with the specified type and payload.
func NewProgressEvent(eventType string, payload interface{}) (*ProgressEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &ProgressEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *ProgressEvent) error
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *ProgressEvent) error
}

// Emit builds an event and publishes it on emitter. A nil emitter is a no-op.
func Emit(ctx context.Context, emitter EventEmitter, eventType string, payload interface{}) error {
	if emitter == nil {
		return nil
	}
	event, err := NewProgressEvent(eventType, payload)
	if err != nil {
		return err
	}
	return emitter.EmitEvent(ctx, event)
}
