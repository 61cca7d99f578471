package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *ProgressEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *ProgressEvent) error {
	return f(ctx, event)
}

// Broadcaster delivers every event to each subscribed handler, in
// subscription order, on the caller's goroutine.
type Broadcaster struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

// NewBroadcaster returns a Broadcaster with no subscribers.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{logger: logger.With(slog.String("component", "event_broadcaster"))}
}

// Subscribe adds handler to the delivery list.
func (b *Broadcaster) Subscribe(handler EventHandler) {
	b.mu.Lock()
	b.handlers = append(b.handlers, handler)
	n := len(b.handlers)
	b.mu.Unlock()
	b.logger.Debug("handler subscribed", slog.Int("handlers", n))
}

// EmitEvent implements EventEmitter. A failing handler does not stop delivery
// to the rest; all handler errors are joined into the result.
func (b *Broadcaster) EmitEvent(ctx context.Context, event *ProgressEvent) error {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.handlers...)
	b.mu.RUnlock()

	var errs []error
	for i, h := range handlers {
		if err := h.HandleEvent(ctx, event); err != nil {
			b.logger.ErrorContext(ctx, "event handler failed",
				slog.Int("handler", i),
				slog.String("event_type", event.Type),
				slog.String("event_id", event.ID.String()),
				slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
