package events

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// ConsoleHandler writes one human-readable line per event, e.g.
// "Saved: <title>" or "Duplicate found: <title>, retrying...".
type ConsoleHandler struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleHandler creates a ConsoleHandler writing to out.
func NewConsoleHandler(out io.Writer) *ConsoleHandler {
	return &ConsoleHandler{out: out}
}

// HandleEvent implements the EventHandler interface.
func (h *ConsoleHandler) HandleEvent(_ context.Context, event *ProgressEvent) error {
	line, err := consoleLine(event)
	if err != nil || line == "" {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = fmt.Fprintln(h.out, line)
	return err
}

func consoleLine(event *ProgressEvent) (string, error) {
	switch event.Type {
	case TypeThemeResolved:
		var p ThemeResolved
		if err := event.UnmarshalPayload(&p); err != nil {
			return "", err
		}
		return "Today's Theme: " + p.Theme, nil
	case TypeArticleSaved:
		var p ArticleSaved
		if err := event.UnmarshalPayload(&p); err != nil {
			return "", err
		}
		return "Saved: " + p.Title, nil
	case TypeDuplicateFound:
		var p DuplicateFound
		if err := event.UnmarshalPayload(&p); err != nil {
			return "", err
		}
		return fmt.Sprintf("Duplicate found: %s, retrying...", p.Title), nil
	case TypeAttemptFailed:
		var p AttemptFailed
		if err := event.UnmarshalPayload(&p); err != nil {
			return "", err
		}
		return "Error: " + p.Error, nil
	default:
		return "", nil
	}
}
