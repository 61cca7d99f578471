package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/dailynote/internal/domain"
	"github.com/phrazzld/dailynote/internal/events"
	"github.com/phrazzld/dailynote/internal/generation"
	"github.com/phrazzld/dailynote/internal/platform/logger"
	"github.com/phrazzld/dailynote/internal/prompt"
	"github.com/phrazzld/dailynote/internal/store"
)

// Collection holds one theme document per calendar date.
const Collection = "daily_themes"

// fieldTheme is the document field carrying the theme text.
const fieldTheme = "theme"

// Resolver finds or creates the theme for a date.
type Resolver struct {
	docs      store.DocumentStore
	completer generation.Completer
	prompts   *prompt.Templates
	emitter   events.EventEmitter
	logger    *slog.Logger
	now       func() time.Time
	location  *time.Location
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock sets the time source used by Resolve.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithLocation sets the time zone in which "today" is computed.
func WithLocation(loc *time.Location) Option {
	return func(r *Resolver) { r.location = loc }
}

// WithEmitter publishes a ThemeResolved event after each resolution.
func WithEmitter(emitter events.EventEmitter) Option {
	return func(r *Resolver) { r.emitter = emitter }
}

// NewResolver creates a Resolver. docs, completer and prompts are required.
func NewResolver(
	docs store.DocumentStore,
	completer generation.Completer,
	prompts *prompt.Templates,
	logger *slog.Logger,
	opts ...Option,
) (*Resolver, error) {
	if docs == nil {
		return nil, errors.New("document store cannot be nil")
	}
	if completer == nil {
		return nil, errors.New("completer cannot be nil")
	}
	if prompts == nil {
		return nil, errors.New("prompt templates cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Resolver{
		docs:      docs,
		completer: completer,
		prompts:   prompts,
		logger:    logger.With(slog.String("component", "theme_resolver")),
		now:       time.Now,
		location:  time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve returns the theme for today in the configured location.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	return r.ResolveFor(ctx, r.now().In(r.location))
}

// ResolveFor returns the theme stored for date's calendar day, creating it
// through the language model when none exists. If a concurrent run stores a
// theme first, that theme is returned instead.
func (r *Resolver) ResolveFor(ctx context.Context, date time.Time) (string, error) {
	key := domain.DateKey(date)
	log := logger.FromContextOrDefault(ctx, r.logger).With(slog.String("date", key))

	text, err := r.lookup(ctx, key)
	if err == nil {
		log.InfoContext(ctx, "using stored theme", slog.String("theme", text))
		r.emit(ctx, log, key, text, false)
		return text, nil
	}
	if !store.IsNotFoundError(err) {
		return "", err
	}

	log.InfoContext(ctx, "no theme stored for date, generating one")
	created, err := r.generate(ctx, date)
	if err != nil {
		return "", err
	}

	err = r.docs.Create(ctx, Collection, created.Date, store.Fields{fieldTheme: created.Theme})
	switch {
	case err == nil:
		log.InfoContext(ctx, "stored new theme", slog.String("theme", created.Theme))
		r.emit(ctx, log, key, created.Theme, true)
		return created.Theme, nil
	case errors.Is(err, store.ErrKeyExists):
		log.InfoContext(ctx, "theme was created concurrently, using stored value")
		stored, err := r.lookup(ctx, key)
		if err != nil {
			return "", err
		}
		r.emit(ctx, log, key, stored, false)
		return stored, nil
	default:
		return "", fmt.Errorf("failed to store theme for %s: %w", key, err)
	}
}

func (r *Resolver) lookup(ctx context.Context, key string) (string, error) {
	doc, err := r.docs.Get(ctx, Collection, key)
	if err != nil {
		if store.IsNotFoundError(err) {
			return "", err
		}
		return "", fmt.Errorf("failed to read theme for %s: %w", key, err)
	}
	return doc.String(fieldTheme), nil
}

func (r *Resolver) generate(ctx context.Context, date time.Time) (*domain.Theme, error) {
	p, err := r.prompts.Theme()
	if err != nil {
		return nil, fmt.Errorf("failed to render theme prompt: %w", err)
	}

	text, err := r.completer.Complete(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate theme: %w", err)
	}

	created, err := domain.NewTheme(date, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrInvalidResponse, err)
	}
	return created, nil
}

func (r *Resolver) emit(ctx context.Context, log *slog.Logger, date, text string, created bool) {
	payload := events.ThemeResolved{Date: date, Theme: text, Created: created}
	if err := events.Emit(ctx, r.emitter, events.TypeThemeResolved, payload); err != nil {
		log.WarnContext(ctx, "failed to publish theme event", slog.String("error", err.Error()))
	}
}
