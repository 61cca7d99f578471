package article

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
	"github.com/phrazzld/dailynote/internal/redact"
	"github.com/phrazzld/dailynote/internal/store"
	"github.com/sethvargo/go-retry"
)

// Collection holds the generated articles.
const Collection = "articles"

// DefaultCount is the number of articles generated when none is requested.
const DefaultCount = 5

// uniqueField is the article field that must not repeat across the collection.
const uniqueField = "title"

// ErrAttemptsExhausted is returned when the retry policy's attempt budget is
// spent before enough articles were saved. It wraps the last failure.
var ErrAttemptsExhausted = errors.New("article generation attempts exhausted")

// RetryPolicy bounds the generation loop.
type RetryPolicy struct {
	// MaxAttempts caps completion requests per run, duplicates included.
	// Zero or less removes the cap; only cancellation then ends a failing run.
	MaxAttempts int
	// BackoffBase is the first delay after a failure.
	BackoffBase time.Duration
	// BackoffMax caps the delay between consecutive failures.
	BackoffMax time.Duration
}

// DefaultRetryPolicy returns the policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 50,
		BackoffBase: time.Second,
		BackoffMax:  30 * time.Second,
	}
}

// backoff builds a fresh jittered exponential schedule.
func (p RetryPolicy) backoff() retry.Backoff {
	base := p.BackoffBase
	if base <= 0 {
		base = time.Second
	}
	ceiling := p.BackoffMax
	if ceiling < base {
		ceiling = base
	}
	b := retry.NewExponential(base)
	b = retry.WithJitterPercent(20, b)
	return retry.WithCappedDuration(ceiling, b)
}

// Result summarizes a generation run.
type Result struct {
	// Articles are the saved articles in the order they were stored.
	Articles []*domain.Article
	// Attempts counts completion requests.
	Attempts int
	// Duplicates counts payloads discarded because the title already existed.
	Duplicates int
	// Failures counts attempts that ended in an error.
	Failures int
}

// Generator produces unique articles for a theme.
type Generator struct {
	docs      store.DocumentStore
	completer generation.Completer
	prompts   *prompt.Templates
	policy    RetryPolicy
	emitter   events.EventEmitter
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithRetryPolicy replaces DefaultRetryPolicy.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(g *Generator) { g.policy = policy }
}

// WithEmitter publishes progress events during Generate.
func WithEmitter(emitter events.EventEmitter) Option {
	return func(g *Generator) { g.emitter = emitter }
}

// WithClock sets the time source for Article.CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a Generator. docs, completer and prompts are required.
func NewGenerator(
	docs store.DocumentStore,
	completer generation.Completer,
	prompts *prompt.Templates,
	logger *slog.Logger,
	opts ...Option,
) (*Generator, error) {
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

	g := &Generator{
		docs:      docs,
		completer: completer,
		prompts:   prompts,
		policy:    DefaultRetryPolicy(),
		logger:    logger.With(slog.String("component", "article_generator")),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate stores count articles with distinct titles for theme. count <= 0
// means DefaultCount. The returned Result is never nil and describes the
// progress made even when an error is returned.
func (g *Generator) Generate(ctx context.Context, theme string, count int) (*Result, error) {
	if count <= 0 {
		count = DefaultCount
	}
	log := logger.FromContextOrDefault(ctx, g.logger).With(
		slog.String("theme", theme),
		slog.Int("count", count),
		slog.Int("max_attempts", g.policy.MaxAttempts))

	result := &Result{Articles: make([]*domain.Article, 0, count)}
	backoff := g.policy.backoff()
	var lastErr error

	log.InfoContext(ctx, "starting article generation")

	for len(result.Articles) < count {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if g.policy.MaxAttempts > 0 && result.Attempts >= g.policy.MaxAttempts {
			log.WarnContext(ctx, "attempt budget spent",
				slog.Int("saved", len(result.Articles)),
				slog.Int("attempts", result.Attempts))
			if lastErr == nil {
				return result, fmt.Errorf("%w after %d attempts", ErrAttemptsExhausted, result.Attempts)
			}
			return result, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, result.Attempts, lastErr)
		}

		result.Attempts++
		attempt := result.Attempts
		article, duplicate, err := g.attempt(ctx, theme)

		switch {
		case err != nil:
			result.Failures++
			lastErr = err
			fatal := generation.IsFatal(err) || ctx.Err() != nil
			log.WarnContext(ctx, "article attempt failed",
				slog.Int("attempt", attempt),
				slog.Bool("fatal", fatal),
				slog.String("error", redact.Error(err)))
			g.emit(ctx, log, events.TypeAttemptFailed, events.AttemptFailed{
				Attempt: attempt,
				Error:   redact.Error(err),
				Fatal:   fatal,
			})
			if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
				return result, fmt.Errorf("generation stopped: %w (last failure: %v)", ctxErr, err)
			}
			if fatal {
				return result, err
			}

			delay, _ := backoff.Next()
			if err := sleep(ctx, delay); err != nil {
				return result, err
			}

		case duplicate:
			result.Duplicates++
			log.InfoContext(ctx, "duplicate title, retrying",
				slog.Int("attempt", attempt),
				slog.String("title", article.Title))
			g.emit(ctx, log, events.TypeDuplicateFound, events.DuplicateFound{Title: article.Title})

		default:
			result.Articles = append(result.Articles, article)
			backoff = g.policy.backoff()
			log.InfoContext(ctx, "article saved",
				slog.Int("attempt", attempt),
				slog.String("key", article.ID),
				slog.String("title", article.Title),
				slog.Int("saved", len(result.Articles)))
			g.emit(ctx, log, events.TypeArticleSaved, events.ArticleSaved{
				Key:   article.ID,
				Title: article.Title,
				Saved: len(result.Articles),
			})
		}
	}

	log.InfoContext(ctx, "article generation complete",
		slog.Int("attempts", result.Attempts),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("failures", result.Failures))
	return result, nil
}

// attempt performs one request-parse-check-store cycle. duplicate is true
// when the parsed title already exists; the returned article then carries
// only what was parsed.
func (g *Generator) attempt(ctx context.Context, theme string) (*domain.Article, bool, error) {
	p, err := g.prompts.Article(theme)
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to render article prompt: %v", generation.ErrInvalidConfig, err)
	}

	text, err := g.completer.Complete(ctx, p)
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate article: %w", err)
	}

	var parsed payload
	if err := generation.DecodeObject(text, &parsed); err != nil {
		return nil, false, err
	}

	article, err := domain.NewArticle(parsed.Title, parsed.Content, parsed.Tags, theme)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", generation.ErrInvalidResponse, err)
	}

	existing, err := g.docs.QueryEquals(ctx, Collection, uniqueField, article.Title)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check for duplicate title: %w", err)
	}
	if len(existing) > 0 {
		return article, true, nil
	}

	article.ContentHTML, err = RenderHTML(article.Content)
	if err != nil {
		return nil, false, err
	}
	article.CreatedAt = g.now()

	key, err := g.docs.AddUnique(ctx, Collection, uniqueField, fields(article))
	if errors.Is(err, store.ErrUniqueValueExists) {
		return article, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to store article: %w", err)
	}
	article.ID = key
	return article, false, nil
}

func fields(a *domain.Article) store.Fields {
	return store.Fields{
		"title":        a.Title,
		"content":      a.Content,
		"content_html": a.ContentHTML,
		"tags":         a.Tags,
		"theme":        a.Theme,
	}
}

func (g *Generator) emit(ctx context.Context, log *slog.Logger, eventType string, payload interface{}) {
	if err := events.Emit(ctx, g.emitter, eventType, payload); err != nil {
		log.WarnContext(ctx, "failed to publish progress event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
