package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/dailynote/internal/article"
	"github.com/phrazzld/dailynote/internal/config"
	"github.com/phrazzld/dailynote/internal/events"
	"github.com/phrazzld/dailynote/internal/generation"
	"github.com/phrazzld/dailynote/internal/prompt"
	"github.com/phrazzld/dailynote/internal/store"
	"github.com/phrazzld/dailynote/internal/theme"
)

// application holds the wired components of one run.
type application struct {
	logger    *slog.Logger
	docs      store.DocumentStore
	closeDocs func() error
	resolver  *theme.Resolver
	generator *article.Generator
	count     int
}

// newApplication opens the document store, builds the completion gateway and
// wires the theme resolver and article generator. Progress lines go to out.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, out io.Writer) (*application, error) {
	docs, closeDocs, err := openDocumentStore(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	completer, err := newCompleter(ctx, cfg.LLM, log)
	if err != nil {
		return nil, errors.Join(err, closeDocs())
	}

	app, err := assemble(cfg.Generation, log, docs, completer, out)
	if err != nil {
		return nil, errors.Join(err, closeDocs())
	}
	app.closeDocs = closeDocs
	return app, nil
}

// assemble builds the application around already-constructed gateways.
func assemble(
	cfg config.GenerationConfig,
	log *slog.Logger,
	docs store.DocumentStore,
	completer generation.Completer,
	out io.Writer,
) (*application, error) {
	prompts, err := prompt.Load(cfg.PromptsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	emitter := events.NewBroadcaster(log)
	emitter.Subscribe(events.NewConsoleHandler(out))

	resolver, err := theme.NewResolver(docs, completer, prompts, log,
		theme.WithLocation(location),
		theme.WithEmitter(emitter),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create theme resolver: %w", err)
	}

	generator, err := article.NewGenerator(docs, completer, prompts, log,
		article.WithEmitter(emitter),
		article.WithRetryPolicy(article.RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			BackoffBase: cfg.BackoffBase,
			BackoffMax:  cfg.BackoffMax,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create article generator: %w", err)
	}

	return &application{
		logger:    log,
		docs:      docs,
		closeDocs: func() error { return nil },
		resolver:  resolver,
		generator: generator,
		count:     cfg.ArticleCount,
	}, nil
}

// Run resolves today's theme and generates the configured number of articles.
func (a *application) Run(ctx context.Context) error {
	todaysTheme, err := a.resolver.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve theme: %w", err)
	}

	result, err := a.generator.Generate(ctx, todaysTheme, a.count)
	if err != nil {
		return fmt.Errorf("failed to generate articles (%d saved): %w", len(result.Articles), err)
	}

	a.logger.InfoContext(ctx, "daily run complete",
		slog.String("theme", todaysTheme),
		slog.Int("saved", len(result.Articles)),
		slog.Int("attempts", result.Attempts),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("failures", result.Failures))
	return nil
}

// Close releases the document store.
func (a *application) Close() error {
	return a.closeDocs()
}
