// Package main implements the dailynote command, which resolves the theme of
// the day and generates a batch of unique articles for it.
//
// The command takes no flags. Configuration comes from DAILYNOTE_* environment
// variables and an optional dailynote.yaml file (see internal/config).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/phrazzld/dailynote/internal/config"
	"github.com/phrazzld/dailynote/internal/platform/logger"
	"github.com/phrazzld/dailynote/internal/redact"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", redact.Error(err))
		os.Exit(1)
	}
}

// run loads configuration, builds the application and executes one daily run.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	registerSecrets(cfg)

	log, err := logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log = log.With(slog.String("run_id", uuid.NewString()))
	ctx = logger.WithLogger(ctx, log)

	log.Info("configuration loaded",
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("model", cfg.LLM.ModelName),
		slog.Int("article_count", cfg.Generation.ArticleCount),
		slog.Int("max_attempts", cfg.Generation.MaxAttempts))

	app, err := newApplication(ctx, cfg, log, os.Stdout)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", redact.Error(err)))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("failed to close application", slog.String("error", redact.Error(err)))
		}
	}()

	if err := app.Run(ctx); err != nil {
		log.Error("daily run failed", slog.String("error", redact.Error(err)))
		return err
	}
	return nil
}

// registerSecrets makes sure configured credentials never reach the console
// or the logs, even when an SDK echoes them in an error.
func registerSecrets(cfg *config.Config) {
	redact.RegisterSecret(cfg.LLM.GeminiAPIKey, cfg.LLM.OpenAIAPIKey)
	if cfg.Database.Driver == "postgres" {
		redact.RegisterSecret(cfg.Database.URL)
	}
}
