package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/dailynote/internal/config"
	"github.com/phrazzld/dailynote/internal/generation"
	"github.com/phrazzld/dailynote/internal/platform/gemini"
	"github.com/phrazzld/dailynote/internal/platform/openai"
)

// newCompleter builds the completion gateway selected by llm.provider.
func newCompleter(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (generation.Completer, error) {
	switch cfg.Provider {
	case "gemini":
		c, err := gemini.NewCompleter(ctx, log, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini completer: %w", err)
		}
		return c, nil
	case "openai":
		c, err := openai.NewCompleter(log, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai completer: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}
