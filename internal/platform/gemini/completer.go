package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/dailynote/internal/config"
	"github.com/phrazzld/dailynote/internal/generation"
	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"
)

// minRetryDelay is used when the configured retry delay is zero.
const minRetryDelay = 50 * time.Millisecond

// contentGenerator is the slice of the genai client the Completer needs.
// *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Completer implements generation.Completer using the Gemini API.
type Completer struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// models issues the GenerateContent requests
	models contentGenerator
}

var _ generation.Completer = (*Completer)(nil)

// NewCompleter creates a Completer talking to the Gemini API.
func NewCompleter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return newCompleter(logger, cfg, client.Models)
}

func newCompleter(logger *slog.Logger, cfg config.LLMConfig, models contentGenerator) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if models == nil {
		return nil, fmt.Errorf("%w: content generator cannot be nil", generation.ErrInvalidConfig)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return &Completer{
		logger: logger.With("component", "gemini_completer", "model", cfg.ModelName),
		config: cfg,
		models: models,
	}, nil
}

func validateConfig(cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries cannot be negative", generation.ErrInvalidConfig)
	}
	return nil
}

// Complete sends prompt to Gemini and returns the concatenated text of the
// first candidate. Transient failures are retried up to MaxRetries times.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", generation.ErrEmptyPrompt
	}

	attempt := 0
	var text string
	err := retry.Do(ctx, c.backoff(), func(ctx context.Context) error {
		attempt++
		c.logger.DebugContext(ctx, "Making Gemini API call",
			"attempt", attempt,
			"max_attempts", c.config.MaxRetries+1,
			"prompt_length", len(prompt))

		out, err := c.completeOnce(ctx, prompt)
		if err != nil {
			c.logger.WarnContext(ctx, "Gemini API call failed",
				"attempt", attempt,
				"error", err)
			if errors.Is(err, generation.ErrTransientFailure) {
				return retry.RetryableError(err)
			}
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			return "", fmt.Errorf("completion cancelled after %d attempts: %w", attempt, ctxErr)
		}
		return "", err
	}

	c.logger.DebugContext(ctx, "Gemini API call successful",
		"attempt", attempt,
		"response_length", len(text))
	return text, nil
}

func (c *Completer) backoff() retry.Backoff {
	base := time.Duration(c.config.RetryDelaySeconds) * time.Second
	if base <= 0 {
		base = minRetryDelay
	}
	b := retry.NewExponential(base)
	b = retry.WithJitterPercent(25, b)
	return retry.WithMaxRetries(uint64(c.config.MaxRetries), b)
}

func (c *Completer) completeOnce(ctx context.Context, prompt string) (string, error) {
	reqCtx := ctx
	if c.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.config.RequestTimeout)
		defer cancel()
	}

	resp, err := c.models.GenerateContent(reqCtx, c.config.ModelName, genai.Text(prompt), nil)
	if err != nil {
		return "", classifyError(ctx, err)
	}
	return responseText(resp)
}

// responseText extracts the text of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		sb.WriteString(part.Text)
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: response contains no text", generation.ErrInvalidResponse)
	}
	return text, nil
}

// classifyError maps a GenerateContent failure onto the generation sentinels.
// parent is the caller's context, used to tell a cancelled run apart from a
// request that merely hit its own timeout.
func classifyError(parent context.Context, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return fmt.Errorf("gemini request aborted: %w", parentErr)
	}

	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	code := 0
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		code = apiErrPtr.Code
	}

	switch {
	case code == 401 || code == 403:
		return fmt.Errorf("%w: %v", generation.ErrUnauthorized, err)
	case code == 404:
		return fmt.Errorf("%w: model not found: %v", generation.ErrInvalidConfig, err)
	case code == 429 || code >= 500:
		return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	case code >= 400:
		return fmt.Errorf("%w: request rejected: %v", generation.ErrInvalidResponse, err)
	}

	// Per-request timeouts and network errors are worth another try; %v keeps
	// a request deadline from reading as a cancelled run.
	return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
}
