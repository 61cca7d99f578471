package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/phrazzld/dailynote/internal/config"
	"github.com/phrazzld/dailynote/internal/generation"
)

// Completer implements generation.Completer with openai-go.
type Completer struct {
	logger *slog.Logger
	client openai.Client
	model  string
}

var _ generation.Completer = (*Completer)(nil)

// NewCompleter creates a Completer. Extra options are appended after the
// ones derived from cfg.
func NewCompleter(logger *slog.Logger, cfg config.LLMConfig, extra ...option.RequestOption) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("%w: max retries cannot be negative", generation.ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.RequestTimeout))
	}
	opts = append(opts, extra...)

	return &Completer{
		logger: logger.With("component", "openai_completer", "model", cfg.ModelName),
		client: openai.NewClient(opts...),
		model:  cfg.ModelName,
	}, nil
}

// Complete sends prompt as a single user message and returns the first
// choice's content. The SDK retries rate limits and server errors itself.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", generation.ErrEmptyPrompt
	}

	c.logger.DebugContext(ctx, "Making OpenAI chat completion call", "prompt_length", len(prompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		err = classifyError(ctx, err)
		c.logger.WarnContext(ctx, "OpenAI chat completion failed", "error", err)
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", generation.ErrInvalidResponse)
	}
	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", fmt.Errorf("%w: content filtered", generation.ErrContentBlocked)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", fmt.Errorf("%w: response contains no text", generation.ErrInvalidResponse)
	}

	c.logger.DebugContext(ctx, "OpenAI chat completion successful",
		"response_length", len(choice.Message.Content))
	return choice.Message.Content, nil
}

func classifyError(parent context.Context, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return fmt.Errorf("openai request aborted: %w", parentErr)
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch code := apiErr.StatusCode; {
		case code == http.StatusUnauthorized || code == http.StatusForbidden:
			return fmt.Errorf("%w: %v", generation.ErrUnauthorized, err)
		case code == http.StatusNotFound:
			return fmt.Errorf("%w: model not found: %v", generation.ErrInvalidConfig, err)
		case code == http.StatusTooManyRequests || code >= 500:
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		default:
			return fmt.Errorf("%w: request rejected: %v", generation.ErrInvalidResponse, err)
		}
	}

	return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
}
