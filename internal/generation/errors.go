package generation

import (
	"context"
	"errors"
)

// Common errors returned by the generation package and its adapters
var (
	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during completion")

	// ErrInvalidConfig is returned when the completer configuration is invalid
	ErrInvalidConfig = errors.New("invalid completer configuration")

	// ErrUnauthorized is returned when the provider rejects the credentials.
	// Retrying cannot fix it.
	ErrUnauthorized = errors.New("language model provider rejected credentials")

	// ErrEmptyPrompt is returned when a completion is requested for an empty prompt
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)

// IsFatal reports whether err cannot be cured by asking again: bad
// configuration, rejected credentials, an empty prompt, or a cancelled or
// expired context.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrEmptyPrompt) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
