package generation

import "context"

// Completer defines the interface for obtaining a text completion from a
// language model. This interface serves as a boundary between the application
// core and external AI/LLM services.
type Completer interface {
	// Complete sends prompt to the model and returns the generated text.
	// Errors wrap the sentinels in errors.go so callers can classify them.
	Complete(ctx context.Context, prompt string) (string, error)
}
