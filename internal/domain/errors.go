package domain

import "errors"

// Entity construction errors. The per-field errors in theme.go and
// article.go wrap one of these.
var (
	// ErrValidation marks a value that is present but unacceptable.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat marks a value that does not parse.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrEmptyContent marks a required text field that is blank after trimming.
	ErrEmptyContent = errors.New("content cannot be empty")
)
