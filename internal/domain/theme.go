package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used as the theme key.
const DateLayout = "2006-01-02"

// Validation errors for Theme
var (
	ErrEmptyThemeDate   = fmt.Errorf("%w: theme date cannot be empty", ErrValidation)
	ErrInvalidThemeDate = fmt.Errorf("%w: theme date must be a YYYY-MM-DD calendar date", ErrInvalidFormat)
	ErrEmptyThemeText   = fmt.Errorf("%w: theme text", ErrEmptyContent)
)

// Theme is the topic chosen for one calendar day. There is at most one theme
// per date and it is never changed once stored.
type Theme struct {
	Date      string    `json:"date"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"created_at"`
}

// DateKey formats t as the calendar date used to key themes.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// NewTheme creates a Theme for the calendar date of the given time.
// The text is trimmed; an empty result fails validation.
func NewTheme(date time.Time, text string) (*Theme, error) {
	theme := &Theme{
		Date:  DateKey(date),
		Theme: strings.TrimSpace(text),
	}

	if err := theme.Validate(); err != nil {
		return nil, err
	}

	return theme, nil
}

// Validate checks if the Theme has valid data.
func (t *Theme) Validate() error {
	if t.Date == "" {
		return ErrEmptyThemeDate
	}

	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return ErrInvalidThemeDate
	}

	if strings.TrimSpace(t.Theme) == "" {
		return ErrEmptyThemeText
	}

	return nil
}
