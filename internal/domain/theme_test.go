package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewTheme(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)

	theme, err := NewTheme(date, "  Frugal Living \n")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if theme.Date != "2024-01-01" {
		t.Errorf("Expected date 2024-01-01, got %s", theme.Date)
	}

	if theme.Theme != "Frugal Living" {
		t.Errorf("Expected trimmed theme, got %q", theme.Theme)
	}

	// Whitespace-only text is rejected
	_, err = NewTheme(date, "   ")
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent, got %v", err)
	}
}

func TestThemeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		theme   Theme
		wantErr error
	}{
		{
			name:  "valid",
			theme: Theme{Date: "2024-02-29", Theme: "Leap years"},
		},
		{
			name:    "empty date",
			theme:   Theme{Theme: "x"},
			wantErr: ErrEmptyThemeDate,
		},
		{
			name:    "not a calendar date",
			theme:   Theme{Date: "2023-02-29", Theme: "x"},
			wantErr: ErrInvalidThemeDate,
		},
		{
			name:    "empty text",
			theme:   Theme{Date: "2024-01-01"},
			wantErr: ErrEmptyThemeText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.theme.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	instant := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	if got := DateKey(instant); got != "2024-01-01" {
		t.Errorf("Expected 2024-01-01, got %s", got)
	}

	// The key follows the location of the time value
	if got := DateKey(instant.In(tokyo)); got != "2024-01-02" {
		t.Errorf("Expected 2024-01-02, got %s", got)
	}
}
