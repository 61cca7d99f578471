// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or printed. Upstream SDK errors can echo request URLs,
// connection strings and API keys; everything reported from the generation loop
// passes through here first.
package redact

import (
	"regexp"
	"strings"
	"sync"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// Precompiled regex patterns
var (
	// Database connection strings
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database|connection)://[^@\s]+@`)

	// Credentials and tokens
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
	// Google API keys, as used by Gemini
	googleKeyRegex = regexp.MustCompile(`AIza[0-9A-Za-z_\-]{30,}`)
	// OpenAI-style secret keys
	openAIKeyRegex = regexp.MustCompile(`sk-[A-Za-z0-9_\-]{16,}`)
	bearerRegex    = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]{8,}`)

	// All patterns and their placeholders
	patterns = []*regexp.Regexp{
		dbConnRegex, passwordRegex, googleKeyRegex, openAIKeyRegex, bearerRegex, apiKeyRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		dbConnRegex:    RedactedCredentialPlaceholder,
		passwordRegex:  RedactedCredentialPlaceholder,
		googleKeyRegex: RedactedKeyPlaceholder,
		openAIKeyRegex: RedactedKeyPlaceholder,
		bearerRegex:    RedactedKeyPlaceholder,
		apiKeyRegex:    RedactedKeyPlaceholder,
	}

	mu      sync.RWMutex
	secrets []string
)

// RegisterSecret adds a literal value (an API key, a password) that must never
// appear in redacted output. Empty and very short values are ignored.
func RegisterSecret(values ...string) {
	mu.Lock()
	defer mu.Unlock()

	for _, v := range values {
		if len(v) < 4 {
			continue
		}
		secrets = append(secrets, v)
	}
}

// ResetSecrets forgets every registered secret.
func ResetSecrets() {
	mu.Lock()
	defer mu.Unlock()
	secrets = nil
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	mu.RLock()
	defer mu.RUnlock()

	result := input
	for _, secret := range secrets {
		result = strings.ReplaceAll(result, secret, RedactionPlaceholder)
	}

	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
