package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

const fence = "```"

// StripCodeFence removes a Markdown code fence wrapped around text: an
// opening "```" line (with or without a language tag such as json) and a
// closing "```". Text without a surrounding fence is returned trimmed.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, fence) {
		return s
	}

	s = strings.TrimPrefix(s, fence)
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the info string ("json", "JSON", ...) on the opening line.
		if info := strings.TrimSpace(s[:nl]); !strings.ContainsAny(info, "{[\"") {
			s = s[nl+1:]
		}
	} else {
		s = strings.TrimPrefix(strings.TrimSpace(s), "json")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// ExtractObject returns the first balanced {...} substring of text. Braces
// inside JSON strings are ignored. It reports false when text has no
// complete object.
func ExtractObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// DecodeObject parses model output into v. The fenced wrapper is stripped
// first; if the remainder is not valid JSON, the first balanced object in it
// is decoded instead. Anything else is ErrInvalidResponse.
func DecodeObject(text string, v any) error {
	cleaned := StripCodeFence(text)
	if cleaned == "" {
		return fmt.Errorf("%w: empty payload", ErrInvalidResponse)
	}

	err := json.Unmarshal([]byte(cleaned), v)
	if err == nil {
		return nil
	}

	obj, ok := ExtractObject(cleaned)
	if !ok || obj == cleaned {
		return fmt.Errorf("%w: payload is not a JSON object: %v", ErrInvalidResponse, err)
	}

	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return fmt.Errorf("%w: embedded object is not valid JSON: %v", ErrInvalidResponse, err)
	}
	return nil
}
