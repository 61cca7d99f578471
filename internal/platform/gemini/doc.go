// Package gemini provides an implementation of the generation.Completer
// interface backed by Google's Gemini API.
//
// This package is an infrastructure adapter: it connects the theme resolver
// and article generator to the external Gemini service without exposing the
// genai client types to the rest of the application.
//
// Key components:
//
// 1. Completer:
//   - Implements the generation.Completer interface
//   - Sends a single-turn text prompt and concatenates the returned text parts
//
// 2. Error Handling:
//   - Retries transient failures with exponential backoff (sethvargo/go-retry)
//   - Translates genai.APIError status codes into generation sentinels
//   - Reports safety blocks as generation.ErrContentBlocked
//
// The package depends on google.golang.org/genai for communicating with the
// Gemini API.
package gemini
