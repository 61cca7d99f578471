// Package generation defines the boundary between the application and the
// language-model services used for content generation. The Completer
// interface maps a prompt to a text completion; adapters for Gemini and
// OpenAI-compatible APIs live under internal/platform. The package also holds
// the error taxonomy shared by those adapters and the tolerant decoder used
// to read structured JSON payloads out of model output.
package generation
