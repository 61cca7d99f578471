// Package openai provides a generation.Completer backed by the OpenAI chat
// completions API, or any OpenAI-compatible endpoint reachable through
// llm.base_url.
package openai
