// Package chat holds the request-orchestration core: validating incoming
// chat requests, composing the final model instruction, and extracting the
// final answer text from a conversation trace.
//
// Everything in this package is pure: no I/O, no process state. The agent
// package performs the actual model invocation.
package chat

import (
	"fmt"
	"strings"
)

// Supported model providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// AllowedGeminiModels is the fixed allow-list of Gemini model identifiers.
// Requests for any other Gemini model are rejected up front; this guards
// against unsupported or unexpectedly billable models. Other providers are
// not allow-listed; an invalid model name is rejected downstream by the
// provider itself.
var AllowedGeminiModels = []string{
	"models/gemini-flash-latest",
	"models/gemini-flash-lite-latest",
	"models/gemini-2.0-flash",
}

// Request is one incoming chat request. Messages are chronological chat
// turns; the last element is the active user query.
type Request struct {
	ModelName     string   `json:"model_name"`
	ModelProvider string   `json:"model_provider"`
	SystemPrompt  string   `json:"system_prompt"`
	Messages      []string `json:"messages"`
	AllowSearch   bool     `json:"allow_search"`
}

// Provider returns the normalized (lowercased) provider name.
func (r *Request) Provider() string {
	return strings.ToLower(r.ModelProvider)
}

// Query returns the active user query: the last message.
// Only meaningful after Validate succeeds.
func (r *Request) Query() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1]
}

// Validate checks the request for well-formedness. It is a pure function
// over the request and the static allow-list; it has no side effects.
func (r *Request) Validate() error {
	switch r.Provider() {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("%w: %q (use %q or %q)", ErrUnsupportedProvider, r.ModelProvider, ProviderGemini, ProviderOpenAI)
	}

	if len(r.Messages) == 0 || strings.TrimSpace(r.Query()) == "" {
		return ErrEmptyMessages
	}

	if r.Provider() == ProviderGemini && !isAllowedGeminiModel(r.ModelName) {
		return fmt.Errorf("%w: invalid Gemini model %q", ErrUnsupportedModel, r.ModelName)
	}

	return nil
}

func isAllowedGeminiModel(name string) bool {
	for _, m := range AllowedGeminiModels {
		if name == m {
			return true
		}
	}
	return false
}
