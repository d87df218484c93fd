// Package models contains shared data models used across the OcuScreen codebase.
package models

import "context"

// TextGenerator is the core interface every text-generation integration
// must implement. Never call specific providers directly — always inject
// this interface.
type TextGenerator interface {
	// Complete sends one prompt to the provider and returns the raw text
	// of its reply. Exactly one outbound call per invocation; no retries.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Name returns the provider identifier (e.g., "ollama", "openai").
	Name() string
	// Model returns the configured model identifier.
	Model() string
}

// CompletionRequest is the input to a text completion call.
type CompletionRequest struct {
	System    string // system / instruction prompt
	Prompt    string // user prompt
	MaxTokens int    // upper bound on generated tokens; 0 means provider default
}
