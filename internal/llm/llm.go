package llm

import (
	"context"
	"errors"
)

// Client abstracts the text-generation model used for code review.
type Client interface {
	// Generate sends a prompt to the model and returns the raw response text.
	Generate(ctx context.Context, prompt string) (string, error)
	// HealthCheck reports whether the configured model is available.
	// It never returns an error; any failure maps to false.
	HealthCheck(ctx context.Context) bool
}

// Options controls model sampling and output length.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// DefaultOptions returns the sampling defaults used for code review.
func DefaultOptions() Options {
	return Options{Temperature: 0.4, MaxTokens: 2000}
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Generate returns ErrNotImplemented.
func (PlaceholderClient) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotImplemented
}

// HealthCheck always reports false.
func (PlaceholderClient) HealthCheck(ctx context.Context) bool {
	_ = ctx
	return false
}
