// Package ollama implements the llm.Client interface against a local
// Ollama server.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"codereview-backend/internal/llm"
	"codereview-backend/internal/shared/telemetry"
)

// Client wraps the Ollama API client.
type Client struct {
	client  *api.Client
	model   string
	opts    llm.Options
	timeout time.Duration
}

// NewClient constructs an Ollama-backed client for the given host URL and model.
func NewClient(hostURL, model string, opts llm.Options) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Ollama")
	}
	parsedURL, err := url.Parse(hostURL)
	if err != nil || parsedURL.Host == "" {
		parsedURL, _ = url.Parse("http://localhost:11434")
	}
	if opts.Temperature <= 0 {
		opts.Temperature = llm.DefaultOptions().Temperature
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = llm.DefaultOptions().MaxTokens
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OLLAMA_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		client:  api.NewClient(parsedURL, http.DefaultClient),
		model:   model,
		opts:    opts,
		timeout: timeout,
	}, nil
}

// Generate runs a non-streaming generate call and returns the full response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream := false
	req := &api.GenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": c.opts.Temperature,
			"num_predict": c.opts.MaxTokens,
		},
	}

	var out strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return out.String(), nil
}

// HealthCheck reports whether the configured model is present on the server.
func (c *Client) HealthCheck(ctx context.Context) bool {
	models, err := c.client.List(ctx)
	if err != nil {
		telemetry.Error("llm.health", map[string]any{"error": err.Error()})
		return false
	}
	base := c.model
	if idx := strings.IndexByte(base, ':'); idx > 0 {
		base = base[:idx]
	}
	for _, m := range models.Models {
		if strings.Contains(m.Name, base) {
			return true
		}
	}
	return false
}

var _ llm.Client = (*Client)(nil)
