// Package groq implements the Groq chat-completions provider
// (OpenAI-compatible API, Llama models).
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/safespace-sl/safespace/internal/provider"
)

// maxResponseSize is the maximum response body size (10 MB).
const maxResponseSize = 10 * 1024 * 1024

// Compile-time interface guard.
var _ provider.Provider = (*Provider)(nil)

// Provider calls the Groq chat completions API.
type Provider struct {
	config Config
	client *http.Client
}

// New returns a configured Groq provider.
func New(cfg Config) (*Provider, error) {
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Provider{
		config: cfg,
		client: &http.Client{Timeout: cfg.parsedTimeout()},
	}, nil
}

// Name implements provider.Provider.
func (p *Provider) Name() string {
	return "Groq (Llama)"
}

// Generate implements provider.Provider.
func (p *Provider) Generate(ctx context.Context, req provider.Request) (string, error) {
	if p.config.APIKey == "" {
		return "", fmt.Errorf("%w: GROQ_API_KEY missing", provider.ErrNotConfigured)
	}

	cr := chatRequest{
		Model:       p.config.Model,
		Messages:    toMessages(req),
		Temperature: p.temperature(req),
		MaxTokens:   p.maxTokens(req),
	}

	body, err := json.Marshal(cr)
	if err != nil {
		return "", fmt.Errorf("groq: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("groq: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", mapConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("groq: read response: %w", err)
	}
	if httpErr := mapHTTPError(resp.StatusCode, respBody); httpErr != nil {
		return "", httpErr
	}

	var cresp chatResponse
	if err := json.Unmarshal(respBody, &cresp); err != nil {
		return "", fmt.Errorf("groq: unmarshal response: %w", err)
	}

	text := cresp.text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: groq", provider.ErrEmptyResponse)
	}
	return strings.TrimSpace(text), nil
}

func (p *Provider) temperature(req provider.Request) *float64 {
	if req.Temperature != nil {
		return req.Temperature
	}
	return p.config.Temperature
}

func (p *Provider) maxTokens(req provider.Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return p.config.MaxTokens
}

// toMessages flattens the request into OpenAI-style chat messages: one
// system message (instruction plus facts), the history, then the
// current prompt. Counselor turns map to the assistant role.
func toMessages(req provider.Request) []chatMessage {
	msgs := make([]chatMessage, 0, len(req.History)+2)
	msgs = append(msgs, chatMessage{Role: "system", Content: req.SystemInstruction + req.FactsBlock()})
	for _, turn := range req.History {
		role := "user"
		if turn.Role == provider.RoleCounselor {
			role = "assistant"
		}
		msgs = append(msgs, chatMessage{Role: role, Content: turn.Content})
	}
	return append(msgs, chatMessage{Role: "user", Content: req.Prompt})
}
