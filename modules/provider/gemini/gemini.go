// Package gemini implements the Google Gemini generateContent provider
// and the text-embedding client used by knowledge retrieval.
package gemini

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
// Protects against OOM from malformed or huge responses.
const maxResponseSize = 10 * 1024 * 1024

// Compile-time interface guards.
var (
	_ provider.Provider = (*Provider)(nil)
	_ provider.Embedder = (*Provider)(nil)
)

// Provider calls the Gemini REST API.
type Provider struct {
	config Config
	client *http.Client
}

// New returns a configured Gemini provider.
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
	return "Gemini Flash"
}

// Generate implements provider.Provider.
func (p *Provider) Generate(ctx context.Context, req provider.Request) (string, error) {
	if p.config.APIKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY missing", provider.ErrNotConfigured)
	}

	gr := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: req.SystemInstruction + req.FactsBlock()}}},
		Contents:          toContents(req),
		GenerationConfig: &generationConfig{
			Temperature:     p.temperature(req),
			MaxOutputTokens: p.maxTokens(req),
		},
	}

	path := fmt.Sprintf("/models/%s:generateContent", p.config.Model)
	body, statusCode, err := p.doPost(ctx, path, gr)
	if err != nil {
		return "", err
	}
	if httpErr := mapHTTPError(statusCode, body); httpErr != nil {
		return "", httpErr
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("gemini: unmarshal response: %w", err)
	}

	text := resp.text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: gemini", provider.ErrEmptyResponse)
	}
	return strings.TrimSpace(text), nil
}

// Embed implements provider.Embedder using the configured embedding
// model.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if p.config.APIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY missing", provider.ErrNotConfigured)
	}

	er := embedRequest{Content: content{Parts: []part{{Text: text}}}}

	path := fmt.Sprintf("/models/%s:embedContent", p.config.EmbeddingModel)
	body, statusCode, err := p.doPost(ctx, path, er)
	if err != nil {
		return nil, err
	}
	if httpErr := mapHTTPError(statusCode, body); httpErr != nil {
		return nil, httpErr
	}

	var resp embedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("gemini: unmarshal embedding: %w", err)
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: gemini embedding", provider.ErrEmptyResponse)
	}
	return resp.Embedding.Values, nil
}

// doPost sends a POST request and returns the response body and status
// code. The response body is limited to maxResponseSize bytes.
func (p *Provider) doPost(ctx context.Context, path string, payload any) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := p.config.BaseURL + path + "?key=" + p.config.APIKey
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("gemini: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, 0, mapConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("gemini: read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
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

// toContents converts history plus the current prompt to Gemini
// contents. Counselor turns map to the "model" role.
func toContents(req provider.Request) []content {
	contents := make([]content, 0, len(req.History)+1)
	for _, turn := range req.History {
		role := "user"
		if turn.Role == provider.RoleCounselor {
			role = "model"
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: turn.Content}}})
	}
	return append(contents, content{Role: "user", Parts: []part{{Text: req.Prompt}}})
}
