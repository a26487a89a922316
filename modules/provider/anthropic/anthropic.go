// Package anthropic implements a Claude-backed provider using the
// Anthropic Messages API as the last rung of the generation cascade.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	sdkanthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/safespace-sl/safespace/internal/provider"
)

// Compile-time interface guard.
var _ provider.Provider = (*Provider)(nil)

// Provider calls the Anthropic Messages API.
type Provider struct {
	config Config
	client *sdkanthropic.Client
}

// New returns a configured Anthropic provider.
func New(cfg Config) (*Provider, error) {
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	// The cascade owns failover; disable SDK-level retries.
	opts = append(opts, option.WithMaxRetries(0))

	client := sdkanthropic.NewClient(opts...)
	return &Provider{
		config: cfg,
		client: &client,
	}, nil
}

// Name implements provider.Provider.
func (p *Provider) Name() string {
	return "Claude"
}

// Generate implements provider.Provider.
func (p *Provider) Generate(ctx context.Context, req provider.Request) (string, error) {
	if p.config.APIKey == "" {
		return "", fmt.Errorf("%w: ANTHROPIC_API_KEY missing", provider.ErrNotConfigured)
	}

	params := p.buildParams(req)

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", mapError(err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if v, ok := block.AsAny().(sdkanthropic.TextBlock); ok {
			if text.Len() > 0 {
				text.WriteString("\n")
			}
			text.WriteString(v.Text)
		}
	}
	out := strings.TrimSpace(text.String())
	if out == "" {
		return "", fmt.Errorf("%w: anthropic", provider.ErrEmptyResponse)
	}
	return out, nil
}

// buildParams converts a generation request into Messages API
// parameters. Counselor turns map to the assistant role; the system
// instruction plus facts go in the dedicated System field.
func (p *Provider) buildParams(req provider.Request) sdkanthropic.MessageNewParams {
	messages := make([]sdkanthropic.MessageParam, 0, len(req.History)+1)
	for _, turn := range req.History {
		if turn.Role == provider.RoleCounselor {
			messages = append(messages, sdkanthropic.NewAssistantMessage(sdkanthropic.NewTextBlock(turn.Content)))
		} else {
			messages = append(messages, sdkanthropic.NewUserMessage(sdkanthropic.NewTextBlock(turn.Content)))
		}
	}
	messages = append(messages, sdkanthropic.NewUserMessage(sdkanthropic.NewTextBlock(req.Prompt)))

	params := sdkanthropic.MessageNewParams{
		Model:    sdkanthropic.Model(p.config.Model),
		Messages: messages,
		System: []sdkanthropic.TextBlockParam{
			{Text: req.SystemInstruction + req.FactsBlock()},
		},
	}

	params.MaxTokens = int64(p.config.MaxTokens)
	if req.MaxTokens > 0 {
		params.MaxTokens = int64(req.MaxTokens)
	}

	switch {
	case req.Temperature != nil:
		params.Temperature = sdkanthropic.Float(*req.Temperature)
	case p.config.Temperature != nil:
		params.Temperature = sdkanthropic.Float(*p.config.Temperature)
	}

	return params
}
