package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicDefaultMaxTokens is used when no limit is configured; the Messages
// API requires one.
const anthropicDefaultMaxTokens = 1024

// AnthropicLLM implements the LLM interface using Anthropic's Messages API.
// The Messages API has no frequency or presence penalty; those params are ignored.
type AnthropicLLM struct {
	client anthropic.Client
}

// NewAnthropicLLM creates an Anthropic-backed LLM implementation.
func NewAnthropicLLM(cfg Config) (*AnthropicLLM, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing Anthropic API key", ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicLLM{
		client: anthropic.NewClient(opts...),
	}, nil
}

// Generate sends the prompt to Anthropic and returns the first text block.
func (a *AnthropicLLM) Generate(ctx context.Context, req Request) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	maxTokens := int64(req.Params.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Params.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Temperature: anthropic.Float(req.Params.Temperature),
		TopP:        anthropic.Float(req.Params.TopP),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLLMFailed, err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", ErrEmptyResponse
}
