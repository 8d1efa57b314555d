// Package llm sends composed prompts to chat-completion providers.
// It defines a provider-agnostic LLM interface with concrete implementations for
// OpenAI, Anthropic and Gemini, plus a deterministic mock for testing. Adapters
// make exactly one request per call; SDK retries are disabled.
package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrEmptyResponse = fmt.Errorf("%w: no choices in response", ErrLLMFailed)
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// Supported provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

// DefaultModel returns the model used for provider when none is configured,
// or "" for an unknown provider.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI, "":
		return "gpt-3.5-turbo"
	case ProviderAnthropic:
		return "claude-sonnet-4-5"
	case ProviderGoogle:
		return "gemini-2.5-flash"
	default:
		return ""
	}
}

// LLM defines the interface for interacting with language models.
type LLM interface {
	// Generate sends the prompt as a single user message and returns the text
	// of the first candidate.
	Generate(ctx context.Context, req Request) (string, error)
}

// Request is one outbound completion call.
type Request struct {
	Prompt string
	Params GenerationParams
}

// GenerationParams are the sampling parameters forwarded to the provider.
// They are passed through as given.
type GenerationParams struct {
	// Model specifies the model identifier (e.g., "gpt-3.5-turbo", "gpt-4o")
	Model string

	// Temperature controls randomness (0.0 = deterministic, 2.0 = very random)
	Temperature float64

	// MaxTokens limits the response length (0 = use provider default)
	MaxTokens int

	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// DefaultGenerationParams mirrors the defaults of the chat-completion API
// helper this tool grew out of.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Model:       DefaultModel(ProviderOpenAI),
		Temperature: 0.8,
		MaxTokens:   1000,
		TopP:        1,
	}
}

// Config selects and authenticates a provider.
type Config struct {
	// Provider is one of ProviderOpenAI (default), ProviderAnthropic, ProviderGoogle.
	Provider string

	// APIKey is the authentication key for the provider
	APIKey string

	// BaseURL overrides the provider endpoint. Empty uses the SDK default.
	BaseURL string
}

// New creates the LLM implementation for cfg.Provider.
func New(cfg Config) (LLM, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAILLM(cfg)
	case ProviderAnthropic:
		return NewAnthropicLLM(cfg)
	case ProviderGoogle:
		return NewGeminiLLM(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q (supported: openai, anthropic, google)", ErrInvalidConfig, cfg.Provider)
	}
}

func validateRequest(req Request) error {
	if req.Prompt == "" {
		return fmt.Errorf("%w: prompt cannot be empty", ErrInvalidConfig)
	}
	if req.Params.Model == "" {
		return fmt.Errorf("%w: missing model name", ErrInvalidConfig)
	}
	return nil
}
