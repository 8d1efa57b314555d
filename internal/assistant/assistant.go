// Package assistant answers prompts: it composes the final prompt, records it on
// the diagnostic logger, and forwards it to an LLM in a single request.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Yates-Labs/promptsmith/internal/config"
	"github.com/Yates-Labs/promptsmith/internal/llm"
	"github.com/Yates-Labs/promptsmith/internal/prompt"
)

var (
	ErrAskFailed = errors.New("ask failed")
)

// Answer is the generated reply together with what was sent to get it.
type Answer struct {
	// Text is the first completion returned by the provider
	Text string `json:"text"`

	// Prompt is the composed prompt that was sent
	Prompt string `json:"prompt"`

	// Temperature is the effective temperature of the request
	Temperature float64 `json:"temperature"`

	Model       string    `json:"model"`
	Provider    string    `json:"provider"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Assistant composes prompts and sends them to an LLM.
type Assistant struct {
	llm      llm.LLM
	params   llm.GenerationParams
	provider string
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger sets the diagnostic logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithProvider records the provider name reported on answers.
func WithProvider(name string) Option {
	return func(a *Assistant) { a.provider = name }
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Assistant) { a.timeout = d }
}

// New creates an assistant around the given LLM implementation.
func New(model llm.LLM, params llm.GenerationParams, opts ...Option) *Assistant {
	a := &Assistant{
		llm:      model,
		params:   params,
		provider: llm.ProviderOpenAI,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FromConfig builds an assistant for the provider described by a loaded
// configuration. Credentials are already validated by config.Load.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Assistant, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	section := cfg.ChatGPT
	model, err := llm.New(llm.Config{
		Provider: section.Provider,
		APIKey:   section.APIKey,
		BaseURL:  section.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrConfiguration, err)
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}

	params := llm.DefaultGenerationParams()
	params.Model = section.Model
	params.MaxTokens = section.MaxTokens
	params.TopP = section.TopP
	params.FrequencyPenalty = section.FrequencyPenalty
	params.PresencePenalty = section.PresencePenalty

	return New(model, params,
		WithLogger(logger),
		WithProvider(section.Provider),
		WithTimeout(timeout),
	), nil
}

// Params returns the generation parameters used for each request.
func (a *Assistant) Params() llm.GenerationParams {
	return a.params
}

// WithParams returns a copy of the assistant that sends the given parameters.
func (a *Assistant) WithParams(params llm.GenerationParams) *Assistant {
	cp := *a
	cp.params = params
	return &cp
}

// Ask composes base with opts, sends it, and returns the answer.
// The composed temperature replaces the configured one.
func (a *Assistant) Ask(ctx context.Context, base string, opts prompt.Options) (*Answer, error) {
	if a.llm == nil {
		return nil, fmt.Errorf("%w: LLM is required", ErrAskFailed)
	}

	composed, err := prompt.Compose(base, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAskFailed, err)
	}

	params := a.params
	params.Temperature = composed.Temperature

	a.logger.InfoContext(ctx, "composed prompt",
		"prompt", composed.Text,
		"temperature", composed.Temperature,
		"clauses", composed.Clauses,
	)

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := a.llm.Generate(ctx, llm.Request{Prompt: composed.Text, Params: params})
	if err != nil {
		a.logger.ErrorContext(ctx, "request failed",
			"provider", a.provider,
			"model", params.Model,
			"duration", time.Since(start),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrAskFailed, err)
	}

	a.logger.DebugContext(ctx, "request finished",
		"provider", a.provider,
		"model", params.Model,
		"duration", time.Since(start),
	)

	return &Answer{
		Text:        text,
		Prompt:      composed.Text,
		Temperature: composed.Temperature,
		Model:       params.Model,
		Provider:    a.provider,
		GeneratedAt: time.Now(),
	}, nil
}
