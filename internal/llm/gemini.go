package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiLLM implements the LLM interface using the Gemini API.
type GeminiLLM struct {
	client *genai.Client
}

// NewGeminiLLM creates a Gemini-backed LLM implementation.
// Building the client makes no network call.
func NewGeminiLLM(cfg Config) (*GeminiLLM, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing Gemini API key", ErrInvalidConfig)
	}

	cc := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  cfg.APIKey,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &GeminiLLM{client: client}, nil
}

// Generate sends the prompt to Gemini and returns the text of the first candidate.
func (g *GeminiLLM) Generate(ctx context.Context, req Request) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	gc := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(req.Params.Temperature)),
		TopP:             genai.Ptr(float32(req.Params.TopP)),
		FrequencyPenalty: genai.Ptr(float32(req.Params.FrequencyPenalty)),
		PresencePenalty:  genai.Ptr(float32(req.Params.PresencePenalty)),
	}
	if req.Params.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(req.Params.MaxTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Params.Model, genai.Text(req.Prompt), gc)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLLMFailed, err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
