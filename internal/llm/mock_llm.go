package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM is a deterministic LLM implementation for testing.
// It returns predictable responses based on prompt content.
type MockLLM struct {
	// Response is the fixed text returned by Generate.
	// If empty, a default response is generated from the request.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// LastRequest stores the most recent request passed to Generate.
	LastRequest Request

	// Calls counts Generate invocations.
	Calls int
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Generate returns the configured response or generates a deterministic one.
func (m *MockLLM) Generate(ctx context.Context, req Request) (string, error) {
	m.LastRequest = req
	m.Calls++

	if m.Error != nil {
		return "", m.Error
	}

	if m.Response != "" {
		return m.Response, nil
	}

	return generateMockResponse(req), nil
}

// generateMockResponse echoes the shape of the request so tests can assert on it.
func generateMockResponse(req Request) string {
	var b strings.Builder

	firstLine, _, _ := strings.Cut(req.Prompt, "\n")
	lines := strings.Count(req.Prompt, "\n") + 1

	b.WriteString(fmt.Sprintf("Answering %q ", firstLine))
	b.WriteString(fmt.Sprintf("(%d prompt lines) ", lines))
	b.WriteString(fmt.Sprintf("with %s at temperature %.1f.", req.Params.Model, req.Params.Temperature))

	return b.String()
}
