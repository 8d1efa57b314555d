package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAITestServer(t *testing.T, handler http.HandlerFunc) *OpenAILLM {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	o, err := NewOpenAILLM(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	return o
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("failed to unmarshal body: %v", err)
	}

	return req
}

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-3.5-turbo",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	}
}

func TestOpenAILLM_Generate(t *testing.T) {
	var got map[string]any
	o := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		got = readBody(t, r)
		writeJSON(t, w, chatCompletion("4"))
	})

	params := DefaultGenerationParams()
	params.Temperature = 0.2
	params.FrequencyPenalty = 0.1
	params.PresencePenalty = 0.3

	text, err := o.Generate(context.Background(), Request{Prompt: "What is 2+2?", Params: params})
	require.NoError(t, err)
	assert.Equal(t, "4", text)

	assert.Equal(t, "gpt-3.5-turbo", got["model"])
	assert.InDelta(t, 0.2, got["temperature"], 1e-9)
	assert.InDelta(t, 1.0, got["top_p"], 1e-9)
	assert.InDelta(t, 0.1, got["frequency_penalty"], 1e-9)
	assert.InDelta(t, 0.3, got["presence_penalty"], 1e-9)
	assert.InDelta(t, 1000, got["max_tokens"], 1e-9)

	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)

	msg, _ := msgs[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "What is 2+2?", msg["content"])
}

func TestOpenAILLM_Generate_OmitsZeroMaxTokens(t *testing.T) {
	o := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)
		_, present := req["max_tokens"]
		assert.False(t, present, "max_tokens should be omitted")
		writeJSON(t, w, chatCompletion("ok"))
	})

	params := DefaultGenerationParams()
	params.MaxTokens = 0

	_, err := o.Generate(context.Background(), Request{Prompt: "hi", Params: params})
	require.NoError(t, err)
}

func TestOpenAILLM_Generate_EmptyChoices(t *testing.T) {
	o := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"id": "x", "object": "chat.completion", "choices": []any{}})
	})

	_, err := o.Generate(context.Background(), Request{Prompt: "hi", Params: DefaultGenerationParams()})
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.ErrorIs(t, err, ErrLLMFailed)
}

func TestOpenAILLM_Generate_APIErrorNotRetried(t *testing.T) {
	calls := 0
	o := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error","code":"internal"}}`))
	})

	_, err := o.Generate(context.Background(), Request{Prompt: "hi", Params: DefaultGenerationParams()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLLMFailed)
	assert.Equal(t, 1, calls, "request must not be retried")

	var apiErr *openai.Error
	require.True(t, errors.As(err, &apiErr), "SDK error should stay reachable")
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestOpenAILLM_Generate_InvalidRequest(t *testing.T) {
	o := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := o.Generate(context.Background(), Request{Prompt: "", Params: DefaultGenerationParams()})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = o.Generate(context.Background(), Request{Prompt: "hi"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewOpenAILLM_MissingKey(t *testing.T) {
	_, err := NewOpenAILLM(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
