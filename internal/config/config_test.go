package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleINI = `
; promptsmith configuration
[chatgpt]
api_key = sk-test
model = gpt-4o
max_tokens = 512
top_p = 0.9
presence_penalty = 0.5
timeout = 45s

[unrelated]
something = else
`

func writeConfig(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, sampleINI)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "sk-test", cfg.ChatGPT.APIKey)
	assert.Equal(t, "gpt-4o", cfg.ChatGPT.Model)
	assert.Equal(t, 512, cfg.ChatGPT.MaxTokens)
	assert.InDelta(t, 0.9, cfg.ChatGPT.TopP, 1e-9)
	assert.InDelta(t, 0.5, cfg.ChatGPT.PresencePenalty, 1e-9)

	// Unset keys keep their defaults.
	assert.Equal(t, DefaultProvider, cfg.ChatGPT.Provider)
	assert.InDelta(t, DefaultFrequencyPenalty, cfg.ChatGPT.FrequencyPenalty, 1e-9)

	timeout, err := cfg.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, timeout)
}

func TestLoad_MinimalUsesDefaults(t *testing.T) {
	cfg, err := Parse("[chatgpt]\napi_key = sk-min\n")
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, cfg.ChatGPT.Model)
	assert.Equal(t, DefaultMaxTokens, cfg.ChatGPT.MaxTokens)
	assert.InDelta(t, DefaultTopP, cfg.ChatGPT.TopP, 1e-9)
	assert.Empty(t, cfg.ChatGPT.BaseURL)

	timeout, err := cfg.RequestTimeout()
	require.NoError(t, err)
	assert.Zero(t, timeout)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "no section", text: "[other]\napi_key = sk-test\n"},
		{name: "no key", text: "[chatgpt]\nmodel = gpt-4o\n"},
		{name: "empty key", text: "[chatgpt]\napi_key =\n"},
		{name: "empty file", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.text))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingAPIKey), "got %v", err)
			assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("PROMPTSMITH_TEST_KEY", "sk-from-env")

	cfg, err := Parse("[chatgpt]\napi_key = ${PROMPTSMITH_TEST_KEY}\n")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.ChatGPT.APIKey)
}

func TestLoad_UnsetEnvironmentIsMissingKey(t *testing.T) {
	t.Setenv("PROMPTSMITH_TEST_KEY", "")

	_, err := Parse("[chatgpt]\napi_key = ${PROMPTSMITH_TEST_KEY}\n")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_BareDollarKept(t *testing.T) {
	t.Setenv("cdef", "expanded")

	tests := []struct {
		value string
		want  string
	}{
		{value: "sk-ab$cdef", want: "sk-ab$cdef"},
		{value: "sk-$$x", want: "sk-$$x"},
		{value: "sk-${cdef}-$cdef", want: "sk-expanded-$cdef"},
		{value: "ends-with-$", want: "ends-with-$"},
		{value: "${not a var}", want: "${not a var}"},
		{value: "$PROMPTSMITH_TEST_KEY", want: "$PROMPTSMITH_TEST_KEY"},
	}

	for _, tt := range tests {
		cfg, err := Parse("[chatgpt]\napi_key = " + tt.value + "\n")
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, cfg.ChatGPT.APIKey, tt.value)
	}
}

func TestLoad_CaseInsensitiveNames(t *testing.T) {
	cfg, err := Parse("[ChatGPT]\nAPI_KEY = sk-upper\nModel = gpt-4o\n")
	require.NoError(t, err)

	assert.Equal(t, "sk-upper", cfg.ChatGPT.APIKey)
	assert.Equal(t, "gpt-4o", cfg.ChatGPT.Model)
}

func TestLoad_ModelDefaultsPerProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{provider: "openai", want: "gpt-3.5-turbo"},
		{provider: "anthropic", want: "claude-sonnet-4-5"},
		{provider: "google", want: "gemini-2.5-flash"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg, err := Parse("[chatgpt]\napi_key = k\nprovider = " + tt.provider + "\n")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.ChatGPT.Model)
		})
	}

	cfg, err := Parse("[chatgpt]\napi_key = k\nprovider = anthropic\nmodel = claude-opus-4-1\n")
	require.NoError(t, err)
	assert.Equal(t, "claude-opus-4-1", cfg.ChatGPT.Model, "explicit model wins")
}

func TestLoad_UnknownProviderNeedsModel(t *testing.T) {
	_, err := Parse("[chatgpt]\napi_key = k\nprovider = cohere\n")
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.NotErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "bad max_tokens", text: "[chatgpt]\napi_key = k\nmax_tokens = lots\n"},
		{name: "negative max_tokens", text: "[chatgpt]\napi_key = k\nmax_tokens = -1\n"},
		{name: "bad timeout", text: "[chatgpt]\napi_key = k\ntimeout = soon\n"},
		{name: "negative timeout", text: "[chatgpt]\napi_key = k\ntimeout = -5s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.NotErrorIs(t, err, ErrMissingAPIKey)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("PROMPTSMITH_CONFIG", "")
	assert.Equal(t, DefaultPath, Resolve(""))

	t.Setenv("PROMPTSMITH_CONFIG", "/etc/promptsmith.ini")
	assert.Equal(t, "/etc/promptsmith.ini", Resolve(""))
	assert.Equal(t, "local.ini", Resolve("local.ini"))
}
