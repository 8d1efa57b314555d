// Package config loads the promptsmith configuration file.
//
// The file is INI-style with a single [chatgpt] section:
//
//	[chatgpt]
//	api_key = ${OPENAI_API_KEY}
//	model = gpt-3.5-turbo
//	provider = openai
//
// Key and section names are case-insensitive. Only braced ${VAR} references
// in values are expanded; a bare $ is kept as written.
//
// It is read once at startup, validated, and handed to the assistant.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/Yates-Labs/promptsmith/internal/llm"
	"gopkg.in/ini.v1"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrMissingAPIKey = fmt.Errorf("%w: api_key not found in [chatgpt] section", ErrConfiguration)
)

// Section holds every promptsmith setting.
const Section = "chatgpt"

// DefaultPath is used when neither --config nor PROMPTSMITH_CONFIG is set.
const DefaultPath = "config.ini"

// Generation defaults. The model default depends on the provider, see
// llm.DefaultModel.
const (
	DefaultProvider         = llm.ProviderOpenAI
	DefaultModel            = "gpt-3.5-turbo"
	DefaultMaxTokens        = 1000
	DefaultTopP             = 1.0
	DefaultFrequencyPenalty = 0.0
	DefaultPresencePenalty  = 0.0
)

// ChatGPT mirrors the [chatgpt] section.
type ChatGPT struct {
	APIKey   string `ini:"api_key"`
	Provider string `ini:"provider"`
	Model    string `ini:"model"`
	BaseURL  string `ini:"base_url"`

	MaxTokens        int     `ini:"max_tokens"`
	TopP             float64 `ini:"top_p"`
	FrequencyPenalty float64 `ini:"frequency_penalty"`
	PresencePenalty  float64 `ini:"presence_penalty"`

	// Timeout bounds a single request, e.g. "30s". Empty means no timeout.
	Timeout string `ini:"timeout"`
}

// Config is the parsed configuration file.
type Config struct {
	ChatGPT ChatGPT

	// Path is the file the configuration was loaded from.
	Path string
}

// Default returns a configuration with every optional value filled in and no
// credential.
func Default() Config {
	return Config{
		ChatGPT: ChatGPT{
			Provider:         DefaultProvider,
			Model:            DefaultModel,
			MaxTokens:        DefaultMaxTokens,
			TopP:             DefaultTopP,
			FrequencyPenalty: DefaultFrequencyPenalty,
			PresencePenalty:  DefaultPresencePenalty,
		},
	}
}

// Load reads and validates the configuration file at path.
// Environment references like ${OPENAI_API_KEY} are expanded before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrConfiguration, path, err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path

	return cfg, nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} with the value of VAR and leaves everything else,
// including a bare $, untouched.
func expandEnv(value string) string {
	return envRef.ReplaceAllStringFunc(value, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

// Parse decodes and validates configuration text.
func Parse(text string) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrConfiguration, err)
	}
	file.ValueMapper = expandEnv

	section, err := file.GetSection(Section)
	if err != nil {
		return nil, ErrMissingAPIKey
	}

	cfg := Default()
	cfg.ChatGPT.Model = ""
	if err := section.StrictMapTo(&cfg.ChatGPT); err != nil {
		return nil, fmt.Errorf("%w: [%s]: %w", ErrConfiguration, Section, err)
	}
	if cfg.ChatGPT.Model == "" {
		cfg.ChatGPT.Model = llm.DefaultModel(cfg.ChatGPT.Provider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration can be used to make a request.
func (c *Config) Validate() error {
	if c.ChatGPT.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.ChatGPT.Model == "" {
		return fmt.Errorf("%w: model must be set for provider %q", ErrConfiguration, c.ChatGPT.Provider)
	}
	if c.ChatGPT.MaxTokens < 0 {
		return fmt.Errorf("%w: max_tokens must not be negative", ErrConfiguration)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	return nil
}

// RequestTimeout parses the timeout value. Zero means no timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.ChatGPT.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.ChatGPT.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid timeout %q: %w", ErrConfiguration, c.ChatGPT.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: timeout must not be negative", ErrConfiguration)
	}
	return d, nil
}

// Resolve returns the configuration path to use: the explicit flag value,
// then PROMPTSMITH_CONFIG, then DefaultPath.
func Resolve(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("PROMPTSMITH_CONFIG"); env != "" {
		return env
	}
	return DefaultPath
}
