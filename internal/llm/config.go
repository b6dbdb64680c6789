// Package llm provides chat-completion clients and response parsing for the
// bullet rewriter, relevance suggestion and duplicate detection features.
// Two providers sit behind one interface: a local OpenAI-compatible server
// (llama.cpp, LM Studio) and Gemini.
package llm

import "time"

// Provider selects the chat-completion backend.
type Provider string

// Supported providers.
const (
	// ProviderLocal is an OpenAI-compatible chat-completions server.
	ProviderLocal Provider = "local"
	// ProviderGemini is the Google Gemini API.
	ProviderGemini Provider = "gemini"
)

// Default timeouts and retry limit for completion calls.
const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultReadTimeout    = 60 * time.Second
	DefaultMaxRetries     = 3
)

// DefaultModel is used when neither the caller nor the environment names one.
const DefaultModel = "qwen2.5-32b-instruct"

// Config holds provider selection and connection settings.
type Config struct {
	Provider       Provider
	BaseURL        string // local provider only
	APIKey         string // gemini provider only
	DefaultModel   string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	MaxRetries     uint64
}

// DefaultConfig returns a local-provider configuration with standard
// timeouts. BaseURL must still be supplied by the caller.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderLocal,
		DefaultModel:   DefaultModel,
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultReadTimeout,
		MaxRetries:     DefaultMaxRetries,
	}
}

// Model returns the requested model name, falling back to the configured
// default when the caller does not specify one.
func (c *Config) Model(requested string) string {
	if requested != "" {
		return requested
	}
	if c.DefaultModel != "" {
		return c.DefaultModel
	}
	return DefaultModel
}
