package llm

import (
	"context"
	"fmt"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes one chat-completion call. Model may be empty,
// in which case the configured default is used.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// ModelInfo describes one model available on the completion server.
type ModelInfo struct {
	ID     string `json:"id"`
	SizeGB string `json:"size_gb"`
}

// Client is an abstraction over chat-completion providers.
type Client interface {
	// Complete sends a chat completion request and returns the raw assistant
	// message content, whitespace included.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// ListModels returns the models the provider currently serves.
	ListModels(ctx context.Context) ([]ModelInfo, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a client for the configured provider.
func NewClient(ctx context.Context, cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	case ProviderLocal, "":
		return NewLocalClient(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// Error represents a failure talking to a completion provider.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Retryable  bool
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("llm %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
