package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
)

// LocalClient talks to an OpenAI-compatible chat-completions server such as
// llama.cpp or LM Studio.
type LocalClient struct {
	cfg        *Config
	httpClient *http.Client
}

// NewLocalClient creates a client for a local OpenAI-compatible server.
func NewLocalClient(cfg *Config) (*LocalClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("LLM base URL is required for the local provider")
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout == 0 {
		connectTimeout = DefaultConnectTimeout
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = DefaultReadTimeout
	}

	return &LocalClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: readTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
	}, nil
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Complete sends the chat request. Server-side failures (5xx) and transport
// errors are retried with bounded exponential backoff; a 4xx means the
// request itself is wrong and is surfaced immediately, as is a body that
// cannot be parsed.
func (c *LocalClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	payload := chatRequest{
		Model:       c.cfg.Model(req.Model),
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      false,
	}

	var content string
	operation := func() error {
		out, err := c.completeOnce(ctx, payload)
		if err != nil {
			var llmErr *Error
			if errors.As(err, &llmErr) && !llmErr.Retryable {
				return backoff.Permanent(err)
			}
			return err
		}
		content = out
		return nil
	}

	if err := backoff.Retry(operation, c.retryPolicy(ctx)); err != nil {
		return "", err
	}
	return content, nil
}

func (c *LocalClient) completeOnce(ctx context.Context, payload chatRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &Error{Op: "complete", Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &Error{Op: "complete", Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Op: "complete", Message: "request failed", Retryable: true, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &Error{
			Op:         "complete",
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, msg),
			Retryable:  resp.StatusCode >= 500,
		}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &Error{Op: "complete", Message: "malformed response body", Cause: err}
	}
	if len(parsed.Choices) == 0 {
		return "", &Error{Op: "complete", Message: "response contained no choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}

// ListModels fetches the model list from the server. Callers normally go
// through Catalog, which adds the on-disk TTL cache.
func (c *LocalClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	operation := func() error {
		out, err := c.listModelsOnce(ctx)
		if err != nil {
			var llmErr *Error
			if errors.As(err, &llmErr) && !llmErr.Retryable {
				return backoff.Permanent(err)
			}
			return err
		}
		models = out
		return nil
	}

	if err := backoff.Retry(operation, c.retryPolicy(ctx)); err != nil {
		return nil, err
	}
	return models, nil
}

func (c *LocalClient) listModelsOnce(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/v1/models", nil)
	if err != nil {
		return nil, &Error{Op: "models", Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: "models", Message: "request failed", Retryable: true, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Op:         "models",
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %d", resp.StatusCode),
			Retryable:  resp.StatusCode >= 500,
		}
	}

	var parsed modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &Error{Op: "models", Message: "malformed response body", Cause: err}
	}

	models := make([]ModelInfo, 0, len(parsed.Data))
	for _, m := range parsed.Data {
		models = append(models, ModelInfo{ID: m.ID, SizeGB: sizeHint(m.ID)})
	}
	return models, nil
}

// Close is a no-op for the local client; connections are pooled by the
// transport and reclaimed by the runtime.
func (c *LocalClient) Close() error {
	return nil
}

func (c *LocalClient) retryPolicy(ctx context.Context) backoff.BackOffContext {
	maxRetries := c.cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	return backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
}

// sizeHint derives a rough parameter-count label from the model identifier.
func sizeHint(modelID string) string {
	id := strings.ToLower(modelID)
	switch {
	case strings.Contains(id, "7b"):
		return "7"
	case strings.Contains(id, "13b"):
		return "13"
	case strings.Contains(id, "32b"):
		return "32"
	default:
		return "N/A"
	}
}
