// Package embedding provides an HTTP client for the external embedding
// inference service. The service is a black box: Encode maps text to a
// fixed-length vector, deterministic for a given model version.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Default timeouts for the embedding service. Inference is usually fast, but
// a cold model load can stall the first request.
const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultReadTimeout    = 60 * time.Second
	DefaultMaxRetries     = 3
)

// Error represents a failure talking to the embedding service.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Retryable  bool
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Config holds embedding client configuration.
type Config struct {
	BaseURL        string
	Model          string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	MaxRetries     uint64
}

// Client calls an OpenAI-compatible /v1/embeddings endpoint.
type Client struct {
	baseURL    string
	model      string
	maxRetries uint64
	httpClient *http.Client
}

// New creates an embedding client with explicit connect and read timeouts so
// a slow provider can never block a serving goroutine indefinitely.
func New(cfg Config) *Client {
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{
			Timeout: cfg.ReadTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
			},
		},
	}
}

type embedRequest struct {
	Model string `json:"model,omitempty"`
	Input string `json:"input"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Encode maps text to a fixed-length dense vector. Transient failures
// (connection errors, timeouts, 5xx) are retried with bounded exponential
// backoff; a well-formed 4xx or an unparsable body is surfaced immediately
// since retrying cannot fix either.
func (c *Client) Encode(ctx context.Context, text string) ([]float32, error) {
	var vector []float32

	operation := func() error {
		v, err := c.encodeOnce(ctx, text)
		if err != nil {
			var embErr *Error
			if errors.As(err, &embErr) && !embErr.Retryable {
				return backoff.Permanent(err)
			}
			return err
		}
		vector = v
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return vector, nil
}

func (c *Client) encodeOnce(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Model: c.model, Input: text})
	if err != nil {
		return nil, &Error{Op: "encode", Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Op: "encode", Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: "encode", Message: "request failed", Retryable: true, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &Error{
			Op:         "encode",
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, msg),
			Retryable:  resp.StatusCode >= 500,
		}
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &Error{Op: "encode", Message: "malformed response body", Cause: err}
	}
	if len(parsed.Data) == 0 || len(parsed.Data[0].Embedding) == 0 {
		return nil, &Error{Op: "encode", Message: "response contained no embedding"}
	}

	return parsed.Data[0].Embedding, nil
}
