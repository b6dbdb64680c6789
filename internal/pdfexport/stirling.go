// Package pdfexport converts rendered resume HTML to PDF through a
// Stirling-PDF instance.
package pdfexport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// DefaultTimeout bounds the whole conversion round trip. HTML-to-PDF runs a
// headless browser server-side, so this is generous.
const DefaultTimeout = 60 * time.Second

// Error represents a failed conversion.
type Error struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf export: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf export: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Converter calls the Stirling-PDF convert endpoint.
type Converter struct {
	baseURL    string
	httpClient *http.Client
}

// NewConverter creates a converter for the given Stirling-PDF base URL.
func NewConverter(baseURL string, timeout time.Duration) *Converter {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Converter{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Convert uploads the HTML as a multipart file and returns the PDF bytes.
// Conversion is not retried: the payload is large and the converter queues
// work internally, so a failure is surfaced to the caller instead.
func (c *Converter) Convert(ctx context.Context, html []byte) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("fileInput", "resume.html")
	if err != nil {
		return nil, &Error{Message: "failed to build multipart form", Cause: err}
	}
	if _, err := part.Write(html); err != nil {
		return nil, &Error{Message: "failed to write form file", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &Error{Message: "failed to finalize multipart form", Cause: err}
	}

	url := c.baseURL + "/api/v1/convert/html/pdf"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, &Error{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: "conversion request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("converter returned status %d: %s", resp.StatusCode, msg),
		}
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: "failed to read PDF response", Cause: err}
	}
	if len(pdf) == 0 {
		return nil, &Error{Message: "converter returned an empty document"}
	}
	return pdf, nil
}
