// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jeranaias/agentchat/internal/model"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultBaseURL is the origin the client talks to when none is configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 16 * 1024 * 1024

// ClientConfig holds configuration options for the chat client.
type ClientConfig struct {
	// BaseURL is the service origin; endpoints live under BaseURL + "/api".
	BaseURL string

	// Timeout for each request. Zero means no timeout.
	Timeout time.Duration

	// Logger receives one line per request when set.
	Logger *log.Logger

	// HTTPClient overrides the underlying client (tests).
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{BaseURL: DefaultBaseURL}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the /api/upload and /api/chat endpoints.
// It does not retry; every failure is returned to the caller as *Error.
//
// The Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a client. A nil config uses DefaultConfig.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	base := strings.TrimRight(config.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := config.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: config.Timeout}
	}
	return &Client{
		baseURL:    base,
		httpClient: hc,
		logger:     config.Logger,
	}
}

// BaseURL returns the configured origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Upload sends the attachment as multipart field "file" and returns the
// server-side path it was stored under.
func (c *Client) Upload(ctx context.Context, att *model.Attachment) (*UploadResult, error) {
	const op = "upload"
	if att == nil {
		return nil, &Error{Kind: ErrKindInvalid, Op: op, Message: "no attachment"}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", att.Name)
	if err != nil {
		return nil, &Error{Kind: ErrKindInvalid, Op: op, Message: "failed to build form", Cause: err}
	}
	if _, err := part.Write(att.Content); err != nil {
		return nil, &Error{Kind: ErrKindInvalid, Op: op, Message: "failed to build form", Cause: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Kind: ErrKindInvalid, Op: op, Message: "failed to build form", Cause: err}
	}

	var result UploadResult
	if err := c.do(ctx, op, "/api/upload", mw.FormDataContentType(), &body, &result); err != nil {
		return nil, err
	}
	if result.FilePath == "" {
		return nil, &Error{Kind: ErrKindInvalid, Op: op, Message: "response has no filepath"}
	}
	return &result, nil
}

// Chat posts a chat request and returns the decoded reply.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	const op = "chat"
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &Error{Kind: ErrKindInvalid, Op: op, Message: "failed to marshal request", Cause: err}
	}

	var resp ChatResponse
	if err := c.do(ctx, op, "/api/chat", "application/json", bytes.NewReader(payload), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do posts body to path and decodes a 2xx JSON response into out.
func (c *Client) do(ctx context.Context, op, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: ErrKindTransport, Op: op, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logf("API_ERROR | op=%s path=%s error=%v", op, path, err)
		return &Error{Kind: ErrKindTransport, Op: op, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &Error{Kind: ErrKindTransport, Op: op, StatusCode: resp.StatusCode, Message: "failed to read response", Cause: err}
	}
	c.logf("API_REQUEST | op=%s path=%s status=%d bytes=%d duration=%.3fs",
		op, path, resp.StatusCode, len(data), time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp.StatusCode, resp.Status, data)
	}

	// Both endpoints answer with an object; null or a bare value is malformed.
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return &Error{Kind: ErrKindDecode, Op: op, StatusCode: resp.StatusCode, Message: "response is not a JSON object"}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: ErrKindDecode, Op: op, StatusCode: resp.StatusCode, Message: "invalid JSON response", Cause: err}
	}
	return nil
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
