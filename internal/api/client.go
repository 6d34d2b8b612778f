// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
)

// Error is a failure response from the backend. Message carries the
// server-supplied error text when the body had one, or a generic fallback.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// TokenSource supplies the current bearer token, or "" when signed out
type TokenSource func() string

// Client is the typed client for the remote storefront backend
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource TokenSource
	logger      *logrus.Logger
}

// NewClient creates a new API client. tokenSource may be nil for
// unauthenticated use.
func NewClient(cfg *config.Config, tokenSource TokenSource, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		tokenSource: tokenSource,
		logger:      logger,
	}
}

// do sends a JSON request and decodes a JSON response into out (which may be
// nil). It returns the HTTP status; non-2xx statuses come back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debug("API request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &Error{
			Status:  resp.StatusCode,
			Message: errorMessage(respBody),
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// errorMessage extracts the server's error text from an error body,
// falling back to a generic message.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return "request failed"
}
