// Package client is a reusable toolkit for building admin tooling against the
// device admin REST API. It provides a typed resource client with envelope
// normalization, canonical query state, a list controller with debounced
// search and stale-response protection, page-scoped row selection, and a
// schema-driven edit session for create/update forms.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SessionStore supplies the bearer token for outgoing requests and is
// notified when the server rejects the session. Token lifecycle (storage,
// refresh, login redirects) is the store's responsibility, not the client's.
type SessionStore interface {
	// Token returns the current bearer token, or "" for anonymous requests.
	Token() string
	// OnUnauthorized is called whenever a request fails with 401 or 403.
	OnUnauthorized()
}

// APIError is the normalized error for any non-2xx response.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Unauthorized reports whether the error signals an invalid session.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// Client performs HTTP requests against one API base URL.
type Client struct {
	baseURL string
	http    *http.Client
	session SessionStore
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithSession attaches a SessionStore supplying bearer tokens.
func WithSession(s SessionStore) Option {
	return func(c *Client) {
		c.session = s
	}
}

// New creates a Client for the given base URL, e.g. "http://127.0.0.1:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one request and returns the response for any 2xx status.
// Non-2xx responses are drained, closed, and returned as *APIError with the
// message extracted from the body when present. 401/403 additionally fire the
// session store's OnUnauthorized hook. The caller owns the returned body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.Body),
		}
		resp.Body.Close()
		if apiErr.Unauthorized() && c.session != nil {
			c.session.OnUnauthorized()
		}
		return nil, apiErr
	}

	return resp, nil
}

// errorMessage extracts a human-readable message from an error body,
// falling back to a generic message when the body carries none.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(raw) == 0 {
		return "request failed"
	}

	var probe struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil {
		if probe.Message != "" {
			return probe.Message
		}
		if probe.Error != "" {
			return probe.Error
		}
	}
	return "request failed"
}

// decodeJSON decodes and closes the response body.
func decodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
