package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mrcog-admin/internal/domain"
	"mrcog-admin/internal/logger"

	"go.uber.org/zap"
)

// ErrUnauthorized is returned when the backend rejects the bearer token.
// The configured OnUnauthorized hook has already run by the time a caller
// sees it, so individual views need no special-case handling.
var ErrUnauthorized = errors.New("authorization rejected")

// TokenSource supplies the persisted bearer token, when one exists.
type TokenSource interface {
	Token() (string, bool)
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func() (string, bool)

func (f TokenSourceFunc) Token() (string, bool) { return f() }

// Client is the shared transport for every resource family. It attaches the
// bearer token, normalizes the backend's error envelope into DomainErrors
// and fires the unauthorized hook on 401 responses. There are no automatic
// retries; a failed action must be re-triggered by the operator.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource installs the persisted-token supplier.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithOnUnauthorized installs the hook run when any call is rejected with a
// 401; the session layer uses it to purge the persisted token.
func WithOnUnauthorized(hook func()) Option {
	return func(c *Client) { c.onUnauthorized = hook }
}

// WithHTTPClient replaces the underlying HTTP client; used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the given API base URL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// normalizer is implemented by responses that must be canonicalized (nil
// collections replaced with empty ones) before business logic runs.
type normalizer interface {
	Normalize()
}

// do executes one JSON round-trip. out may be nil for calls whose response
// body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.NewInternalError("failed to encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return domain.NewInternalError("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Get().Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return domain.NewNetworkError(err)
	}
	defer resp.Body.Close()

	logger.Get().Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewNetworkError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &domain.DomainError{
			Code:    domain.ErrUnauthorized,
			Message: serverMessage(raw, "session is no longer valid"),
			Err:     ErrUnauthorized,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return domain.NewInternalError("failed to decode response body", err)
		}
	}
	if n, ok := out.(normalizer); ok {
		n.Normalize()
	}
	return nil
}

// serverMessage extracts the {error} envelope message, falling back to a
// generic text when the payload is absent or malformed.
func serverMessage(raw []byte, fallback string) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return fallback
}

func statusError(status int, raw []byte) error {
	switch {
	case status == http.StatusNotFound:
		return domain.NewNotFoundError(serverMessage(raw, "resource not found"))
	case status >= 400 && status < 500:
		return domain.NewInvalidInputError(serverMessage(raw, fmt.Sprintf("request rejected (status %d)", status)))
	default:
		return domain.NewServerError(serverMessage(raw, fmt.Sprintf("server error (status %d)", status)))
	}
}
