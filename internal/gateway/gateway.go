// Package gateway is the only place that performs HTTP calls to the task API.
// It attaches the session's bearer credential, normalizes every failure into
// an *APIError and signs the user out when the server rejects the credential.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"taskboard/internal/logging"
)

const (
	// RequestIDHeader carries a per-call correlation id.
	RequestIDHeader = "X-Request-Id"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 10 << 20
)

// Sessions is the part of the session store the Gateway needs.
type Sessions interface {
	TokenSource() oauth2.TokenSource
	Clear() error
}

// Client performs authenticated requests against a base URL.
// Calls are independent and never retried.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions Sessions
	logger   *slog.Logger
	timeout  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout bounds every call. Zero, the default, means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a Client for baseURL reading credentials from sessions.
func New(baseURL string, sessions Sessions, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     http.DefaultClient,
		sessions: sessions,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type callOptions struct {
	anonymous bool
}

// CallOption adjusts a single call.
type CallOption func(*callOptions)

// Anonymous sends the call without a credential even when one is stored.
// An authorization failure on an anonymous call does not clear the session.
func Anonymous() CallOption {
	return func(o *callOptions) { o.anonymous = true }
}

// Do sends method path with body JSON-encoded (when non-nil) and decodes a
// successful response into out (when non-nil and the body is non-empty).
// Every failure is an *APIError, except cancellation of ctx which is
// returned unchanged.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...CallOption) error {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	credentialed := false
	if !co.anonymous && c.sessions != nil {
		if tok, err := c.sessions.TokenSource().Token(); err == nil && tok.AccessToken != "" {
			tok.SetAuthHeader(req)
			credentialed = true
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		c.logger.Debug("request failed",
			logging.RequestID(reqID), logging.Method(method), logging.Path(path),
			logging.DurationMS(elapsed), logging.Error(err))
		return transportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.logger.Debug("request",
		logging.RequestID(reqID), logging.Method(method), logging.Path(path),
		logging.Status(resp.StatusCode), logging.DurationMS(elapsed))
	if err != nil {
		return transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := NewAPIError(resp.StatusCode, errorMessage(data))
		if isAuthFailure(resp.StatusCode) {
			if !credentialed {
				// No credential was presented; this is a plain rejection such as bad login details.
				apiErr.kind = KindAPI
			} else {
				if apiErr.Message == MsgServerError {
					apiErr.Message = MsgUnauthorized
				}
				if err := c.sessions.Clear(); err != nil {
					c.logger.Warn("failed to clear session", logging.Error(err))
				}
			}
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return malformed(resp.StatusCode, err)
	}
	return nil
}

// errorMessage extracts a human-readable message from an error body.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return MsgServerError
	}
	if m := strings.TrimSpace(body.Message); m != "" {
		return m
	}
	if m := strings.TrimSpace(body.Error); m != "" {
		return m
	}
	return MsgServerError
}

func transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return unreachable(MsgTimedOut, err)
	}
	return unreachable(MsgUnreachable, err)
}
