// Package apiclient is the HTTP client for the remote catalog API.
//
// Every call carries the bearer credential found in the request context and
// every failure comes back as an *apperr.Error, with a rejected credential
// reported as apperr.Unauthorized so callers can force a logout.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/georgemunganga/autek-admin/internal/apperr"
)

const maxResponseBytes = 10 << 20

// Client talks to one remote API host.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.logger = l } }

// WithTimeout bounds every call, including reading the response body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// List reads a whole collection. A body that is not a JSON array is treated
// as an empty collection.
func (c *Client) List(ctx context.Context, endpoint string, query url.Values) ([]Record, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, http.MethodGet, endpoint, query, nil, &raw); err != nil {
		return nil, err
	}
	records := []Record{}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.TrimSpace(raw)[0] != '[' {
		c.logger.WarnContext(ctx, "list response is not an array", slog.String("endpoint", endpoint))
		return records, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return nil, apperr.Wrap(fmt.Errorf("decode %s: %w", endpoint, err))
	}
	return records, nil
}

// Create posts a new record to the collection.
func (c *Client) Create(ctx context.Context, endpoint string, body Body) error {
	return c.Do(ctx, http.MethodPost, endpoint, nil, body, nil)
}

// Update patches the record identified by id.
func (c *Client) Update(ctx context.Context, endpoint, id string, body Body) error {
	return c.Do(ctx, http.MethodPatch, itemPath(endpoint, id), nil, body, nil)
}

func (c *Client) Delete(ctx context.Context, endpoint, id string) error {
	return c.Do(ctx, http.MethodDelete, itemPath(endpoint, id), nil, nil, nil)
}

// Do performs one call and decodes a successful response into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, endpoint string, query url.Values, body Body, out any) error {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		ct, r, err := body.Encode()
		if err != nil {
			return apperr.Wrap(err)
		}
		reader, contentType = r, ct
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperr.Wrap(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok, ok := TokenFrom(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if rid := middleware.GetReqID(ctx); rid != "" {
		req.Header.Set(middleware.RequestIDHeader, rid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "api call failed",
			slog.String("method", method), slog.String("url", target), slog.Any("error", err))
		return apperr.NetworkErr(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperr.NetworkErr(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode >= 300 {
		msg := errorMessage(data)
		c.logger.WarnContext(ctx, "api error",
			slog.String("method", method), slog.String("url", target),
			slog.Int("status", resp.StatusCode), slog.String("message", msg))
		if resp.StatusCode == http.StatusUnauthorized {
			return apperr.UnauthorizedErr(resp.StatusCode, msg)
		}
		return apperr.RemoteErr(resp.StatusCode, msg)
	}

	c.logger.DebugContext(ctx, "api response",
		slog.String("method", method), slog.String("url", target), slog.Int("status", resp.StatusCode))

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return apperr.Wrap(fmt.Errorf("decode %s %s: %w", method, endpoint, err))
	}
	return nil
}

func itemPath(endpoint, id string) string {
	return strings.TrimRight(endpoint, "/") + "/" + url.PathEscape(id)
}

// errorMessage extracts the "message" field of an error body. Validation
// errors sometimes arrive as a list of messages.
func errorMessage(data []byte) string {
	var body struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	switch m := body.Message.(type) {
	case string:
		return m
	case []any:
		parts := make([]string, 0, len(m))
		for _, p := range m {
			if s, ok := p.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// Registry maps API names to clients. The empty name is the primary API.
type Registry map[string]*Client

// For returns the client registered under name, falling back to the primary API.
func (r Registry) For(name string) *Client {
	if c, ok := r[name]; ok {
		return c
	}
	return r[""]
}
