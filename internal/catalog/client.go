package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/folio/internal/version"
)

// BookFetcher defines the interface for loading the book collection.
// This interface is implemented by *Client and can be used for testing.
type BookFetcher interface {
	FetchBooks(ctx context.Context) ([]Book, error)
}

// Ensure Client implements BookFetcher at compile time.
var _ BookFetcher = (*Client)(nil)

// Client talks to the book catalog HTTP endpoint.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
	metrics   *Metrics
}

const (
	// DefaultEndpoint is the catalog folio reads when nothing else is configured.
	DefaultEndpoint = "https://dev.iqrakitab.net/api/books"

	maxBodyBytes = 32 << 20
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds the whole request. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.http.Timeout = d
		}
	}
}

// WithTransport swaps the HTTP transport, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// WithMetrics records request activity on m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a Client for the given endpoint URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	c := &Client{
		endpoint:  u,
		http:      &http.Client{},
		userAgent: version.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the resolved endpoint URL.
func (c *Client) Endpoint() string {
	if c == nil || c.endpoint == nil {
		return ""
	}
	return c.endpoint.String()
}

// FetchBooks issues a single GET against the endpoint and returns the books in
// response order. Every failure is returned as a *FetchError.
func (c *Client) FetchBooks(ctx context.Context) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	start := time.Now()
	c.metrics.IncRequest()

	books, err := c.fetch(ctx)
	c.metrics.ObserveDuration(time.Since(start))
	if err != nil {
		c.metrics.IncError(KindOf(err))
		return nil, err
	}
	c.metrics.SetBooks(len(books))
	return books, nil
}

func (c *Client) fetch(ctx context.Context) ([]Book, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.String(), nil)
	if err != nil {
		return nil, &FetchError{Kind: KindOther, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: classifyTransport(err), Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, &FetchError{
			Kind:   KindStatus,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("api %s returned status %d", c.endpoint.Path, resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{Kind: classifyTransport(err), Err: fmt.Errorf("read response: %w", err)}
	}
	books, err := ParseBooks(body)
	if err != nil {
		return nil, &FetchError{Kind: KindDecode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return books, nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", endpoint)
	}
	u.Fragment = ""
	return u, nil
}
