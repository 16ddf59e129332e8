// Package gateway is the typed client of the records REST API. It never
// retries and never caches; every failure is returned as an *Error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const maxErrorBody = 512

// Client talks to the records API rooted at baseURL (e.g. http://host/api).
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	limiter    *rate.Limiter
	metrics    *metrics
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithToken sends token as a bearer credential on every call.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithRateLimit throttles outgoing calls; rps <= 0 disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics registers request counters and latency histograms on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) { c.metrics = newMetrics(reg) }
}

// New creates a records API client
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends in as JSON (when non-nil) and decodes a 2xx body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, collection, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &Error{Method: method, Endpoint: path, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Method: method, Endpoint: path, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Method: method, Endpoint: path, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(collection, method, 0, time.Since(start))
		return &Error{Method: method, Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.metrics.observe(collection, method, resp.StatusCode, time.Since(start))
	if err != nil {
		return &Error{Method: method, Endpoint: path, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Method: method, Endpoint: path, Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &Error{Method: method, Endpoint: path, Status: resp.StatusCode, Err: fmt.Errorf("empty response body")}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Method: method, Endpoint: path, Status: resp.StatusCode, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	return nil
}

func errorMessage(data []byte) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	return msg
}

func list[W, D any](ctx context.Context, c *Client, collection, path string, conv func(W) (D, error)) ([]D, error) {
	var ws []W
	if err := c.do(ctx, http.MethodGet, collection, path, nil, &ws); err != nil {
		return nil, err
	}
	out := make([]D, 0, len(ws))
	for _, w := range ws {
		d, err := conv(w)
		if err != nil {
			return nil, &Error{Method: http.MethodGet, Endpoint: path, Status: http.StatusOK, Err: err}
		}
		out = append(out, d)
	}
	return out, nil
}

func one[W, D any](ctx context.Context, c *Client, method, collection, path string, in any, conv func(W) (D, error)) (D, error) {
	var w W
	var zero D
	if err := c.do(ctx, method, collection, path, in, &w); err != nil {
		return zero, err
	}
	d, err := conv(w)
	if err != nil {
		return zero, &Error{Method: method, Endpoint: path, Status: http.StatusOK, Err: err}
	}
	return d, nil
}
