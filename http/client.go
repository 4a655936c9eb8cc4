// Package http provides the outbound HTTP client used for YouTube
// interactions, with built-in retry logic, rate limiting, and error handling.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"ytscribe/internal/retry"
)

// Client wraps an HTTP client with rate limiting, a circuit breaker,
// and retry logic for transient failures.
type Client struct {
	base    *http.Client
	config  *Config
	limiter *rate.Limiter
	breaker *CircuitBreaker
}

// Config holds HTTP client configuration.
type Config struct {
	// Timeout for individual HTTP requests.
	Timeout time.Duration

	// UserAgent for HTTP requests.
	UserAgent string

	// RequestsPerSecond caps the outbound request rate. Zero disables limiting.
	RequestsPerSecond float64

	// Burst is the rate limiter burst size.
	Burst int

	// Retry configuration for transient failures.
	Retry retry.Config

	// CircuitBreaker configuration.
	CircuitBreaker CircuitBreakerConfig

	// MaxIdleConnsPerHost configures the connection pool.
	MaxIdleConnsPerHost int
}

// DefaultConfig returns sensible defaults for HTTP client configuration.
func DefaultConfig() *Config {
	cbConfig := DefaultCircuitBreakerConfig()
	cbConfig.IsTransientError = IsTransientHTTPError
	return &Config{
		Timeout:             30 * time.Second,
		UserAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		RequestsPerSecond:   4,
		Burst:               8,
		Retry:               retry.DefaultConfig(),
		CircuitBreaker:      cbConfig,
		MaxIdleConnsPerHost: 10,
	}
}

// Response holds the result of an HTTP request with the body fully read.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// New creates a new Client with the given configuration.
// A nil config uses DefaultConfig.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	transport := &http.Transport{
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		base: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config:  cfg,
		limiter: limiter,
		breaker: NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// Get performs a GET request and returns the response with the body read.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil, nil)
}

// Do performs an HTTP request with rate limiting, circuit breaking, and
// retries for transient failures. The returned response has its body fully
// read; non-2xx statuses are returned as-is for the caller to classify,
// except 429/403/503 which surface as RateLimitError.
func (c *Client) Do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*Response, error) {
	var resp *Response

	err := retry.Do(ctx, c.config.Retry, IsTransientHTTPError, func(ctx context.Context) error {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		if err := c.breaker.Allow(); err != nil {
			return err
		}

		r, err := c.do(ctx, method, url, body, headers)
		c.breaker.Record(err)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// do performs a single HTTP request attempt.
func (c *Client) do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	httpResp, err := c.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	switch httpResp.StatusCode {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return nil, &RateLimitError{
			StatusCode: httpResp.StatusCode,
			RetryAfter: parseRetryAfter(httpResp.Header.Get("Retry-After")),
		}
	case http.StatusForbidden:
		return nil, &RateLimitError{
			StatusCode:     httpResp.StatusCode,
			IsBotDetection: true,
		}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       data,
		Header:     httpResp.Header,
	}, nil
}

// parseRetryAfter parses a Retry-After header value in seconds.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

// IsTransientHTTPError reports whether an error is worth retrying.
// Rate limits and network failures are transient; context errors and
// an open circuit are not.
func IsTransientHTTPError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrCircuitOpen) {
		return false
	}

	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return true
	}
	if errors.Is(err, ErrRequestFailed) {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}

	return true
}

// CloseIdleConnections releases idle connections held by the client.
func (c *Client) CloseIdleConnections() {
	c.base.CloseIdleConnections()
}
