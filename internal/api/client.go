package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:3000"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
)

// Config configures the API client.
type Config struct {
	// BaseURL is the server base URL. A trailing slash is stripped.
	BaseURL string
	// APIKey enables Bearer authentication when non-empty.
	APIKey string
	// Timeout bounds each individual HTTP attempt. Zero means DefaultTimeout.
	Timeout time.Duration
	// Retry governs retry behavior. Nil means DefaultRetryPolicy.
	Retry *RetryPolicy
	// HTTPClient overrides the underlying HTTP client. Its Timeout is
	// left untouched when set.
	HTTPClient *http.Client
	// Logger receives retry warnings. Pass zerolog.Nop() to silence.
	Logger zerolog.Logger
}

// Client is the FormBridge HTTP API client. It owns a persistent HTTP
// session shared across all calls and is safe for concurrent use;
// distinct logical calls are independent and never serialized.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      *RetryPolicy
	logger     zerolog.Logger

	closeOnce sync.Once
}

// NewClient creates a new API client from the given config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	retry := cfg.Retry
	if retry == nil {
		retry = DefaultRetryPolicy()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		retry:      retry,
		logger:     cfg.Logger,
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authenticated reports whether an API key is configured.
func (c *Client) Authenticated() bool {
	return c.apiKey != ""
}

// Close releases the underlying HTTP session. It is safe to call more
// than once and from multiple goroutines.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.httpClient.CloseIdleConnections()
	})
}

// Do executes a single logical request against the API and returns the
// decoded response body. Transient failures (transport errors and 429 or
// transient 5xx statuses) are retried per the client's retry policy, with
// at most len(schedule)+1 attempts. Attempts are strictly sequential; the
// body of a retried response is discarded without decoding.
//
// Non-2xx terminal responses yield an *APIError, transport failures that
// outlive the retry schedule yield a *ConnectivityError, and anything
// else is wrapped in an *InternalError.
func (c *Client) Do(ctx context.Context, method, path string, body any) (map[string]any, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &InternalError{Message: "marshal request body", Err: err}
		}
		payload = data
	}

	backoffs := c.retry.Schedule()
	attempts := len(backoffs) + 1
	var lastErr error

	for attempt := 0; attempt <= len(backoffs); attempt++ {
		resp, err := c.attempt(ctx, method, path, payload)
		if err != nil {
			// Request construction failures are not transport errors.
			var ierr *InternalError
			if errors.As(err, &ierr) {
				return nil, ierr
			}
			// Caller cancellation is terminal, never retried.
			if ctx.Err() != nil {
				return nil, &ConnectivityError{Err: err, Attempts: attempt + 1}
			}
			lastErr = err
			if attempt < len(backoffs) {
				c.logger.Warn().
					Err(err).
					Int("attempt", attempt+1).
					Int("attempts", attempts).
					Dur("backoff", backoffs[attempt]).
					Msg("FormBridge connection error, retrying")
				if werr := c.retry.Wait(ctx, backoffs[attempt]); werr != nil {
					return nil, &ConnectivityError{Err: werr, Attempts: attempt + 1}
				}
				continue
			}
			return nil, &ConnectivityError{Err: err, Attempts: attempt + 1}
		}

		if c.retry.Retryable(resp.StatusCode) && attempt < len(backoffs) {
			// Retried responses are drained, not decoded.
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			c.logger.Warn().
				Int("status", resp.StatusCode).
				Int("attempt", attempt+1).
				Int("attempts", attempts).
				Dur("backoff", backoffs[attempt]).
				Msg("FormBridge returned retryable status, retrying")
			if werr := c.retry.Wait(ctx, backoffs[attempt]); werr != nil {
				return nil, &ConnectivityError{Err: werr, Attempts: attempt + 1}
			}
			continue
		}

		var decoded any
		err = json.NewDecoder(resp.Body).Decode(&decoded)
		resp.Body.Close()
		if err != nil {
			return nil, &InternalError{
				Message: fmt.Sprintf("decode response for %s %s (status %d)", method, path, resp.StatusCode),
				Err:     err,
			}
		}

		if resp.StatusCode >= 400 {
			return nil, newAPIError(resp.StatusCode, decoded)
		}

		obj, ok := decoded.(map[string]any)
		if !ok {
			return nil, &InternalError{
				Message: fmt.Sprintf("unexpected response shape for %s %s", method, path),
			}
		}
		return obj, nil
	}

	// Unreachable: every iteration above either returns or continues.
	// Kept as an invariant check against a broken retry schedule.
	if lastErr != nil {
		return nil, &ConnectivityError{Err: lastErr, Attempts: attempts}
	}
	return nil, &InternalError{Message: "retry loop exhausted without an outcome"}
}

// attempt issues one HTTP attempt. The request is rebuilt per attempt
// because request bodies are single-use; the underlying session and its
// connection pool are reused.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &InternalError{Message: "build request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return c.httpClient.Do(req)
}
