package formbridge

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/formbridge/client-go/internal/api"
)

// Environment variables recognized at client construction.
const (
	// EnvBaseURL overrides the default base URL.
	EnvBaseURL = "FORMBRIDGE_URL"
	// EnvAPIKey supplies the API key for Bearer auth.
	EnvAPIKey = "FORMBRIDGE_API_KEY"
	// EnvTimeout supplies the per-request timeout in seconds.
	EnvTimeout = "FORMBRIDGE_TIMEOUT"
)

const (
	defaultBaseURL    = api.DefaultBaseURL
	defaultTimeout    = api.DefaultTimeout
	defaultMaxRetries = api.DefaultMaxRetries
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL           string
	apiKey            string
	timeout           time.Duration
	maxRetries        int
	backoffs          []time.Duration
	retryableStatuses []int
	httpClient        *http.Client
	logger            *zerolog.Logger
}

// callConfig holds per-call configuration.
type callConfig struct {
	fields         map[string]any
	actor          *Actor
	idempotencyKey string
}

// Option configures the client.
type Option func(*clientConfig)

// CallOption configures a single operation. Options that do not apply to
// an operation are ignored; each operation documents which ones it honors.
type CallOption func(*callConfig)

// WithBaseURL sets the API base URL. A trailing slash is stripped.
// Defaults to the FORMBRIDGE_URL environment variable, then to
// http://localhost:3000.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithAPIKey sets the API key used for Bearer authentication. Defaults to
// the FORMBRIDGE_API_KEY environment variable; empty disables the
// Authorization header entirely.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithTimeout sets the timeout applied to each individual HTTP attempt.
// Defaults to the FORMBRIDGE_TIMEOUT environment variable (seconds), then
// to 10 seconds. There is no overall deadline across a full retry
// sequence; bound the context to impose one.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithMaxRetries sets the maximum number of retries per logical call
// (default 3). The effective retry count is also bounded by the length of
// the backoff schedule.
func WithMaxRetries(count int) Option {
	return func(c *clientConfig) {
		c.maxRetries = count
	}
}

// WithBackoffs replaces the backoff schedule used between retry attempts.
// Default: 500ms, 1s, 2s.
func WithBackoffs(backoffs []time.Duration) Option {
	return func(c *clientConfig) {
		c.backoffs = backoffs
	}
}

// WithRetryableStatuses replaces the set of HTTP status codes that trigger
// a retry. Default: 429, 500, 502, 503, 504.
func WithRetryableStatuses(statusCodes ...int) Option {
	return func(c *clientConfig) {
		c.retryableStatuses = statusCodes
	}
}

// WithHTTPClient sets a custom HTTP client. Its Timeout is respected as-is.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithLogger sets the logger that receives retry warnings. Defaults to a
// warn-level logger on stderr; pass zerolog.Nop() to silence the client.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = &logger
	}
}

// WithFields sets initial field values. Honored by CreateSubmission.
func WithFields(fields map[string]any) CallOption {
	return func(c *callConfig) {
		c.fields = fields
	}
}

// WithActor attributes the action to an actor. Honored by
// CreateSubmission, SetFields and Submit.
func WithActor(actor Actor) CallOption {
	return func(c *callConfig) {
		c.actor = &actor
	}
}

// WithIdempotencyKey sets an idempotency key for server-side
// deduplication. Honored by CreateSubmission.
func WithIdempotencyKey(key string) CallOption {
	return func(c *callConfig) {
		c.idempotencyKey = key
	}
}

// WithGeneratedIdempotencyKey sets a freshly generated UUID as the
// idempotency key. Honored by CreateSubmission.
func WithGeneratedIdempotencyKey() CallOption {
	return func(c *callConfig) {
		c.idempotencyKey = uuid.NewString()
	}
}

// defaultClientConfig builds the construction-time defaults, consulting
// the FORMBRIDGE_* environment variables.
func defaultClientConfig() *clientConfig {
	cfg := &clientConfig{
		baseURL:    defaultBaseURL,
		apiKey:     os.Getenv(EnvAPIKey),
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
	}
	if url := os.Getenv(EnvBaseURL); url != "" {
		cfg.baseURL = url
	}
	if raw := os.Getenv(EnvTimeout); raw != "" {
		if secs, err := strconv.ParseFloat(raw, 64); err == nil && secs > 0 {
			cfg.timeout = time.Duration(secs * float64(time.Second))
		}
	}
	return cfg
}

// normalize strips the trailing slash from the base URL.
func (c *clientConfig) normalize() {
	c.baseURL = strings.TrimRight(c.baseURL, "/")
}

// retryPolicy builds the engine retry policy from the configured overrides.
func (c *clientConfig) retryPolicy() *api.RetryPolicy {
	policy := api.DefaultRetryPolicy()
	policy.MaxRetries = c.maxRetries
	if c.backoffs != nil {
		policy.Backoffs = c.backoffs
	}
	if c.retryableStatuses != nil {
		statuses := make(map[int]struct{}, len(c.retryableStatuses))
		for _, code := range c.retryableStatuses {
			statuses[code] = struct{}{}
		}
		policy.RetryableOn = func(statusCode int) bool {
			_, ok := statuses[statusCode]
			return ok
		}
	}
	return policy
}
