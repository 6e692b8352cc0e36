package formbridge

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/formbridge/client-go/internal/api"
)

// Client is the FormBridge API client. It is safe for concurrent use;
// distinct calls share one persistent HTTP session but are independent
// and never serialized against each other.
type Client struct {
	apiClient *api.Client

	baseURL    string
	timeout    time.Duration
	maxRetries int

	mu     sync.RWMutex
	closed bool
}

// New creates a new FormBridge client. Configuration not supplied via
// options falls back to the FORMBRIDGE_URL, FORMBRIDGE_API_KEY and
// FORMBRIDGE_TIMEOUT environment variables, then to built-in defaults.
func New(opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.normalize()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	if cfg.logger != nil {
		logger = *cfg.logger
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     cfg.apiKey,
		Timeout:    cfg.timeout,
		Retry:      cfg.retryPolicy(),
		HTTPClient: cfg.httpClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient:  apiClient,
		baseURL:    cfg.baseURL,
		timeout:    cfg.timeout,
		maxRetries: cfg.maxRetries,
	}, nil
}

// String describes the client configuration. The API key is never included.
func (c *Client) String() string {
	auth := "anonymous"
	if c.apiClient.Authenticated() {
		auth = "bearer"
	}
	return fmt.Sprintf("formbridge.Client(url=%s, auth=%s, timeout=%s, max_retries=%d)",
		c.baseURL, auth, c.timeout, c.maxRetries)
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Close releases the underlying HTTP session. It is idempotent and safe
// to call concurrently with in-flight operations, which run to completion.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.apiClient.Close()
	return nil
}

// CreateSubmission creates a new submission against an intake definition.
// Honors WithFields, WithActor, WithIdempotencyKey and
// WithGeneratedIdempotencyKey.
//
// Some server versions omit intakeId from the create response; the
// returned Submission always carries the intake ID the caller supplied.
func (c *Client) CreateSubmission(ctx context.Context, intakeID string, opts ...CallOption) (*Submission, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &callConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	data, err := c.apiClient.CreateSubmission(ctx, intakeID, api.CreateSubmissionRequest{
		Fields:         cfg.fields,
		Actor:          actorPayload(cfg.actor),
		IdempotencyKey: cfg.idempotencyKey,
	})
	if err != nil {
		return nil, wrapError(err)
	}

	sub := submissionFromResponse(data)
	if sub.IntakeID == "" {
		sub.IntakeID = intakeID
	}
	return sub, nil
}

// SetFields updates field values on a submission. The resume token must be
// the most recent one; the returned result carries the rotated token.
// Honors WithActor.
func (c *Client) SetFields(ctx context.Context, intakeID, submissionID, resumeToken string, fields map[string]any, opts ...CallOption) (*FieldsResult, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &callConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	data, err := c.apiClient.SetFields(ctx, intakeID, submissionID, api.SetFieldsRequest{
		ResumeToken: resumeToken,
		Fields:      fields,
		Actor:       actorPayload(cfg.actor),
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return fieldsResultFromResponse(data), nil
}

// Submit finalizes a submission for processing. Honors WithActor.
func (c *Client) Submit(ctx context.Context, intakeID, submissionID, resumeToken string, opts ...CallOption) (*Submission, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &callConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	data, err := c.apiClient.Submit(ctx, intakeID, submissionID, api.SubmitRequest{
		ResumeToken: resumeToken,
		Actor:       actorPayload(cfg.actor),
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return submissionFromResponse(data), nil
}

// GetSubmission retrieves a submission by ID.
func (c *Client) GetSubmission(ctx context.Context, intakeID, submissionID string) (*Submission, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	data, err := c.apiClient.GetSubmission(ctx, intakeID, submissionID)
	if err != nil {
		return nil, wrapError(err)
	}
	return submissionFromResponse(data), nil
}

// CreateSubmissionAsync starts CreateSubmission on its own goroutine and
// returns a handle to the in-flight call.
func (c *Client) CreateSubmissionAsync(ctx context.Context, intakeID string, opts ...CallOption) *Call[*Submission] {
	return startCall(func() (*Submission, error) {
		return c.CreateSubmission(ctx, intakeID, opts...)
	})
}

// SetFieldsAsync starts SetFields on its own goroutine and returns a
// handle to the in-flight call.
func (c *Client) SetFieldsAsync(ctx context.Context, intakeID, submissionID, resumeToken string, fields map[string]any, opts ...CallOption) *Call[*FieldsResult] {
	return startCall(func() (*FieldsResult, error) {
		return c.SetFields(ctx, intakeID, submissionID, resumeToken, fields, opts...)
	})
}

// SubmitAsync starts Submit on its own goroutine and returns a handle to
// the in-flight call.
func (c *Client) SubmitAsync(ctx context.Context, intakeID, submissionID, resumeToken string, opts ...CallOption) *Call[*Submission] {
	return startCall(func() (*Submission, error) {
		return c.Submit(ctx, intakeID, submissionID, resumeToken, opts...)
	})
}

// GetSubmissionAsync starts GetSubmission on its own goroutine and returns
// a handle to the in-flight call.
func (c *Client) GetSubmissionAsync(ctx context.Context, intakeID, submissionID string) *Call[*Submission] {
	return startCall(func() (*Submission, error) {
		return c.GetSubmission(ctx, intakeID, submissionID)
	})
}

// actorPayload converts a public Actor into its wire representation.
func actorPayload(actor *Actor) *api.ActorPayload {
	if actor == nil {
		return nil
	}
	return &api.ActorPayload{
		Kind: actor.Kind,
		ID:   actor.ID,
		Name: actor.Name,
	}
}
