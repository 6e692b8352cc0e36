package api

import (
	"context"
	"time"
)

// DefaultBackoffs is the default backoff schedule between retry attempts.
// Attempt i sleeps Backoffs[i] before the next attempt is issued.
var DefaultBackoffs = []time.Duration{
	500 * time.Millisecond,
	time.Second,
	2 * time.Second,
}

// RetryPolicy configures retry behavior for failed HTTP requests. The
// backoff schedule is an explicit field rather than package state, so
// callers and tests inject their own schedule per client instance.
type RetryPolicy struct {
	// Backoffs is the ordered backoff schedule. The schedule is truncated
	// to MaxRetries entries, so at most min(MaxRetries, len(Backoffs))
	// retries happen per logical call.
	Backoffs []time.Duration
	// MaxRetries is the maximum number of retry attempts.
	MaxRetries int
	// RetryableOn reports whether a status code should trigger a retry.
	RetryableOn func(statusCode int) bool
}

// DefaultRetryPolicy returns the default retry policy: up to 3 retries
// with backoffs of 500ms, 1s and 2s on 429 and transient 5xx statuses.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		Backoffs:    DefaultBackoffs,
		MaxRetries:  DefaultMaxRetries,
		RetryableOn: DefaultRetryableStatus,
	}
}

// DefaultRetryableStatus reports whether a status code is retried by default.
func DefaultRetryableStatus(statusCode int) bool {
	switch statusCode {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// Schedule returns the effective backoff schedule, truncated to MaxRetries.
// len(Schedule())+1 is the maximum number of HTTP attempts per logical call.
func (p *RetryPolicy) Schedule() []time.Duration {
	n := p.MaxRetries
	if n < 0 {
		n = 0
	}
	if n > len(p.Backoffs) {
		n = len(p.Backoffs)
	}
	return p.Backoffs[:n]
}

// Retryable reports whether a status code should trigger a retry.
func (p *RetryPolicy) Retryable(statusCode int) bool {
	if p.RetryableOn == nil {
		return DefaultRetryableStatus(statusCode)
	}
	return p.RetryableOn(statusCode)
}

// Wait sleeps for the given backoff, honoring context cancellation.
func (p *RetryPolicy) Wait(ctx context.Context, backoff time.Duration) error {
	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
