package formbridge

import (
	"errors"
	"fmt"

	"github.com/formbridge/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrUnauthorized is returned when the API key is invalid or missing.
	ErrUnauthorized = errors.New("invalid or missing API key")

	// ErrNotFound is returned when an intake or submission does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited is returned when the API rate limit is exceeded
	// and retries are exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// FormBridgeError is implemented by all SDK errors.
type FormBridgeError interface {
	error
	FormBridgeError() // marker method
}

// APIError represents an error response from the FormBridge API: the
// server was reached and rejected the request. Retryable statuses have
// already been retried by the time callers see one of these.
type APIError struct {
	StatusCode int
	// ErrorType is the machine-readable tag from the error envelope,
	// e.g. "not_found" or "validation". Empty when the server sent none.
	ErrorType string
	Message   string
	// Response is the full decoded response body, for diagnostics.
	Response map[string]any
}

func (e *APIError) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, e.ErrorType, e.Message)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// FormBridgeError implements the FormBridgeError interface.
func (e *APIError) FormBridgeError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 404:
		return target == ErrNotFound
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// ConnectivityError represents a failure to obtain any HTTP response
// (connection refused, connect timeout, read timeout) after exhausting
// retries. There is no status code; callers should treat it as a
// possibly-transient infrastructure failure.
type ConnectivityError struct {
	Err      error
	Attempts int
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connection failed after %d attempt(s): %v", e.Attempts, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// FormBridgeError implements the FormBridgeError interface.
func (e *ConnectivityError) FormBridgeError() {}

// InternalError wraps any unexpected failure during request execution so
// callers depend on one error surface regardless of the underlying
// transport implementation.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("unexpected error: %s", e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *InternalError) Unwrap() error {
	return e.Err
}

// FormBridgeError implements the FormBridgeError interface.
func (e *InternalError) FormBridgeError() {}

// IsConnectivityError reports whether err indicates that no HTTP response
// was ever obtained, as opposed to the server rejecting the request.
func IsConnectivityError(err error) bool {
	var connErr *ConnectivityError
	return errors.As(err, &connErr)
}

// wrapError converts internal API errors to public errors so that
// errors.Is() and errors.As() checks work with the public types.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			ErrorType:  apiErr.ErrorType,
			Message:    apiErr.Message,
			Response:   apiErr.Response,
		}
	}

	var connErr *api.ConnectivityError
	if errors.As(err, &connErr) {
		return &ConnectivityError{
			Err:      connErr.Err,
			Attempts: connErr.Attempts,
		}
	}

	var internalErr *api.InternalError
	if errors.As(err, &internalErr) {
		return &InternalError{
			Message: internalErr.Message,
			Err:     internalErr.Err,
		}
	}

	return err
}
