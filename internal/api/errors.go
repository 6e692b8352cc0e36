package api

import (
	"fmt"
)

// APIError represents an HTTP error response from the FormBridge API.
// The server responded, so a status code is always present.
type APIError struct {
	StatusCode int
	// ErrorType is the machine-readable tag from the error envelope,
	// e.g. "not_found" or "rate_limited". Empty when the server sent none.
	ErrorType string
	Message   string
	// Response is the full decoded body, kept for diagnostics. Nil when
	// the body was not a JSON object.
	Response map[string]any
}

func (e *APIError) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, e.ErrorType, e.Message)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// newAPIError builds an APIError from a status code and decoded body.
// The body may be any JSON value; the error envelope is only extracted
// when the body is an object carrying an "error" sub-object.
func newAPIError(statusCode int, body any) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
	}

	obj, ok := body.(map[string]any)
	if !ok {
		return apiErr
	}
	apiErr.Response = obj

	envelope, ok := obj["error"].(map[string]any)
	if !ok {
		return apiErr
	}
	if t, ok := envelope["type"].(string); ok {
		apiErr.ErrorType = t
	}
	if m, ok := envelope["message"].(string); ok && m != "" {
		apiErr.Message = m
	}
	return apiErr
}

// ConnectivityError represents a failure to obtain any HTTP response:
// connection refused, connect timeout or read timeout, after exhausting
// retries. There is no status code.
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

// InternalError wraps unexpected failures during request execution, such
// as an undecodable response body, so callers never see transport-library
// specific error types.
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
