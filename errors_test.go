package formbridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formbridge/client-go/internal/api"
)

func TestAPIError_SentinelMatching(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		sentinel   error
	}{
		{"401 unauthorized", 401, ErrUnauthorized},
		{"403 unauthorized", 403, ErrUnauthorized},
		{"404 not found", 404, ErrNotFound},
		{"429 rate limited", 429, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &APIError{StatusCode: tt.statusCode, Message: "x"}
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestAPIError_NoFalseSentinelMatch(t *testing.T) {
	err := &APIError{StatusCode: 400, Message: "x"}

	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrRateLimited)
}

func TestAPIError_ErrorString(t *testing.T) {
	withType := &APIError{StatusCode: 422, ErrorType: "validation", Message: "missing email"}
	assert.Equal(t, "API error 422 (validation): missing email", withType.Error())

	plain := &APIError{StatusCode: 500, Message: "HTTP 500"}
	assert.Equal(t, "API error 500: HTTP 500", plain.Error())
}

func TestIsConnectivityError(t *testing.T) {
	connErr := &ConnectivityError{Err: errors.New("refused"), Attempts: 4}
	apiErr := &APIError{StatusCode: 502, Message: "down"}

	assert.True(t, IsConnectivityError(connErr))
	assert.False(t, IsConnectivityError(apiErr))
	assert.False(t, IsConnectivityError(nil))
	assert.False(t, IsConnectivityError(errors.New("other")))
}

func TestConnectivityError_Unwrap(t *testing.T) {
	underlying := errors.New("connection refused")
	connErr := &ConnectivityError{Err: underlying, Attempts: 2}

	assert.ErrorIs(t, connErr, underlying)
}

func TestWrapError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, wrapError(nil))
	})

	t.Run("api error", func(t *testing.T) {
		wrapped := wrapError(&api.APIError{
			StatusCode: 404,
			ErrorType:  "not_found",
			Message:    "no such submission",
			Response:   map[string]any{"ok": false},
		})

		var apiErr *APIError
		require.ErrorAs(t, wrapped, &apiErr)
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Equal(t, "not_found", apiErr.ErrorType)
		assert.Equal(t, "no such submission", apiErr.Message)
		assert.Equal(t, map[string]any{"ok": false}, apiErr.Response)
		assert.ErrorIs(t, wrapped, ErrNotFound)
	})

	t.Run("connectivity error", func(t *testing.T) {
		underlying := errors.New("refused")
		wrapped := wrapError(&api.ConnectivityError{Err: underlying, Attempts: 4})

		var connErr *ConnectivityError
		require.ErrorAs(t, wrapped, &connErr)
		assert.Equal(t, 4, connErr.Attempts)
		assert.ErrorIs(t, wrapped, underlying)
	})

	t.Run("internal error", func(t *testing.T) {
		underlying := errors.New("bad json")
		wrapped := wrapError(&api.InternalError{Message: "decode response", Err: underlying})

		var internalErr *InternalError
		require.ErrorAs(t, wrapped, &internalErr)
		assert.ErrorIs(t, wrapped, underlying)
	})

	t.Run("unrelated error passes through", func(t *testing.T) {
		plain := errors.New("something else")
		assert.Same(t, plain, wrapError(plain))
	})
}

func TestPublicErrorsImplementMarker(t *testing.T) {
	var _ FormBridgeError = (*APIError)(nil)
	var _ FormBridgeError = (*ConnectivityError)(nil)
	var _ FormBridgeError = (*InternalError)(nil)
}
