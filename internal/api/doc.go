// Package api provides HTTP client functionality for communicating with the
// FormBridge API. It handles authentication, request/response serialization,
// and automatic retry with bounded backoff for transient failures.
//
// # Retry Behavior
//
// Each logical call makes at most len(schedule)+1 HTTP attempts, where the
// schedule is the retry policy's backoff sequence (500ms, 1s, 2s by default)
// truncated to the configured maximum retry count. Attempts are strictly
// sequential. A retry is triggered by a transport failure (connection
// refused, connect timeout, read timeout) or by one of these status codes:
//
//   - 429 Too Many Requests
//   - 500 Internal Server Error
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//
// The body of a retried response is discarded without decoding. Every
// retry emits one warning log event carrying the attempt index, the total
// attempt budget and the backoff duration. Configure retry behavior via
// [Config.Retry]; the schedule is a field of [RetryPolicy], never shared
// package state.
//
// # Error Taxonomy
//
// Every non-success path ends in exactly one returned error:
//
//   - [*ConnectivityError]: no HTTP response was ever obtained, even after
//     retries. No status code. Possibly-transient infrastructure failure.
//   - [*APIError]: the server responded with a non-2xx status after any
//     applicable retries. Carries the status code, the optional
//     error.{type,message} envelope and the full decoded body.
//   - [*InternalError]: anything else (undecodable body, malformed
//     request), wrapped so callers never depend on transport-library
//     specific error types.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Distinct logical calls
// share the persistent HTTP session and its connection pool but are never
// serialized against each other.
package api
