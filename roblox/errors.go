package roblox

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by the request engine.
var (
	// ErrCookieNotSet is returned when an authenticated endpoint is called
	// without a .ROBLOSECURITY cookie configured.
	ErrCookieNotSet = errors.New("roblosecurity cookie is not set")

	// ErrAuthRequired indicates the session is invalid or expired, or that
	// Roblox rejected the call for CSRF reasons and no usable token could
	// be obtained.
	ErrAuthRequired = errors.New("authentication required")

	// ErrMalformedResponse indicates the response body did not match the
	// shape the endpoint is documented to return.
	ErrMalformedResponse = errors.New("malformed response from roblox")
)

// ConfigError indicates invalid client or request configuration. It is
// always returned before any network I/O happens.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigError) Unwrap() error { return e.Err }

// TransportError wraps a network-level failure (DNS, connect, TLS) that
// happened before a status code was received. The engine never retries
// these; retry policy for transport failures belongs to the caller.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error { return e.Err }

// RateLimitError indicates Roblox throttled the request (HTTP 429).
// RetryAfter is zero when the service did not provide a hint.
type RateLimitError struct {
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

// APIError represents a structured rejection from a Roblox endpoint.
// Code and Message come from the first entry of the platform's standard
// errors array when the body is parseable; otherwise Message carries a
// snippet of the raw body.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("roblox API error: status %d: code %d: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("roblox API error: status %d", e.StatusCode)
}

// IsNotFound checks if the error indicates a not found response.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsBadRequest checks if the error indicates a bad request.
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == 400
}

// IsServerError checks if the error indicates a server-side failure.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// csrfChallenge is the classifier's internal outcome for a 403 carrying a
// fresh token in its x-csrf-token header. The engine consumes it during
// the single automatic retry; it never escapes Execute.
type csrfChallenge struct {
	token string
}

func (e *csrfChallenge) Error() string {
	return "x-csrf-token rejected, fresh token received"
}
