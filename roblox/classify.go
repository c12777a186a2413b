package roblox

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// maxBodySnippet caps how much of an unparseable error body is carried
// inside an APIError.
const maxBodySnippet = 512

// robloxErrorResponse is the platform's standard error envelope. Only the
// first entry is used for classification.
type robloxErrorResponse struct {
	Errors []robloxError `json:"errors"`
}

type robloxError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// classify maps a raw status/headers/body triple into the engine's
// outcome taxonomy. The mapping is total: every input produces either a
// *Response or exactly one error kind.
func classify(status int, header http.Header, body []byte) (*Response, error) {
	if status >= 200 && status < 300 {
		return &Response{StatusCode: status, Header: header, Body: body}, nil
	}

	switch status {
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("invalid or expired roblosecurity: %w", ErrAuthRequired)
	case http.StatusForbidden:
		return nil, classifyForbidden(header, body)
	case http.StatusTooManyRequests:
		return nil, &RateLimitError{RetryAfter: parseRetryAfter(header)}
	default:
		return nil, apiError(status, body)
	}
}

// classifyForbidden handles Roblox's overloaded 403: it is both the CSRF
// challenge carrier and an ordinary domain rejection. A fresh token in
// the response header wins unless the body names a concrete error code.
func classifyForbidden(header http.Header, body []byte) error {
	token := header.Get(csrfHeader)

	var errResp robloxErrorResponse
	parsed := json.Unmarshal(body, &errResp) == nil && len(errResp.Errors) > 0

	if token != "" {
		// Code 0 is the platform's "token validation failed" marker.
		// An unparseable body alongside a token is treated the same.
		if !parsed || errResp.Errors[0].Code == 0 {
			return &csrfChallenge{token: token}
		}
		return &APIError{
			StatusCode: http.StatusForbidden,
			Code:       errResp.Errors[0].Code,
			Message:    errResp.Errors[0].Message,
		}
	}

	if parsed && errResp.Errors[0].Code != 0 {
		return &APIError{
			StatusCode: http.StatusForbidden,
			Code:       errResp.Errors[0].Code,
			Message:    errResp.Errors[0].Message,
		}
	}

	// A challenge with no token to answer it with is a dead end.
	return fmt.Errorf("csrf challenge without token: %w", ErrAuthRequired)
}

// apiError builds an APIError from the platform error envelope, falling
// back to a snippet of the raw body when it cannot be parsed.
func apiError(status int, body []byte) *APIError {
	var errResp robloxErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && len(errResp.Errors) > 0 {
		return &APIError{
			StatusCode: status,
			Code:       errResp.Errors[0].Code,
			Message:    errResp.Errors[0].Message,
		}
	}

	snippet := string(body)
	if len(snippet) > maxBodySnippet {
		snippet = snippet[:maxBodySnippet]
	}
	return &APIError{StatusCode: status, Body: snippet}
}

// parseRetryAfter reads the Retry-After header, supporting both the
// delta-seconds and HTTP-date forms. Returns zero when absent or
// unusable.
func parseRetryAfter(header http.Header) time.Duration {
	value := header.Get("Retry-After")
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}

	return 0
}
