package roblox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Request describes a single call to a Roblox endpoint. Body, when set,
// is a fully serialized payload; it is replayed byte for byte if the
// engine has to repeat the call after a CSRF challenge.
type Request struct {
	Method       string
	URL          string
	Body         []byte
	ContentType  string
	RequiresCSRF bool
}

// Response is the raw success payload of a request. Endpoint packages
// decode Body into their typed response shapes.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Execute performs the request with the session cookie attached and every
// failure mode mapped into the engine's error taxonomy.
//
// For requests marked RequiresCSRF, the cached x-csrf-token is attached
// and Roblox's challenge protocol is handled transparently: a 403 that
// carries a fresh token in its x-csrf-token header updates the cache and
// the request is re-issued exactly once. A second challenge is surfaced
// as ErrAuthRequired, never retried again. A challenge without a token
// is ErrAuthRequired immediately.
func (c *Client) Execute(ctx context.Context, req Request) (*Response, error) {
	resp, err := c.attempt(ctx, req, c.session.csrfToken())

	var challenge *csrfChallenge
	if !errors.As(err, &challenge) {
		return resp, err
	}

	if !req.RequiresCSRF {
		// Challenges on endpoints that never send a token are a plain
		// auth failure, not a retry trigger.
		return nil, fmt.Errorf("unexpected csrf challenge: %w", ErrAuthRequired)
	}

	// The token is committed before the retry so that it survives even
	// if the second attempt fails.
	c.session.setCSRFToken(challenge.token)
	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL).
		Msg("Refreshed x-csrf-token, retrying request")

	resp, err = c.attempt(ctx, req, challenge.token)
	if errors.As(err, &challenge) {
		// Two rejections in a row means the session itself is not
		// acceptable; keep the newest token but stop retrying.
		c.session.setCSRFToken(challenge.token)
		return nil, fmt.Errorf("x-csrf-token rejected twice: %w", ErrAuthRequired)
	}

	return resp, err
}

// attempt performs one HTTP round trip and classifies the outcome. It
// never mutates session state.
func (c *Client) attempt(ctx context.Context, req Request, csrfToken string) (*Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, &ConfigError{Field: "request", Reason: "failed to build request", Err: err}
	}

	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		contentType := req.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		httpReq.Header.Set("Content-Type", contentType)
	}

	if c.session.cookie != "" {
		httpReq.AddCookie(&http.Cookie{Name: securityCookie, Value: c.session.cookie})
	}
	if req.RequiresCSRF && csrfToken != "" {
		httpReq.Header.Set(csrfHeader, csrfToken)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL).
		Bool("csrf", req.RequiresCSRF && csrfToken != "").
		Msg("Making Roblox API request")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return classify(httpResp.StatusCode, httpResp.Header, body)
}
