package roblox

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	client, err := NewClient(zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestExecuteCSRFRetry(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempt := atomic.AddInt32(&attempts, 1)

		cookie, err := r.Cookie(".ROBLOSECURITY")
		require.NoError(t, err)
		assert.Equal(t, "abc", cookie.Value)

		switch attempt {
		case 1:
			assert.Empty(t, r.Header.Get("x-csrf-token"))
			w.Header().Set("x-csrf-token", "tok1")
			w.WriteHeader(http.StatusForbidden)
		case 2:
			assert.Equal(t, "tok1", r.Header.Get("x-csrf-token"))
			w.Write([]byte(`{"robux": 100}`))
		}
	}))
	defer server.Close()

	client := newTestClient(t, WithCookie("abc"))

	resp, err := client.Execute(context.Background(), Request{
		Method:       http.MethodGet,
		URL:          server.URL,
		RequiresCSRF: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"robux": 100}`, string(resp.Body))
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
	assert.Equal(t, "tok1", client.CSRFToken())
}

func TestExecuteSecondChallengeNotRetried(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.Header().Set("x-csrf-token", "tok2")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, WithCookie("abc"))

	_, err := client.Execute(context.Background(), Request{
		Method:       http.MethodPost,
		URL:          server.URL,
		RequiresCSRF: true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts), "a call terminates in at most two requests")
	assert.Equal(t, "tok2", client.CSRFToken(), "latest token stays cached")
}

func TestExecuteChallengeWithoutTokenNotRetried(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, WithCookie("abc"))

	_, err := client.Execute(context.Background(), Request{
		Method:       http.MethodPost,
		URL:          server.URL,
		RequiresCSRF: true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts), "no retry without a token to retry with")
	assert.Empty(t, client.CSRFToken())
}

func TestExecuteNonCSRFRequestNeverRetries(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.Header().Set("x-csrf-token", "tok1")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, WithCookie("abc"))

	_, err := client.Execute(context.Background(), Request{
		Method: http.MethodGet,
		URL:    server.URL,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestExecuteTokenCachedEvenWhenRetryFails(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&attempts, 1) {
		case 1:
			w.Header().Set("x-csrf-token", "tok1")
			w.WriteHeader(http.StatusForbidden)
		case 2:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := newTestClient(t, WithCookie("abc"))

	_, err := client.Execute(context.Background(), Request{
		Method:       http.MethodPost,
		URL:          server.URL,
		RequiresCSRF: true,
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "tok1", client.CSRFToken())
}

func TestExecuteBodyReplayedAcrossRetry(t *testing.T) {
	const payload = `{"expectedPrice":5000}`
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, payload, string(body))
		assert.Equal(t, http.MethodPost, r.Method)

		if atomic.AddInt32(&attempts, 1) == 1 {
			w.Header().Set("x-csrf-token", "tok1")
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, WithCookie("abc"))

	_, err := client.Execute(context.Background(), Request{
		Method:       http.MethodPost,
		URL:          server.URL,
		Body:         []byte(payload),
		RequiresCSRF: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestExecuteRateLimitedNoRetry(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t)

	_, err := client.Execute(context.Background(), Request{
		Method: http.MethodGet,
		URL:    server.URL,
	})
	require.Error(t, err)

	var rateLimited *RateLimitError
	require.ErrorAs(t, err, &rateLimited)
	assert.Equal(t, "5s", rateLimited.RetryAfter.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts), "engine performs no automatic retry on 429")
}

func TestExecuteTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(t)

	_, err := client.Execute(context.Background(), Request{
		Method: http.MethodGet,
		URL:    server.URL,
	})
	require.Error(t, err)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestExecuteContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Execute(ctx, Request{Method: http.MethodGet, URL: server.URL})
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, transportErr.Err, context.Canceled)
	assert.Empty(t, client.CSRFToken(), "no partial session mutation on cancellation")
}

func TestExecuteUnauthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie(".ROBLOSECURITY")
		assert.ErrorIs(t, err, http.ErrNoCookie)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t)
	assert.False(t, client.Authenticated())

	_, err := client.Execute(context.Background(), Request{Method: http.MethodGet, URL: server.URL})
	require.NoError(t, err)
}
