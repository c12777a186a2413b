package roblox

import (
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	csrfHeader       = "x-csrf-token"
	securityCookie   = ".ROBLOSECURITY"
	defaultUserAgent = "rbxkit (+https://github.com/rbxkit/rbxkit)"
	defaultTimeout   = 30 * time.Second
)

// Client is an authenticated Roblox web API client. A single client may
// be shared by any number of concurrent calls; the cached x-csrf-token
// is the only mutable state and is guarded internally.
type Client struct {
	httpClient *http.Client
	session    *session
	userAgent  string
	logger     zerolog.Logger
}

// session holds the per-client credential state. The cookie and proxy are
// fixed at construction; only the CSRF token mutates, last-writer-wins.
type session struct {
	cookie string

	mu   sync.RWMutex
	csrf string
}

func (s *session) csrfToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.csrf
}

func (s *session) setCSRFToken(token string) {
	s.mu.Lock()
	s.csrf = token
	s.mu.Unlock()
}

// NewClient creates a new Roblox client. The cookie is optional; calls to
// endpoints that need authentication fail with ErrCookieNotSet when it is
// absent. Option errors (malformed proxy URL, bad timeout) surface as
// *ConfigError before any network call is made.
func NewClient(logger zerolog.Logger, opts ...Option) (*Client, error) {
	o := clientOptions{
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	if o.proxy != nil {
		transport, ok := httpClient.Transport.(*http.Transport)
		if !ok {
			transport = http.DefaultTransport.(*http.Transport).Clone()
		}
		// Every outbound call, including the CSRF retry, goes through
		// this transport. There is no direct fallback.
		transport.Proxy = http.ProxyURL(o.proxy)
		httpClient.Transport = transport
	}

	client := &Client{
		httpClient: httpClient,
		session:    &session{cookie: o.cookie},
		userAgent:  o.userAgent,
		logger:     logger,
	}

	logger.Debug().
		Bool("authenticated", o.cookie != "").
		Bool("proxy", o.proxy != nil).
		Msg("Created Roblox client")

	return client, nil
}

// Authenticated reports whether a session cookie was supplied. The cookie
// value itself is never exposed or logged.
func (c *Client) Authenticated() bool {
	return c.session.cookie != ""
}

// CSRFToken returns the currently cached x-csrf-token, or an empty string
// when no challenge has been answered yet.
func (c *Client) CSRFToken() string {
	return c.session.csrfToken()
}

// SetCSRFToken seeds the token cache. Normally the engine refreshes the
// token on its own from challenge responses; this exists for callers that
// obtained a token out of band.
func (c *Client) SetCSRFToken(token string) {
	c.session.setCSRFToken(token)
}
