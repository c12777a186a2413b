package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rbxkit/rbxkit/roblox"
)

const defaultBaseURL = "https://users.roblox.com"

// Client calls the users.roblox.com endpoint family.
type Client struct {
	rbx     *roblox.Client
	baseURL string
	logger  zerolog.Logger

	mu     sync.Mutex
	cached *AuthenticatedUser
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint host. Intended for tests and
// compatible proxies.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a users client on top of the shared request engine.
func NewClient(rbx *roblox.Client, logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{rbx: rbx, baseURL: defaultBaseURL, logger: logger}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Authenticated returns information about the account behind the session
// cookie. The result is cached for the client's lifetime; the identity of
// an authenticated session does not change.
func (c *Client) Authenticated(ctx context.Context) (*AuthenticatedUser, error) {
	c.mu.Lock()
	if c.cached != nil {
		user := *c.cached
		c.mu.Unlock()
		return &user, nil
	}
	c.mu.Unlock()

	if !c.rbx.Authenticated() {
		return nil, roblox.ErrCookieNotSet
	}

	resp, err := c.rbx.Execute(ctx, roblox.Request{
		Method: http.MethodGet,
		URL:    c.baseURL + "/v1/users/authenticated",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated user: %w", err)
	}

	var raw authenticatedUserRaw
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", roblox.ErrMalformedResponse, err)
	}

	user := AuthenticatedUser{
		ID:          raw.ID,
		Username:    raw.Name,
		DisplayName: raw.DisplayName,
	}

	c.mu.Lock()
	c.cached = &user
	c.mu.Unlock()

	c.logger.Debug().Int64("user_id", user.ID).Msg("Resolved authenticated user")

	return &user, nil
}

// UserID is a convenience wrapper around Authenticated.
func (c *Client) UserID(ctx context.Context) (int64, error) {
	user, err := c.Authenticated(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Details fetches public profile details for any user id. Works without
// a session cookie.
func (c *Client) Details(ctx context.Context, userID int64) (*UserDetails, error) {
	resp, err := c.rbx.Execute(ctx, roblox.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v1/users/%d", c.baseURL, userID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	var raw userDetailsRaw
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", roblox.ErrMalformedResponse, err)
	}

	return &UserDetails{
		ID:          raw.ID,
		Username:    raw.Name,
		DisplayName: raw.DisplayName,
		Description: raw.Description,
		CreatedAt:   raw.Created,
		IsBanned:    raw.IsBanned,
	}, nil
}

// Search looks up users by keyword, one cursor page at a time.
func (c *Client) Search(ctx context.Context, keyword string, limit roblox.Limit, cursor string) ([]UserSummary, string, error) {
	if keyword == "" {
		return nil, "", fmt.Errorf("search keyword is required")
	}

	raw, next, err := roblox.FetchPage[userSearchRaw](ctx, c.rbx, roblox.Request{
		Method: http.MethodGet,
		URL:    c.baseURL + "/v1/users/search?keyword=" + url.QueryEscape(keyword),
	}, cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("user search failed: %w", err)
	}

	results := make([]UserSummary, 0, len(raw))
	for _, r := range raw {
		results = append(results, UserSummary{
			ID:          r.ID,
			Username:    r.Name,
			DisplayName: r.DisplayName,
		})
	}

	return results, next, nil
}

// FromUsernames resolves usernames to ids in one batch call.
func (c *Client) FromUsernames(ctx context.Context, usernames []string) ([]UserSummary, error) {
	if len(usernames) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(usernamesRequest{
		Usernames:          usernames,
		ExcludeBannedUsers: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.rbx.Execute(ctx, roblox.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/v1/usernames/users",
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve usernames: %w", err)
	}

	var envelope usernamesResponse
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", roblox.ErrMalformedResponse, err)
	}

	results := make([]UserSummary, 0, len(envelope.Data))
	for _, r := range envelope.Data {
		results = append(results, UserSummary{
			ID:          r.ID,
			Username:    r.Name,
			DisplayName: r.DisplayName,
		})
	}

	return results, nil
}
