package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rbxkit/rbxkit/roblox"
)

const defaultBaseURL = "https://presence.roblox.com"

// Client calls the presence.roblox.com endpoint family.
type Client struct {
	rbx     *roblox.Client
	baseURL string
	logger  zerolog.Logger
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

// NewClient creates a presence client on top of the shared request
// engine.
func NewClient(rbx *roblox.Client, logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{rbx: rbx, baseURL: defaultBaseURL, logger: logger}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Users fetches the current presence of a set of user ids in one batch
// call. Results follow the service's order, which matches the input.
func (c *Client) Users(ctx context.Context, userIDs []int64) ([]UserPresence, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(presenceRequest{UserIDs: userIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.rbx.Execute(ctx, roblox.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/v1/presence/users",
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get presence: %w", err)
	}

	var envelope presenceResponse
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", roblox.ErrMalformedResponse, err)
	}

	presences := make([]UserPresence, 0, len(envelope.UserPresences))
	for _, raw := range envelope.UserPresences {
		presences = append(presences, UserPresence{
			UserID:       raw.UserID,
			Type:         PresenceType(raw.UserPresenceType),
			LastLocation: raw.LastLocation,
			PlaceID:      raw.PlaceID,
			LastOnline:   raw.LastOnline,
		})
	}

	return presences, nil
}
