package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rbxkit/rbxkit/roblox"
)

const defaultBaseURL = "https://catalog.roblox.com"

// Client calls the catalog.roblox.com endpoint family.
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

// NewClient creates a catalog client on top of the shared request engine.
func NewClient(rbx *roblox.Client, logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{rbx: rbx, baseURL: defaultBaseURL, logger: logger}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ItemDetails fetches details for up to MaxBatchSize items in one call.
// The endpoint is CSRF-guarded even though it only reads data.
func (c *Client) ItemDetails(ctx context.Context, items []ItemRef) ([]ItemDetails, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if len(items) > MaxBatchSize {
		return nil, fmt.Errorf("at most %d items per batch, got %d", MaxBatchSize, len(items))
	}

	reqItems := make([]itemRefRaw, 0, len(items))
	for _, item := range items {
		reqItems = append(reqItems, itemRefRaw{ItemType: item.Type, ID: item.ID})
	}

	body, err := json.Marshal(itemDetailsRequest{Items: reqItems})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.rbx.Execute(ctx, roblox.Request{
		Method:       http.MethodPost,
		URL:          c.baseURL + "/v1/catalog/items/details",
		Body:         body,
		RequiresCSRF: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item details: %w", err)
	}

	var envelope itemDetailsResponse
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", roblox.ErrMalformedResponse, err)
	}

	details := make([]ItemDetails, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		details = append(details, raw.toDetails())
	}

	c.logger.Debug().Int("count", len(details)).Msg("Retrieved catalog item details")

	return details, nil
}
