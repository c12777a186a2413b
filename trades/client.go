package trades

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rbxkit/rbxkit/roblox"
)

const defaultBaseURL = "https://trades.roblox.com"

// Client calls the trades.roblox.com endpoint family. Every operation
// requires an authenticated session.
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

// NewClient creates a trades client on top of the shared request engine.
func NewClient(rbx *roblox.Client, logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{rbx: rbx, baseURL: defaultBaseURL, logger: logger}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// List returns the account's trades in the given status bucket, one
// cursor page at a time.
func (c *Client) List(ctx context.Context, status Status, limit roblox.Limit, cursor string) ([]TradeSummary, string, error) {
	if err := status.validate(); err != nil {
		return nil, "", err
	}

	raw, next, err := roblox.FetchPage[tradeSummaryRaw](ctx, c.rbx, roblox.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v1/trades/%s", c.baseURL, status),
	}, cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list %s trades: %w", status, err)
	}

	trades := make([]TradeSummary, 0, len(raw))
	for _, r := range raw {
		trades = append(trades, TradeSummary{
			ID:          r.ID,
			PartnerID:   r.User.ID,
			PartnerName: r.User.Name,
			Status:      r.Status,
			Created:     r.Created,
			Expiration:  r.Expiration,
			IsActive:    r.IsActive,
		})
	}

	return trades, next, nil
}

// Details fetches the full offer breakdown of one trade.
func (c *Client) Details(ctx context.Context, tradeID int64) (*TradeDetails, error) {
	resp, err := c.rbx.Execute(ctx, roblox.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v1/trades/%d", c.baseURL, tradeID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get trade %d: %w", tradeID, err)
	}

	var raw tradeDetailsRaw
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", roblox.ErrMalformedResponse, err)
	}

	details := &TradeDetails{
		ID:      raw.ID,
		Status:  raw.Status,
		Created: raw.Created,
	}

	for _, offer := range raw.Offers {
		converted := Offer{
			UserID: offer.User.ID,
			Robux:  offer.Robux,
		}
		for _, asset := range offer.UserAssets {
			converted.Assets = append(converted.Assets, OfferedAsset{
				UserAssetID:  asset.ID,
				AssetID:      asset.AssetID,
				Name:         asset.Name,
				SerialNumber: asset.SerialNumber,
			})
		}
		details.Offers = append(details.Offers, converted)
	}

	return details, nil
}

// Accept accepts an inbound trade.
func (c *Client) Accept(ctx context.Context, tradeID int64) error {
	return c.respond(ctx, tradeID, "accept")
}

// Decline declines an inbound trade or retracts an outbound one.
func (c *Client) Decline(ctx context.Context, tradeID int64) error {
	return c.respond(ctx, tradeID, "decline")
}

func (c *Client) respond(ctx context.Context, tradeID int64, action string) error {
	_, err := c.rbx.Execute(ctx, roblox.Request{
		Method:       http.MethodPost,
		URL:          fmt.Sprintf("%s/v1/trades/%d/%s", c.baseURL, tradeID, action),
		Body:         []byte(`{}`),
		RequiresCSRF: true,
	})
	if err != nil {
		return fmt.Errorf("failed to %s trade %d: %w", action, tradeID, err)
	}

	c.logger.Info().Int64("trade_id", tradeID).Str("action", action).Msg("Responded to trade")

	return nil
}
