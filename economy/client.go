package economy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rbxkit/rbxkit/roblox"
	"github.com/rbxkit/rbxkit/users"
)

const defaultBaseURL = "https://economy.roblox.com"

// Client calls the economy.roblox.com endpoint family.
type Client struct {
	rbx     *roblox.Client
	users   *users.Client
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

// NewClient creates an economy client. The users client resolves the
// authenticated account's id for the endpoints that embed it in the URL.
func NewClient(rbx *roblox.Client, usersClient *users.Client, logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{rbx: rbx, users: usersClient, baseURL: defaultBaseURL, logger: logger}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Robux returns the current account's robux balance.
func (c *Client) Robux(ctx context.Context) (int64, error) {
	userID, err := c.users.UserID(ctx)
	if err != nil {
		return 0, err
	}

	resp, err := c.rbx.Execute(ctx, roblox.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v1/users/%d/currency", c.baseURL, userID),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get robux balance: %w", err)
	}

	var raw currencyResponse
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return 0, fmt.Errorf("%w: %v", roblox.ErrMalformedResponse, err)
	}

	return raw.Robux, nil
}

// Resellers lists the resale listings of a limited item, cheapest first,
// one cursor page at a time.
func (c *Client) Resellers(ctx context.Context, assetID int64, limit roblox.Limit, cursor string) ([]Listing, string, error) {
	raw, next, err := roblox.FetchPage[resellerRaw](ctx, c.rbx, roblox.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v1/assets/%d/resellers", c.baseURL, assetID),
	}, cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get resellers for asset %d: %w", assetID, err)
	}

	listings := make([]Listing, 0, len(raw))
	for _, r := range raw {
		listings = append(listings, Listing{
			UserAssetID:  r.UserAssetID,
			Price:        r.Price,
			SerialNumber: r.SerialNumber,
			Reseller: Reseller{
				UserID: r.Seller.ID,
				Name:   r.Seller.Name,
			},
		})
	}

	return listings, next, nil
}

// UserSales lists the current account's sale transactions, one cursor
// page at a time.
func (c *Client) UserSales(ctx context.Context, limit roblox.Limit, cursor string) ([]Sale, string, error) {
	userID, err := c.users.UserID(ctx)
	if err != nil {
		return nil, "", err
	}

	raw, next, err := roblox.FetchPage[saleRaw](ctx, c.rbx, roblox.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v2/users/%d/transactions?transactionType=Sale", c.baseURL, userID),
	}, cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user sales: %w", err)
	}

	sales := make([]Sale, 0, len(raw))
	for _, r := range raw {
		sales = append(sales, Sale{
			SaleID:          r.ID,
			IsPending:       r.IsPending,
			BuyerID:         r.Agent.ID,
			BuyerName:       r.Agent.Name,
			RobuxReceived:   r.Currency.Amount,
			AssetID:         r.Details.ID,
			AssetName:       r.Details.Name,
			TransactionDate: r.Created,
		})
	}

	return sales, next, nil
}

// PurchaseLimited buys a limited item resale listing. The expected price,
// seller and user asset id protect against the listing changing between
// lookup and purchase; a mismatch is rejected by the service and mapped
// into a PurchaseError.
func (c *Client) PurchaseLimited(ctx context.Context, productID, sellerID, userAssetID, price int64) error {
	body, err := json.Marshal(purchaseRequest{
		ExpectedCurrency: 1,
		ExpectedPrice:    price,
		ExpectedSellerID: sellerID,
		UserAssetID:      userAssetID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal purchase request: %w", err)
	}

	resp, err := c.rbx.Execute(ctx, roblox.Request{
		Method:       http.MethodPost,
		URL:          fmt.Sprintf("%s/v1/purchases/products/%d", c.baseURL, productID),
		Body:         body,
		RequiresCSRF: true,
	})
	if err != nil {
		return fmt.Errorf("purchase request failed: %w", err)
	}

	var raw purchaseResponse
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return fmt.Errorf("%w: %v", roblox.ErrMalformedResponse, err)
	}

	if !raw.Purchased {
		return classifyPurchaseFailure(raw.ErrorMsg)
	}

	c.logger.Info().
		Int64("product_id", productID).
		Int64("price", price).
		Msg("Purchased limited item")

	return nil
}

// PutLimitedOnSale lists an owned copy of a limited item for sale at the
// given price.
func (c *Client) PutLimitedOnSale(ctx context.Context, assetID, userAssetID, price int64) error {
	body, err := json.Marshal(toggleSaleRequest{Price: price})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.toggleSale(ctx, assetID, userAssetID, body)
}

// TakeLimitedOffSale delists an owned copy of a limited item.
func (c *Client) TakeLimitedOffSale(ctx context.Context, assetID, userAssetID int64) error {
	return c.toggleSale(ctx, assetID, userAssetID, []byte(`{}`))
}

// toggleSale drives the resellable-copies endpoint; an empty price object
// delists, a priced one lists. Success is just a 200.
func (c *Client) toggleSale(ctx context.Context, assetID, userAssetID int64, body []byte) error {
	_, err := c.rbx.Execute(ctx, roblox.Request{
		Method:       http.MethodPatch,
		URL:          fmt.Sprintf("%s/v1/assets/%d/resellable-copies/%d", c.baseURL, assetID, userAssetID),
		Body:         body,
		RequiresCSRF: true,
	})
	if err != nil {
		return fmt.Errorf("failed to update sale state of asset %d copy %d: %w", assetID, userAssetID, err)
	}
	return nil
}
