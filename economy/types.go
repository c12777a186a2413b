package economy

import "time"

// Reseller identifies the seller behind a resale listing.
type Reseller struct {
	UserID int64
	Name   string
}

// Listing is one resale listing of a limited item.
type Listing struct {
	// UserAssetID identifies the concrete copy being sold.
	UserAssetID int64
	Price       int64
	Reseller    Reseller
	// SerialNumber is nil for copies without one (non Limited U items).
	SerialNumber *int64
}

// Sale is one completed or pending sale from the account's transaction
// history. RobuxReceived is the amount after marketplace tax.
type Sale struct {
	SaleID          int64
	IsPending       bool
	BuyerID         int64
	BuyerName       string
	RobuxReceived   int64
	AssetID         int64
	AssetName       string
	TransactionDate time.Time
}

type currencyResponse struct {
	Robux int64 `json:"robux"`
}

type resellerRaw struct {
	UserAssetID  int64  `json:"userAssetId"`
	Price        int64  `json:"price"`
	SerialNumber *int64 `json:"serialNumber"`
	Seller       struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"seller"`
}

type saleRaw struct {
	ID        int64     `json:"id"`
	IsPending bool      `json:"isPending"`
	Created   time.Time `json:"created"`
	Agent     struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"agent"`
	Details struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"details"`
	Currency struct {
		Amount int64 `json:"amount"`
	} `json:"currency"`
}

type purchaseRequest struct {
	ExpectedCurrency int64 `json:"expectedCurrency"`
	ExpectedPrice    int64 `json:"expectedPrice"`
	ExpectedSellerID int64 `json:"expectedSellerId"`
	UserAssetID      int64 `json:"userAssetId"`
}

type purchaseResponse struct {
	Purchased bool   `json:"purchased"`
	ErrorMsg  string `json:"errorMsg"`
}

type toggleSaleRequest struct {
	Price int64 `json:"price"`
}
