package trades

import (
	"time"

	"github.com/rbxkit/rbxkit/roblox"
)

// Status selects a trade list bucket.
type Status string

// Trade list buckets.
const (
	StatusInbound   Status = "inbound"
	StatusOutbound  Status = "outbound"
	StatusCompleted Status = "completed"
	StatusInactive  Status = "inactive"
)

func (s Status) validate() error {
	switch s {
	case StatusInbound, StatusOutbound, StatusCompleted, StatusInactive:
		return nil
	default:
		return &roblox.ConfigError{Field: "trade status", Reason: string(s) + " is not a known bucket"}
	}
}

// TradeSummary is one entry of a trade list.
type TradeSummary struct {
	ID          int64
	PartnerID   int64
	PartnerName string
	Status      string
	Created     time.Time
	Expiration  time.Time
	IsActive    bool
}

// OfferedAsset is one item inside a trade offer.
type OfferedAsset struct {
	UserAssetID  int64
	AssetID      int64
	Name         string
	SerialNumber *int64
}

// Offer is one side of a trade.
type Offer struct {
	UserID int64
	Robux  int64
	Assets []OfferedAsset
}

// TradeDetails is the full breakdown of one trade.
type TradeDetails struct {
	ID      int64
	Status  string
	Created time.Time
	Offers  []Offer
}

type tradeSummaryRaw struct {
	ID   int64 `json:"id"`
	User struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
	Status     string    `json:"status"`
	Created    time.Time `json:"created"`
	Expiration time.Time `json:"expiration"`
	IsActive   bool      `json:"isActive"`
}

type tradeDetailsRaw struct {
	ID      int64     `json:"id"`
	Status  string    `json:"status"`
	Created time.Time `json:"created"`
	Offers  []struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
		Robux      int64 `json:"robux"`
		UserAssets []struct {
			ID           int64  `json:"id"`
			AssetID      int64  `json:"assetId"`
			Name         string `json:"name"`
			SerialNumber *int64 `json:"serialNumber"`
		} `json:"userAssets"`
	} `json:"offers"`
}
