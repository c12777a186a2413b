package catalog

// MaxBatchSize is the largest number of items the details endpoint
// accepts in a single call.
const MaxBatchSize = 120

// ItemType distinguishes assets from bundles in catalog lookups.
type ItemType string

// Item types accepted by the catalog.
const (
	ItemTypeAsset  ItemType = "Asset"
	ItemTypeBundle ItemType = "Bundle"
)

// CreatorType is the kind of account that published an item.
type CreatorType string

// Creator types.
const (
	CreatorTypeUser  CreatorType = "User"
	CreatorTypeGroup CreatorType = "Group"
)

// PriceStatus describes the purchasability of an item without a price.
type PriceStatus string

// Price statuses returned by the catalog.
const (
	PriceStatusFree        PriceStatus = "Free"
	PriceStatusOffSale     PriceStatus = "Off Sale"
	PriceStatusNoResellers PriceStatus = "No Resellers"
)

// ItemRef identifies one catalog item in a batch lookup.
type ItemRef struct {
	Type ItemType
	ID   int64
}

// ItemDetails is the catalog's description of one item. Price carries
// the lowest resale price for limiteds and the shop price otherwise;
// it is nil for unpurchasable items.
type ItemDetails struct {
	ID            int64
	Type          ItemType
	Name          string
	Description   string
	ProductID     int64
	CreatorType   CreatorType
	CreatorID     int64
	CreatorName   string
	Price         *int64
	PriceStatus   PriceStatus
	FavoriteCount int64
	Restrictions  []string
}

// IsLimited reports whether the item carries a limited or limited unique
// restriction.
func (d ItemDetails) IsLimited() bool {
	for _, r := range d.Restrictions {
		if r == "Limited" || r == "LimitedUnique" {
			return true
		}
	}
	return false
}

type itemDetailsRequest struct {
	Items []itemRefRaw `json:"items"`
}

type itemRefRaw struct {
	ItemType ItemType `json:"itemType"`
	ID       int64    `json:"id"`
}

type itemDetailsResponse struct {
	Data []itemDetailsRaw `json:"data"`
}

type itemDetailsRaw struct {
	ID               int64       `json:"id"`
	ItemType         ItemType    `json:"itemType"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	ProductID        int64       `json:"productId"`
	CreatorType      CreatorType `json:"creatorType"`
	CreatorTargetID  int64       `json:"creatorTargetId"`
	CreatorName      string      `json:"creatorName"`
	Price            *int64      `json:"price"`
	LowestPrice      *int64      `json:"lowestPrice"`
	PriceStatus      PriceStatus `json:"priceStatus"`
	FavoriteCount    int64       `json:"favoriteCount"`
	ItemRestrictions []string    `json:"itemRestrictions"`
}

func (raw itemDetailsRaw) toDetails() ItemDetails {
	// The catalog reports lowestPrice for limiteds and price otherwise;
	// they never coexist.
	price := raw.Price
	if price == nil {
		price = raw.LowestPrice
	}

	return ItemDetails{
		ID:            raw.ID,
		Type:          raw.ItemType,
		Name:          raw.Name,
		Description:   raw.Description,
		ProductID:     raw.ProductID,
		CreatorType:   raw.CreatorType,
		CreatorID:     raw.CreatorTargetID,
		CreatorName:   raw.CreatorName,
		Price:         price,
		PriceStatus:   raw.PriceStatus,
		FavoriteCount: raw.FavoriteCount,
		Restrictions:  raw.ItemRestrictions,
	}
}
