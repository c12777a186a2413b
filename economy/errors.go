package economy

import (
	"errors"
	"fmt"
)

// Purchase failures the service reports through its error message rather
// than a status code. PurchaseLimited maps the known messages onto these
// so callers can branch without string matching.
var (
	// ErrPendingTransaction is also what the service reports when it has
	// no better error to give; retrying after a short wait is reasonable
	// until ErrNotForSale appears.
	ErrPendingTransaction = errors.New("purchase failed: pending transaction")

	// ErrAlreadyOwned is returned when buying an item the account owns.
	ErrAlreadyOwned = errors.New("purchase failed: item already owned")

	// ErrNotForSale is terminal; the listing is gone.
	ErrNotForSale = errors.New("purchase failed: item not for sale")

	// ErrInsufficientRobux is terminal until the balance changes.
	ErrInsufficientRobux = errors.New("purchase failed: not enough robux")

	// ErrPriceChanged means the listing's price moved between lookup and
	// purchase; re-fetch the listing and try again.
	ErrPriceChanged = errors.New("purchase failed: price changed")
)

// UnknownPurchaseError carries a purchase failure message this package
// does not recognize.
type UnknownPurchaseError struct {
	Message string
}

// Error implements the error interface.
func (e *UnknownPurchaseError) Error() string {
	return fmt.Sprintf("purchase failed: %s", e.Message)
}

// classifyPurchaseFailure maps the service's free-text purchase failure
// messages onto the closed error set above.
func classifyPurchaseFailure(message string) error {
	switch message {
	case "You have a pending transaction. Please wait 1 minute and try again.":
		return ErrPendingTransaction
	case "You already own this item.":
		return ErrAlreadyOwned
	case "This item is not for sale.":
		return ErrNotForSale
	case "You do not have enough Robux to purchase this item.":
		return ErrInsufficientRobux
	case "This item has changed price. Please try again.":
		return ErrPriceChanged
	default:
		return &UnknownPurchaseError{Message: message}
	}
}
