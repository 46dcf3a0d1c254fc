// internal/models/errors.go
package models

import "errors"

// Invariant violations surfaced by state transitions on Asset and Listing.
// All of these are precondition failures, never transient: callers must treat
// them as fatal to the attempted operation.
var (
	// ErrAssetInactive is returned when minting is attempted on a
	// deactivated asset.
	ErrAssetInactive = errors.New("asset is not active")

	// ErrSupplyExceeded is returned when a mint would push circulating
	// supply past total supply, including when the addition itself would
	// overflow.
	ErrSupplyExceeded = errors.New("amount exceeds maximum supply")

	// ErrListingInactive is returned when a purchase is attempted against a
	// closed listing. Closed is terminal; there is no reactivation path.
	ErrListingInactive = errors.New("listing is not active")

	// ErrInsufficientListingAmount is returned when a purchase requests more
	// units than the listing has remaining.
	ErrInsufficientListingAmount = errors.New("insufficient amount in listing")

	// ErrPriceOverflow is returned when unit price times purchase amount
	// does not fit in uint64.
	ErrPriceOverflow = errors.New("total price overflows")
)
