// internal/services/settlement.go
package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fractora/fractora-backend/internal/models"
)

// PaymentMover executes the currency leg of a settlement.
type PaymentMover interface {
	MovePayment(from, to uuid.UUID, amount uint64) error
}

// TokenMover executes the token leg of a settlement. ledger.Ledger
// satisfies it.
type TokenMover interface {
	Transfer(asset, from, to uuid.UUID, amount uint64, authority uuid.UUID) error
}

// Settlement couples the currency transfer and the token transfer of one
// purchase into a single indivisible operation. The engine sequences the
// legs in program order (payment before tokens) and propagates any failure
// upward immediately, without compensation of its own: both movers must be
// bound to the same enclosing database transaction, whose rollback undoes
// every leg together.
type Settlement struct {
	payments PaymentMover
	tokens   TokenMover
}

func NewSettlement(payments PaymentMover, tokens TokenMover) *Settlement {
	return &Settlement{payments: payments, tokens: tokens}
}

// Execute settles a purchase of amount units against the listing and returns
// the total price paid. The listing is mutated last, so on any failure it is
// exactly as it was before the call.
func (s *Settlement) Execute(listing *models.Listing, buyerID uuid.UUID, amount uint64) (uint64, error) {
	if !listing.IsActive {
		return 0, models.ErrListingInactive
	}
	if amount > listing.Amount {
		return 0, models.ErrInsufficientListingAmount
	}

	totalPrice, err := listing.TotalPrice(amount)
	if err != nil {
		return 0, err
	}

	// Currency leg: buyer pays seller.
	if err := s.payments.MovePayment(buyerID, listing.SellerID, totalPrice); err != nil {
		return 0, fmt.Errorf("payment leg failed: %w", err)
	}

	// Token leg: seller's tokens move to the buyer, seller as authority.
	if err := s.tokens.Transfer(listing.AssetRef, listing.SellerID, buyerID, amount, listing.SellerID); err != nil {
		return 0, fmt.Errorf("token leg failed: %w", err)
	}

	if err := listing.Fill(amount); err != nil {
		return 0, err
	}
	return totalPrice, nil
}
