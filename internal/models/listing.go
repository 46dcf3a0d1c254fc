// internal/models/listing.go
package models

import (
	"math"

	"github.com/google/uuid"
)

// Listing is a seller's open offer to sell a bounded quantity of an asset's
// tokens at a fixed unit price. It holds a non-owning reference to its Asset;
// assets are never deleted while listings reference them.
//
// Seller balance is deliberately NOT checked at creation time: a listing is a
// pure data entry, and oversubscription surfaces as a token transfer failure
// at purchase time.
type Listing struct {
	BaseModel
	SellerID uuid.UUID     `json:"seller_id" gorm:"type:uuid;not null;index"`
	AssetRef uuid.UUID     `json:"asset_ref" gorm:"type:uuid;not null;index"`
	Price    uint64        `json:"price" gorm:"not null"`
	Amount   uint64        `json:"amount" gorm:"not null"`
	IsActive bool          `json:"is_active" gorm:"default:true;index"`
	Status   ListingStatus `json:"status" gorm:"type:varchar(20);default:'active';index"`

	// Relationships
	Seller User  `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Asset  Asset `json:"asset,omitempty" gorm:"foreignKey:AssetRef"`
}

// TotalPrice computes price × amount with an explicit overflow check.
func (l *Listing) TotalPrice(amount uint64) (uint64, error) {
	if l.Price != 0 && amount > math.MaxUint64/l.Price {
		return 0, ErrPriceOverflow
	}
	return l.Price * amount, nil
}

// Fill validates a purchase of amount units and decrements the remaining
// amount. When the listing is depleted it closes, exactly once and
// permanently: Active --(amount → 0)--> Closed is the only transition.
func (l *Listing) Fill(amount uint64) error {
	if !l.IsActive {
		return ErrListingInactive
	}
	if amount > l.Amount {
		return ErrInsufficientListingAmount
	}
	l.Amount -= amount
	if l.Amount == 0 {
		l.IsActive = false
		l.Status = ListingStatusClosed
	}
	return nil
}
