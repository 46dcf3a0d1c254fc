// internal/models/asset.go
package models

import (
	"math"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	MaxAssetIDLength     = 50
	MaxMetadataURILength = 200
)

// Asset represents one tokenizable thing with a fixed maximum supply.
// OwnerID is set at registration and never reassigned.
type Asset struct {
	BaseModel
	OwnerID           uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;index"`
	AssetID           string         `json:"asset_id" gorm:"size:50;not null;index"`
	AssetType         AssetType      `json:"asset_type" gorm:"type:varchar(20);not null;index"`
	Title             string         `json:"title" gorm:"size:255"`
	Description       string         `json:"description" gorm:"type:text"`
	TotalSupply       uint64         `json:"total_supply" gorm:"not null"`
	CirculatingSupply uint64         `json:"circulating_supply" gorm:"not null;default:0"`
	MetadataURI       string         `json:"metadata_uri" gorm:"size:200"`
	Valuation         uint64         `json:"valuation" gorm:"not null;default:0"`
	IsActive          bool           `json:"is_active" gorm:"default:true;index"`
	Images            pq.StringArray `json:"images" gorm:"type:text[]"`
	Location          string         `json:"location,omitempty" gorm:"size:255"`
	ExpectedYield     float64        `json:"expected_yield" gorm:"type:decimal(5,2);default:0"`

	// Relationships
	Owner    User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Listings []Listing `json:"listings,omitempty" gorm:"foreignKey:AssetRef"`
}

// Mint records amount newly minted units against the supply cap.
// CirculatingSupply is monotonically non-decreasing and never exceeds
// TotalSupply; the headroom comparison avoids overflow on the addition.
func (a *Asset) Mint(amount uint64) error {
	if !a.IsActive {
		return ErrAssetInactive
	}
	if amount > a.TotalSupply-a.CirculatingSupply {
		return ErrSupplyExceeded
	}
	a.CirculatingSupply += amount
	return nil
}

// RemainingSupply is the number of units still mintable.
func (a *Asset) RemainingSupply() uint64 {
	return a.TotalSupply - a.CirculatingSupply
}

// EstimatedValue prices amount units against the asset valuation,
// informational only. Multiplying before dividing keeps valuations smaller
// than the supply from truncating to zero; when the product would overflow
// the per-unit order is used instead.
func (a *Asset) EstimatedValue(amount uint64) uint64 {
	if a.TotalSupply == 0 {
		return 0
	}
	if amount != 0 && a.Valuation > math.MaxUint64/amount {
		return a.Valuation / a.TotalSupply * amount
	}
	return a.Valuation * amount / a.TotalSupply
}

// Deactivate permanently stops further minting. Existing tokens, listings
// and settlements are unaffected.
func (a *Asset) Deactivate() {
	a.IsActive = false
}
