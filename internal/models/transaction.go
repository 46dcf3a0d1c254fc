// internal/models/transaction.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is the persisted record of a value movement: a mint, a token
// transfer, a marketplace purchase, or a payment-account deposit. Purchases
// record both legs (payment total and token amount) of one settlement.
type Transaction struct {
	BaseModel
	TransactionType  TransactionType   `json:"transaction_type" gorm:"type:varchar(20);not null;index"`
	BuyerID          uuid.UUID         `json:"buyer_id" gorm:"type:uuid;not null;index"`
	SellerID         uuid.UUID         `json:"seller_id" gorm:"type:uuid;index"`
	AssetRef         *uuid.UUID        `json:"asset_ref" gorm:"type:uuid;index"`
	ListingRef       *uuid.UUID        `json:"listing_ref" gorm:"type:uuid;index"`
	TokenAmount      uint64            `json:"token_amount" gorm:"not null;default:0"`
	PaymentAmount    uint64            `json:"payment_amount" gorm:"not null;default:0"`
	PaymentReference string            `json:"payment_reference" gorm:"size:255"`
	Status           TransactionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ProcessedAt      *time.Time        `json:"processed_at"`

	// Relationships
	Buyer   User     `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
	Seller  User     `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Asset   *Asset   `json:"asset,omitempty" gorm:"foreignKey:AssetRef"`
	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingRef"`
}

// ProvenanceRecord is a hash-chained audit entry for an asset's lifecycle:
// registration, mints and settlements, in order. The chain gives each asset a
// verifiable owner history without an external chain dependency.
type ProvenanceRecord struct {
	BaseModel
	AssetRef     uuid.UUID  `json:"asset_ref" gorm:"type:uuid;not null;index"`
	RecordType   string     `json:"record_type" gorm:"size:30;not null"`
	ActorID      uuid.UUID  `json:"actor_id" gorm:"type:uuid;not null"`
	Counterparty *uuid.UUID `json:"counterparty,omitempty" gorm:"type:uuid"`
	Amount       uint64     `json:"amount" gorm:"not null;default:0"`
	RecordHash   string     `json:"record_hash" gorm:"size:64;not null;uniqueIndex"`
	PreviousHash string     `json:"previous_hash" gorm:"size:64"`

	// Relationships
	Asset Asset `json:"asset,omitempty" gorm:"foreignKey:AssetRef"`
}

type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:255;not null"`
	ResourceType string     `json:"resource_type" gorm:"size:50;index"`
	ResourceID   *uuid.UUID `json:"resource_id" gorm:"type:uuid;index"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"size:500"`
	NewValues    JSONB      `json:"new_values" gorm:"type:jsonb"`
}
