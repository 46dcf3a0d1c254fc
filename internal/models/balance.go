// internal/models/balance.go
package models

import "github.com/google/uuid"

// TokenBalance is one fungible-token position: units of one asset held by one
// account. Rows are keyed (asset, holder) and mutated only by the ledger.
type TokenBalance struct {
	BaseModel
	AssetRef uuid.UUID `json:"asset_ref" gorm:"type:uuid;not null;uniqueIndex:idx_token_balances_asset_holder"`
	HolderID uuid.UUID `json:"holder_id" gorm:"type:uuid;not null;uniqueIndex:idx_token_balances_asset_holder"`
	Amount   uint64    `json:"amount" gorm:"not null;default:0"`

	// Relationships
	Asset  Asset `json:"asset,omitempty" gorm:"foreignKey:AssetRef"`
	Holder User  `json:"holder,omitempty" gorm:"foreignKey:HolderID"`
}

// PaymentAccount holds a user's spendable payment balance in cents.
// Funded by confirmed deposits; debited by marketplace settlements.
type PaymentAccount struct {
	BaseModel
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	Balance uint64    `json:"balance" gorm:"not null;default:0"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
