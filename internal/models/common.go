// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserType string

const (
	UserTypeIssuer   UserType = "issuer"
	UserTypeInvestor UserType = "investor"
	UserTypeAdmin    UserType = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

type KYCLevel string

const (
	KYCLevelUnverified KYCLevel = "unverified"
	KYCLevelVerified   KYCLevel = "verified"
	KYCLevelAccredited KYCLevel = "accredited"
)

// AssetType is the closed set of tokenizable asset categories. Nothing
// branches on the variant today; it is descriptive metadata.
type AssetType string

const (
	AssetTypeRealEstate AssetType = "real_estate"
	AssetTypeArt        AssetType = "art"
	AssetTypeMusic      AssetType = "music"
	AssetTypeGaming     AssetType = "gaming"
)

func ValidAssetType(t AssetType) bool {
	switch t {
	case AssetTypeRealEstate, AssetTypeArt, AssetTypeMusic, AssetTypeGaming:
		return true
	}
	return false
}

type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusClosed ListingStatus = "closed"
)

type TransactionType string

const (
	TransactionTypeMint     TransactionType = "mint"
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeDeposit  TransactionType = "deposit"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)
