// internal/services/asset_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fractora/fractora-backend/internal/database"
	"github.com/fractora/fractora-backend/internal/ledger"
	"github.com/fractora/fractora-backend/internal/models"
	"github.com/fractora/fractora-backend/internal/utils"
)

// AssetService is the asset registry: it owns the Asset record lifecycle
// (registration, supply accounting, activation flag) and delegates balance
// movement to the token ledger.
type AssetService struct {
	db            *gorm.DB
	tokens        *ledger.GormLedger
	authorization Authorizer
	provenance    *ProvenanceService
}

type InitializeAssetRequest struct {
	AssetID       string           `json:"asset_id" validate:"required,max=50"`
	AssetType     models.AssetType `json:"asset_type" validate:"required"`
	Title         string           `json:"title" validate:"required,min=3,max=255"`
	Description   string           `json:"description,omitempty"`
	TotalSupply   uint64           `json:"total_supply" validate:"required,min=1"`
	MetadataURI   string           `json:"metadata_uri" validate:"required,max=200"`
	Valuation     uint64           `json:"valuation"`
	Images        []string         `json:"images,omitempty"`
	Location      string           `json:"location,omitempty"`
	ExpectedYield float64          `json:"expected_yield,omitempty" validate:"omitempty,min=0,max=100"`
}

type MintRequest struct {
	RecipientID uuid.UUID `json:"recipient_id" validate:"required"`
	Amount      uint64    `json:"amount" validate:"required,min=1"`
}

type TransferTokensRequest struct {
	FromID uuid.UUID `json:"from_id" validate:"required"`
	ToID   uuid.UUID `json:"to_id" validate:"required"`
	Amount uint64    `json:"amount" validate:"required,min=1"`
}

type AssetSearchParams struct {
	utils.PaginationParams
	OwnerID      *uuid.UUID        `json:"owner_id,omitempty"`
	AssetType    *models.AssetType `json:"asset_type,omitempty"`
	ValuationMin *uint64           `json:"valuation_min,omitempty"`
	ValuationMax *uint64           `json:"valuation_max,omitempty"`
	ActiveOnly   bool              `json:"active_only,omitempty"`
}

func NewAssetService(db *gorm.DB, tokens *ledger.GormLedger, authorization Authorizer, provenance *ProvenanceService) *AssetService {
	return &AssetService{
		db:            db,
		tokens:        tokens,
		authorization: authorization,
		provenance:    provenance,
	}
}

// InitializeAsset registers a new asset with zero circulating supply.
// AssetID uniqueness is not enforced here; the identifier is opaque to the
// registry and collisions are the storage layer's concern.
func (s *AssetService) InitializeAsset(ownerID uuid.UUID, req *InitializeAssetRequest) (*models.Asset, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !models.ValidAssetType(req.AssetType) {
		return nil, errors.New("unknown asset type")
	}

	if err := s.authorization.Authorize(ownerID, ownerID); err != nil {
		return nil, err
	}

	asset := &models.Asset{
		OwnerID:           ownerID,
		AssetID:           req.AssetID,
		AssetType:         req.AssetType,
		Title:             req.Title,
		Description:       req.Description,
		TotalSupply:       req.TotalSupply,
		CirculatingSupply: 0,
		MetadataURI:       req.MetadataURI,
		Valuation:         req.Valuation,
		IsActive:          true,
		Images:            req.Images,
		Location:          req.Location,
		ExpectedYield:     req.ExpectedYield,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(asset).Error; err != nil {
			return fmt.Errorf("failed to create asset: %w", err)
		}
		_, err := s.provenance.Record(tx, asset.ID, ProvenanceRecordRegistration, ownerID, nil, asset.TotalSupply)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Owner").First(asset, asset.ID)
	return asset, nil
}

// MintAssetTokens increases circulating supply and credits the recipient on
// the ledger, as one atomic step: the supply counter and the ledger balance
// commit or roll back together. Only the asset owner may authorize a mint.
func (s *AssetService) MintAssetTokens(assetID, actorID uuid.UUID, req *MintRequest) (*models.Asset, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var asset models.Asset
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := database.WithRowLock(tx).
			First(&asset, assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("asset not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := s.authorization.Authorize(actorID, asset.OwnerID); err != nil {
			return err
		}

		if err := asset.Mint(req.Amount); err != nil {
			return err
		}

		if err := s.tokens.WithTx(tx).Mint(asset.ID, req.RecipientID, req.Amount); err != nil {
			return fmt.Errorf("ledger mint failed: %w", err)
		}

		if err := tx.Save(&asset).Error; err != nil {
			return fmt.Errorf("failed to update supply: %w", err)
		}

		now := time.Now()
		record := &models.Transaction{
			TransactionType: models.TransactionTypeMint,
			BuyerID:         req.RecipientID,
			SellerID:        asset.OwnerID,
			AssetRef:        &asset.ID,
			TokenAmount:     req.Amount,
			Status:          models.TransactionStatusCompleted,
			ProcessedAt:     &now,
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to record mint: %w", err)
		}

		_, err := s.provenance.Record(tx, asset.ID, ProvenanceRecordMint, actorID, &req.RecipientID, req.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

// TransferAssetTokens forwards to the ledger's transfer primitive. The only
// rule added here is that the actor must be authorized as the source holder;
// balance and authority enforcement belong to the ledger.
func (s *AssetService) TransferAssetTokens(assetID, actorID uuid.UUID, req *TransferTokensRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.authorization.Authorize(actorID, req.FromID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.tokens.WithTx(tx).Transfer(assetID, req.FromID, req.ToID, req.Amount, req.FromID); err != nil {
			return err
		}

		now := time.Now()
		record := &models.Transaction{
			TransactionType: models.TransactionTypeTransfer,
			BuyerID:         req.ToID,
			SellerID:        req.FromID,
			AssetRef:        &assetID,
			TokenAmount:     req.Amount,
			Status:          models.TransactionStatusCompleted,
			ProcessedAt:     &now,
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to record transfer: %w", err)
		}
		return nil
	})
}

// DeactivateAsset permanently stops minting for the asset. Listings and
// settlements against already-minted tokens are unaffected.
func (s *AssetService) DeactivateAsset(assetID, actorID uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := database.WithRowLock(tx).
			First(&asset, assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("asset not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := s.authorization.Authorize(actorID, asset.OwnerID); err != nil {
			return err
		}

		if !asset.IsActive {
			return models.ErrAssetInactive
		}
		asset.Deactivate()

		if err := tx.Save(&asset).Error; err != nil {
			return fmt.Errorf("failed to deactivate asset: %w", err)
		}

		_, err := s.provenance.Record(tx, asset.ID, ProvenanceRecordDeactivation, actorID, nil, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *AssetService) GetAsset(id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Preload("Owner").First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("asset not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &asset, nil
}

func (s *AssetService) SearchAssets(params AssetSearchParams) ([]models.Asset, int64, error) {
	query := s.db.Model(&models.Asset{}).Preload("Owner")

	if params.OwnerID != nil {
		query = query.Where("owner_id = ?", *params.OwnerID)
	}
	if params.AssetType != nil {
		query = query.Where("asset_type = ?", *params.AssetType)
	}
	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}
	if params.ValuationMin != nil {
		query = query.Where("valuation >= ?", *params.ValuationMin)
	}
	if params.ValuationMax != nil {
		query = query.Where("valuation <= ?", *params.ValuationMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "valuation", "total_supply"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var assets []models.Asset
	if err := query.Find(&assets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch assets: %w", err)
	}

	return assets, total, nil
}

func (s *AssetService) GetOwnerAssets(ownerID uuid.UUID, params utils.PaginationParams) ([]models.Asset, int64, error) {
	return s.SearchAssets(AssetSearchParams{
		PaginationParams: params,
		OwnerID:          &ownerID,
	})
}

func (s *AssetService) GetAssetStatistics(assetID uuid.UUID) (map[string]interface{}, error) {
	asset, err := s.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	holders, err := s.tokens.HolderCount(assetID)
	if err != nil {
		return nil, err
	}

	var settlementVolume struct {
		TotalTokens   uint64 `json:"total_tokens"`
		TotalPayments uint64 `json:"total_payments"`
		Count         int64  `json:"count"`
	}
	s.db.Model(&models.Transaction{}).
		Where("asset_ref = ? AND transaction_type = ? AND status = ?",
			assetID, models.TransactionTypePurchase, models.TransactionStatusCompleted).
		Select("COALESCE(SUM(token_amount), 0) AS total_tokens, COALESCE(SUM(payment_amount), 0) AS total_payments, COUNT(*) AS count").
		Scan(&settlementVolume)

	return map[string]interface{}{
		"total_supply":       asset.TotalSupply,
		"circulating_supply": asset.CirculatingSupply,
		"remaining_supply":   asset.RemainingSupply(),
		"is_active":          asset.IsActive,
		"valuation":          asset.Valuation,
		"holder_count":       holders,
		"settlement_volume":  settlementVolume,
		"created_at":         asset.CreatedAt,
	}, nil
}
