// internal/services/listing_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fractora/fractora-backend/internal/database"
	"github.com/fractora/fractora-backend/internal/ledger"
	"github.com/fractora/fractora-backend/internal/models"
	"github.com/fractora/fractora-backend/internal/utils"
)

// ListingService owns Listing records and the purchase settlement built on
// top of them.
type ListingService struct {
	db            *gorm.DB
	tokens        *ledger.GormLedger
	payments      *PaymentService
	authorization Authorizer
	notifications *NotificationService
	provenance    *ProvenanceService
}

type CreateListingRequest struct {
	AssetRef uuid.UUID `json:"asset_ref" validate:"required"`
	Price    uint64    `json:"price" validate:"required,min=1"`
	Amount   uint64    `json:"amount" validate:"required,min=1"`
}

type PurchaseRequest struct {
	Amount uint64 `json:"amount" validate:"required,min=1"`
}

type ListingSearchParams struct {
	utils.PaginationParams
	SellerID   *uuid.UUID `json:"seller_id,omitempty"`
	AssetRef   *uuid.UUID `json:"asset_ref,omitempty"`
	PriceMin   *uint64    `json:"price_min,omitempty"`
	PriceMax   *uint64    `json:"price_max,omitempty"`
	ActiveOnly bool       `json:"active_only,omitempty"`
}

func NewListingService(db *gorm.DB, tokens *ledger.GormLedger, payments *PaymentService, authorization Authorizer, notifications *NotificationService, provenance *ProvenanceService) *ListingService {
	return &ListingService{
		db:            db,
		tokens:        tokens,
		payments:      payments,
		authorization: authorization,
		notifications: notifications,
		provenance:    provenance,
	}
}

// CreateListing records an open offer. The seller's token balance is
// deliberately not checked here: creation is a pure data entry, and an
// oversubscribed listing surfaces as a token transfer failure at purchase
// time.
func (s *ListingService) CreateListing(sellerID uuid.UUID, req *CreateListingRequest) (*models.Listing, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.authorization.Authorize(sellerID, sellerID); err != nil {
		return nil, err
	}

	// The listing keeps a read-only reference to its asset; only existence
	// is verified.
	var asset models.Asset
	if err := s.db.First(&asset, req.AssetRef).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("asset not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	listing := &models.Listing{
		SellerID: sellerID,
		AssetRef: req.AssetRef,
		Price:    req.Price,
		Amount:   req.Amount,
		IsActive: true,
		Status:   models.ListingStatusActive,
	}

	if err := s.db.Create(listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	s.db.Preload("Seller").Preload("Asset").First(listing, listing.ID)
	return listing, nil
}

// Purchase settles a buy of amount units against the listing. Both legs,
// the listing decrement and the resulting records run in one database
// transaction with the listing row locked, so concurrent purchases against
// the same listing serialize and any failing leg rolls back every other one.
func (s *ListingService) Purchase(listingID, buyerID uuid.UUID, req *PurchaseRequest) (*models.Transaction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.authorization.Authorize(buyerID, buyerID); err != nil {
		return nil, err
	}

	var record *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := database.WithRowLock(tx).
			First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("listing not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		engine := NewSettlement(s.payments.MoverWithTx(tx), s.tokens.WithTx(tx))
		totalPrice, err := engine.Execute(&listing, buyerID, req.Amount)
		if err != nil {
			return err
		}

		if err := tx.Save(&listing).Error; err != nil {
			return fmt.Errorf("failed to update listing: %w", err)
		}

		now := time.Now()
		record = &models.Transaction{
			TransactionType: models.TransactionTypePurchase,
			BuyerID:         buyerID,
			SellerID:        listing.SellerID,
			AssetRef:        &listing.AssetRef,
			ListingRef:      &listing.ID,
			TokenAmount:     req.Amount,
			PaymentAmount:   totalPrice,
			Status:          models.TransactionStatusCompleted,
			ProcessedAt:     &now,
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to record settlement: %w", err)
		}

		_, err = s.provenance.Record(tx, listing.AssetRef, ProvenanceRecordSettlement, listing.SellerID, &buyerID, req.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		go s.notifications.SendPurchaseConfirmation(record)
		go s.notifications.SendSaleNotification(record)
	}

	s.db.Preload("Buyer").Preload("Seller").Preload("Asset").Preload("Listing").First(record, record.ID)
	return record, nil
}

func (s *ListingService) GetListing(id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.Preload("Seller").Preload("Asset").First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("listing not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &listing, nil
}

func (s *ListingService) SearchListings(params ListingSearchParams) ([]models.Listing, int64, error) {
	query := s.db.Model(&models.Listing{}).Preload("Seller").Preload("Asset")

	if params.SellerID != nil {
		query = query.Where("seller_id = ?", *params.SellerID)
	}
	if params.AssetRef != nil {
		query = query.Where("asset_ref = ?", *params.AssetRef)
	}
	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	allowedSortFields := []string{"created_at", "price", "amount"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var listings []models.Listing
	if err := query.Find(&listings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return listings, total, nil
}

func (s *ListingService) GetSellerListings(sellerID uuid.UUID, params utils.PaginationParams) ([]models.Listing, int64, error) {
	return s.SearchListings(ListingSearchParams{
		PaginationParams: params,
		SellerID:         &sellerID,
	})
}
