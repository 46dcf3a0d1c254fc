// internal/services/provenance_service.go
package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fractora/fractora-backend/internal/models"
)

const (
	ProvenanceRecordRegistration = "registration"
	ProvenanceRecordMint         = "mint"
	ProvenanceRecordSettlement   = "settlement"
	ProvenanceRecordDeactivation = "deactivation"
)

// ProvenanceService maintains a per-asset hash chain of lifecycle events:
// registration, mints, settlements, deactivation. Each record hashes its
// content plus the previous record's hash, giving every asset a verifiable
// owner history.
type ProvenanceService struct {
	db *gorm.DB
}

func NewProvenanceService(db *gorm.DB) *ProvenanceService {
	return &ProvenanceService{db: db}
}

// Record appends an entry to the asset's chain using tx, so provenance
// commits or rolls back with the operation it describes.
func (s *ProvenanceService) Record(tx *gorm.DB, assetRef uuid.UUID, recordType string, actorID uuid.UUID, counterparty *uuid.UUID, amount uint64) (*models.ProvenanceRecord, error) {
	previousHash, err := s.chainHead(tx, assetRef)
	if err != nil {
		return nil, err
	}

	record := &models.ProvenanceRecord{
		AssetRef:     assetRef,
		RecordType:   recordType,
		ActorID:      actorID,
		Counterparty: counterparty,
		Amount:       amount,
		PreviousHash: previousHash,
	}
	record.RecordHash = hashRecord(record)

	if err := tx.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create provenance record: %w", err)
	}
	return record, nil
}

// GetAssetProvenance returns the asset's chain oldest-first.
func (s *ProvenanceService) GetAssetProvenance(assetRef uuid.UUID) ([]models.ProvenanceRecord, error) {
	var records []models.ProvenanceRecord
	if err := s.db.Where("asset_ref = ?", assetRef).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch provenance: %w", err)
	}
	return records, nil
}

// VerifyChain recomputes every hash in the asset's chain and checks linkage.
func (s *ProvenanceService) VerifyChain(assetRef uuid.UUID) (bool, error) {
	records, err := s.GetAssetProvenance(assetRef)
	if err != nil {
		return false, err
	}

	previousHash := ""
	for i := range records {
		record := &records[i]
		if record.PreviousHash != previousHash {
			return false, nil
		}
		if hashRecord(record) != record.RecordHash {
			return false, nil
		}
		previousHash = record.RecordHash
	}
	return true, nil
}

func (s *ProvenanceService) chainHead(tx *gorm.DB, assetRef uuid.UUID) (string, error) {
	var head models.ProvenanceRecord
	err := tx.Where("asset_ref = ?", assetRef).
		Order("created_at DESC").
		First(&head).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read chain head: %w", err)
	}
	return head.RecordHash, nil
}

func hashRecord(r *models.ProvenanceRecord) string {
	counterparty := ""
	if r.Counterparty != nil {
		counterparty = r.Counterparty.String()
	}
	payload := fmt.Sprintf("%s|%s|%s|%s|%d|%s",
		r.AssetRef, r.RecordType, r.ActorID, counterparty, r.Amount, r.PreviousHash)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
