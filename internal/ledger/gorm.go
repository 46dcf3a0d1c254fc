// internal/ledger/gorm.go
package ledger

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fractora/fractora-backend/internal/database"
	"github.com/fractora/fractora-backend/internal/models"
)

// GormLedger persists balances as token_balances rows. It never opens its own
// transaction: callers that need multi-step atomicity (settlement) run it
// against a transaction-scoped *gorm.DB via WithTx, so a rollback of the
// enclosing transaction also rolls back every balance mutation.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// WithTx returns a ledger bound to tx. Balance rows touched inside tx are
// locked and mutated within that transaction's scope.
func (l *GormLedger) WithTx(tx *gorm.DB) *GormLedger {
	return &GormLedger{db: tx}
}

func (l *GormLedger) Mint(asset, to uuid.UUID, amount uint64) error {
	balance, err := l.lockBalance(asset, to)
	if err != nil {
		return err
	}

	if amount > math.MaxUint64-balance.Amount {
		return ErrBalanceOverflow
	}

	balance.Amount += amount
	if err := l.db.Save(balance).Error; err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	return nil
}

func (l *GormLedger) Transfer(asset, from, to uuid.UUID, amount uint64, authority uuid.UUID) error {
	if authority != from {
		return ErrNotAuthorized
	}

	source, err := l.lockBalance(asset, from)
	if err != nil {
		return err
	}
	if source.Amount < amount {
		return ErrInsufficientBalance
	}

	dest, err := l.lockBalance(asset, to)
	if err != nil {
		return err
	}
	if amount > math.MaxUint64-dest.Amount {
		return ErrBalanceOverflow
	}

	source.Amount -= amount
	dest.Amount += amount

	if err := l.db.Save(source).Error; err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}
	if err := l.db.Save(dest).Error; err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	return nil
}

func (l *GormLedger) Balance(asset, holder uuid.UUID) (uint64, error) {
	var balance models.TokenBalance
	err := l.db.Where("asset_ref = ? AND holder_id = ?", asset, holder).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	return balance.Amount, nil
}

// Holdings lists every non-zero position held by one account.
func (l *GormLedger) Holdings(holder uuid.UUID) ([]models.TokenBalance, error) {
	var balances []models.TokenBalance
	if err := l.db.Where("holder_id = ? AND amount > 0", holder).
		Preload("Asset").
		Find(&balances).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch holdings: %w", err)
	}
	return balances, nil
}

// HolderCount reports how many accounts hold a non-zero position in asset.
func (l *GormLedger) HolderCount(asset uuid.UUID) (int64, error) {
	var count int64
	if err := l.db.Model(&models.TokenBalance{}).
		Where("asset_ref = ? AND amount > 0", asset).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count holders: %w", err)
	}
	return count, nil
}

// lockBalance fetches the (asset, holder) row FOR UPDATE, creating a zero row
// when the holder has no position yet.
func (l *GormLedger) lockBalance(asset, holder uuid.UUID) (*models.TokenBalance, error) {
	var balance models.TokenBalance
	err := database.WithRowLock(l.db).
		Where("asset_ref = ? AND holder_id = ?", asset, holder).
		First(&balance).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		balance = models.TokenBalance{AssetRef: asset, HolderID: holder}
		if err := l.db.Create(&balance).Error; err != nil {
			return nil, fmt.Errorf("failed to create balance row: %w", err)
		}
		return &balance, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance: %w", err)
	}
	return &balance, nil
}
