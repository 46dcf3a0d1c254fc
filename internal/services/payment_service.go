// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/fractora/fractora-backend/internal/config"
	"github.com/fractora/fractora-backend/internal/database"
	"github.com/fractora/fractora-backend/internal/models"
	"github.com/fractora/fractora-backend/internal/utils"
)

var ErrInsufficientFunds = errors.New("insufficient payment balance")

// PaymentService owns payment accounts (cents) funded through Stripe and
// provides the currency leg used by marketplace settlement.
type PaymentService struct {
	db  *gorm.DB
	cfg *config.Config
}

type CreateDepositRequest struct {
	Amount   uint64 `json:"amount" validate:"required,min=1"` // cents
	Currency string `json:"currency,omitempty"`
}

type DepositIntentResponse struct {
	ClientSecret  string    `json:"client_secret"`
	PaymentID     string    `json:"payment_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Status        string    `json:"status"`
}

type ConfirmDepositRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	TransactionID   uuid.UUID `json:"transaction_id" validate:"required"`
}

func NewPaymentService(db *gorm.DB, cfg *config.Config) *PaymentService {
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PaymentService{
		db:  db,
		cfg: cfg,
	}
}

// CreateDeposit opens a Stripe PaymentIntent for topping up the user's
// payment account and records a pending deposit transaction.
func (s *PaymentService) CreateDeposit(userID uuid.UUID, req *CreateDepositRequest) (*DepositIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(req.Amount)),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("user_id", userID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	transaction := &models.Transaction{
		TransactionType:  models.TransactionTypeDeposit,
		BuyerID:          userID,
		PaymentAmount:    req.Amount,
		PaymentReference: pi.ID,
		Status:           models.TransactionStatusPending,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to record deposit: %w", err)
	}

	return &DepositIntentResponse{
		ClientSecret:  pi.ClientSecret,
		PaymentID:     pi.ID,
		TransactionID: transaction.ID,
		Status:        string(pi.Status),
	}, nil
}

// ConfirmDeposit credits the payment account once Stripe reports the intent
// as succeeded. The credit and the transaction status change commit together.
func (s *PaymentService) ConfirmDeposit(req *ConfirmDepositRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return fmt.Errorf("failed to get payment intent: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		if err := database.WithRowLock(tx).
			First(&transaction, req.TransactionID).Error; err != nil {
			return fmt.Errorf("transaction not found: %w", err)
		}

		if transaction.Status != models.TransactionStatusPending {
			return errors.New("deposit is not pending")
		}
		if transaction.PaymentReference != pi.ID {
			return errors.New("payment reference mismatch")
		}

		switch pi.Status {
		case stripe.PaymentIntentStatusSucceeded:
			account, err := lockPaymentAccount(tx, transaction.BuyerID)
			if err != nil {
				return err
			}
			if transaction.PaymentAmount > math.MaxUint64-account.Balance {
				return ErrPaymentOverflow
			}
			account.Balance += transaction.PaymentAmount
			if err := tx.Save(account).Error; err != nil {
				return fmt.Errorf("failed to credit account: %w", err)
			}

			now := time.Now()
			transaction.Status = models.TransactionStatusCompleted
			transaction.ProcessedAt = &now

		case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
			// Still pending; nothing to apply.

		default:
			transaction.Status = models.TransactionStatusFailed
		}

		if err := tx.Save(&transaction).Error; err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		return nil
	})
}

var ErrPaymentOverflow = errors.New("payment balance overflows")

func (s *PaymentService) GetBalance(userID uuid.UUID) (uint64, error) {
	var account models.PaymentAccount
	err := s.db.Where("user_id = ?", userID).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read payment account: %w", err)
	}
	return account.Balance, nil
}

func (s *PaymentService) GetPaymentHistory(userID uuid.UUID, params utils.PaginationParams) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{}).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Preload("Asset").Preload("Listing")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	allowedSortFields := []string{"created_at", "payment_amount", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return transactions, total, nil
}

// MoverWithTx returns a PaymentMover bound to tx so settlement's currency leg
// joins the purchase transaction.
func (s *PaymentService) MoverWithTx(tx *gorm.DB) PaymentMover {
	return &accountMover{db: tx}
}

type accountMover struct {
	db *gorm.DB
}

func (m *accountMover) MovePayment(from, to uuid.UUID, amount uint64) error {
	source, err := lockPaymentAccount(m.db, from)
	if err != nil {
		return err
	}
	if source.Balance < amount {
		return ErrInsufficientFunds
	}

	dest, err := lockPaymentAccount(m.db, to)
	if err != nil {
		return err
	}
	if amount > math.MaxUint64-dest.Balance {
		return ErrPaymentOverflow
	}

	source.Balance -= amount
	dest.Balance += amount

	if err := m.db.Save(source).Error; err != nil {
		return fmt.Errorf("failed to debit payer: %w", err)
	}
	if err := m.db.Save(dest).Error; err != nil {
		return fmt.Errorf("failed to credit payee: %w", err)
	}
	return nil
}

func lockPaymentAccount(tx *gorm.DB, userID uuid.UUID) (*models.PaymentAccount, error) {
	var account models.PaymentAccount
	err := database.WithRowLock(tx).
		Where("user_id = ?", userID).
		First(&account).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		account = models.PaymentAccount{UserID: userID}
		if err := tx.Create(&account).Error; err != nil {
			return nil, fmt.Errorf("failed to create payment account: %w", err)
		}
		return &account, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock payment account: %w", err)
	}
	return &account, nil
}
