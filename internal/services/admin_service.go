// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fractora/fractora-backend/internal/models"
	"github.com/fractora/fractora-backend/internal/utils"
)

type AdminService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type PlatformStats struct {
	TotalUsers          int64  `json:"total_users"`
	ActiveUsers         int64  `json:"active_users"`
	NewUsersThisMonth   int64  `json:"new_users_this_month"`
	TotalAssets         int64  `json:"total_assets"`
	ActiveAssets        int64  `json:"active_assets"`
	TotalListings       int64  `json:"total_listings"`
	OpenListings        int64  `json:"open_listings"`
	TotalSettlements    int64  `json:"total_settlements"`
	SettlementVolume    uint64 `json:"settlement_volume"`
	MonthlyVolume       uint64 `json:"monthly_volume"`
	TokensInCirculation uint64 `json:"tokens_in_circulation"`
}

type AdminUserFilter struct {
	utils.PaginationParams
	UserType      *models.UserType   `json:"user_type,omitempty"`
	Status        *models.UserStatus `json:"status,omitempty"`
	KYCLevel      *models.KYCLevel   `json:"kyc_level,omitempty"`
	CreatedAfter  *time.Time         `json:"created_after,omitempty"`
	CreatedBefore *time.Time         `json:"created_before,omitempty"`
}

type AdminTransactionFilter struct {
	utils.PaginationParams
	TransactionType *models.TransactionType   `json:"transaction_type,omitempty"`
	Status          *models.TransactionStatus `json:"status,omitempty"`
	BuyerID         *uuid.UUID                `json:"buyer_id,omitempty"`
	SellerID        *uuid.UUID                `json:"seller_id,omitempty"`
	CreatedAfter    *time.Time                `json:"created_after,omitempty"`
	CreatedBefore   *time.Time                `json:"created_before,omitempty"`
}

func NewAdminService(db *gorm.DB, notificationService *NotificationService) *AdminService {
	return &AdminService{
		db:                  db,
		notificationService: notificationService,
	}
}

// Platform statistics
func (s *AdminService) GetPlatformStats() (*PlatformStats, error) {
	stats := &PlatformStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// User statistics
	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&stats.ActiveUsers)
	s.db.Model(&models.User{}).Where("created_at >= ?", monthStart).Count(&stats.NewUsersThisMonth)

	// Asset statistics
	s.db.Model(&models.Asset{}).Count(&stats.TotalAssets)
	s.db.Model(&models.Asset{}).Where("is_active = ?", true).Count(&stats.ActiveAssets)
	s.db.Model(&models.Asset{}).
		Select("COALESCE(SUM(circulating_supply), 0)").Scan(&stats.TokensInCirculation)

	// Listing statistics
	s.db.Model(&models.Listing{}).Count(&stats.TotalListings)
	s.db.Model(&models.Listing{}).Where("is_active = ?", true).Count(&stats.OpenListings)

	// Settlement statistics
	s.db.Model(&models.Transaction{}).
		Where("transaction_type = ? AND status = ?", models.TransactionTypePurchase, models.TransactionStatusCompleted).
		Count(&stats.TotalSettlements)

	s.db.Model(&models.Transaction{}).
		Where("transaction_type = ? AND status = ?", models.TransactionTypePurchase, models.TransactionStatusCompleted).
		Select("COALESCE(SUM(payment_amount), 0)").Scan(&stats.SettlementVolume)

	s.db.Model(&models.Transaction{}).
		Where("transaction_type = ? AND status = ? AND created_at >= ?",
			models.TransactionTypePurchase, models.TransactionStatusCompleted, monthStart).
		Select("COALESCE(SUM(payment_amount), 0)").Scan(&stats.MonthlyVolume)

	return stats, nil
}

// User management
func (s *AdminService) GetUsers(filter AdminUserFilter) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	// Apply filters
	if filter.UserType != nil {
		query = query.Where("user_type = ?", *filter.UserType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.KYCLevel != nil {
		query = query.Where("kyc_level = ?", *filter.KYCLevel)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", search, search)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	query = utils.ApplySort(query, filter.PaginationParams, []string{"created_at", "username", "email"})
	query = utils.ApplyPagination(query, filter.PaginationParams)

	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

func (s *AdminService) UpdateUserStatus(userID, adminID uuid.UUID, status models.UserStatus, reason string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if user.UserType == models.UserTypeAdmin {
		return nil, fmt.Errorf("cannot change status of an admin account")
	}

	user.Status = status
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	// Record the action
	auditLog := &models.AuditLog{
		UserID:       &adminID,
		Action:       fmt.Sprintf("user status changed to %s", status),
		ResourceType: "users",
		ResourceID:   &userID,
		NewValues:    models.JSONB{"status": string(status), "reason": reason},
	}
	s.db.Create(auditLog)

	return &user, nil
}

func (s *AdminService) GetTransactions(filter AdminTransactionFilter) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{})

	if filter.TransactionType != nil {
		query = query.Where("transaction_type = ?", *filter.TransactionType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.BuyerID != nil {
		query = query.Where("buyer_id = ?", *filter.BuyerID)
	}
	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var transactions []models.Transaction
	query = utils.ApplySort(query, filter.PaginationParams, []string{"created_at", "payment_amount", "token_amount"})
	query = utils.ApplyPagination(query, filter.PaginationParams)

	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return transactions, total, nil
}

func (s *AdminService) GetAuditLogs(params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var logs []models.AuditLog
	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, total, nil
}
