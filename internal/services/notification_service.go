// internal/services/notification_service.go
package services

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fractora/fractora-backend/internal/config"
	"github.com/fractora/fractora-backend/internal/models"
)

type NotificationService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{
		db:  db,
		cfg: cfg,
	}
}

func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	subject := "Welcome to Fractora"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour account is ready. Browse tokenized assets and start building your portfolio at %s.\n",
		user.Username, s.cfg.Frontend.BaseURL)
	return s.sendEmail(user.Email, subject, body)
}

// SendPurchaseConfirmation notifies the buyer of a settled purchase.
func (s *NotificationService) SendPurchaseConfirmation(transaction *models.Transaction) error {
	var buyer models.User
	if err := s.db.First(&buyer, transaction.BuyerID).Error; err != nil {
		return fmt.Errorf("buyer not found: %w", err)
	}

	subject := "Purchase confirmed"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour purchase of %d tokens for %d cents has settled.\nTransaction: %s\n",
		buyer.Username, transaction.TokenAmount, transaction.PaymentAmount, transaction.ID)
	return s.sendEmail(buyer.Email, subject, body)
}

// SendSaleNotification notifies the seller of a settled sale.
func (s *NotificationService) SendSaleNotification(transaction *models.Transaction) error {
	var seller models.User
	if err := s.db.First(&seller, transaction.SellerID).Error; err != nil {
		return fmt.Errorf("seller not found: %w", err)
	}

	subject := "Tokens sold"
	body := fmt.Sprintf(
		"Hi %s,\n\nYou sold %d tokens for %d cents.\nTransaction: %s\n",
		seller.Username, transaction.TokenAmount, transaction.PaymentAmount, transaction.ID)
	return s.sendEmail(seller.Email, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.cfg.Email.SMTPUsername == "" {
		// No SMTP configured; log and move on so local development does
		// not require a mail server.
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email skipped (SMTP not configured)")
		return nil
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.cfg.Email.FromName, s.cfg.Email.FromEmail, to, subject, body)

	addr := s.cfg.Email.SMTPHost + ":" + s.cfg.Email.SMTPPort
	auth := smtp.PlainAuth("", s.cfg.Email.SMTPUsername, s.cfg.Email.SMTPPassword, s.cfg.Email.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.cfg.Email.FromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
