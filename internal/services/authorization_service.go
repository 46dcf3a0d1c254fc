// internal/services/authorization_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fractora/fractora-backend/internal/models"
)

// Authorizer decides whether an authenticated actor may act as a given
// account. Signature verification of the actor happens upstream (JWT
// middleware); this capability only encodes which identity must authorize a
// mutation, not how that identity was proven.
type Authorizer interface {
	Authorize(actorID, accountID uuid.UUID) error
}

var ErrNotAuthorized = errors.New("actor is not authorized for this account")

type AuthorizationService struct {
	db *gorm.DB
}

func NewAuthorizationService(db *gorm.DB) *AuthorizationService {
	return &AuthorizationService{db: db}
}

// Authorize permits an actor to move an account's value only when the actor
// is that account and the account is in good standing.
func (s *AuthorizationService) Authorize(actorID, accountID uuid.UUID) error {
	if actorID != accountID {
		return ErrNotAuthorized
	}

	var user models.User
	if err := s.db.First(&user, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAuthorized
		}
		return fmt.Errorf("failed to load account: %w", err)
	}

	if user.Status != models.UserStatusActive {
		return ErrNotAuthorized
	}
	return nil
}
