// Package profile serves member profile reads and updates.
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
	"github.com/trayd-platform/trayd_service/internal/infrastructure/repositories"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// UserStore reads and writes member identity.
type UserStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update repositories.ProfileUpdate) error
}

// Service manages member profiles.
type Service struct {
	users  UserStore
	logger *logger.Logger
}

func NewService(users UserStore, log *logger.Logger) *Service {
	return &Service{users: users, logger: log}
}

const minPasswordLength = 8

// GetProfile returns the member's profile.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	return s.users.GetProfile(ctx, userID)
}

// UpdateProfile applies the non-empty fields of the request. Passwords are
// hashed before they reach storage.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *entities.UpdateProfileRequest) (*entities.UserProfile, error) {
	if !req.HasChanges() {
		return s.users.GetProfile(ctx, userID)
	}

	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return nil, domainerrors.NewDomainError(domainerrors.ErrInvalidInput, "INVALID_EMAIL", "invalid email address")
	}

	update := repositories.ProfileUpdate{
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.TrimSpace(req.Email),
		Country:       strings.TrimSpace(req.Country),
		WalletAddress: strings.TrimSpace(req.WalletAddress),
	}

	if req.Password != "" {
		hash, err := s.hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = hash
	}
	if req.TransactionPassword != "" {
		hash, err := s.hashPassword(req.TransactionPassword)
		if err != nil {
			return nil, err
		}
		update.TransactionPasswordHash = hash
	}

	if err := s.users.UpdateProfile(ctx, userID, update); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", userID)
	return s.users.GetProfile(ctx, userID)
}

func (s *Service) hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", domainerrors.NewDomainError(domainerrors.ErrInvalidInput, "WEAK_PASSWORD",
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
