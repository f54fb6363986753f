package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
	"github.com/trayd-platform/trayd_service/internal/infrastructure/repositories"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserProfile), args.Error(1)
}

func (m *mockUsers) UpdateProfile(ctx context.Context, userID uuid.UUID, update repositories.ProfileUpdate) error {
	args := m.Called(ctx, userID, update)
	return args.Error(0)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("hashes the password before storage", func(t *testing.T) {
		users := new(mockUsers)
		svc := NewService(users, logger.New("error", "test"))

		users.On("UpdateProfile", ctx, userID, mock.MatchedBy(func(update repositories.ProfileUpdate) bool {
			if update.PasswordHash == "" || update.PasswordHash == "hunter2hunter2" {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(update.PasswordHash), []byte("hunter2hunter2")) == nil
		})).Return(nil)
		users.On("GetProfile", ctx, userID).Return(&entities.UserProfile{MemberCode: "TAI768273"}, nil)

		_, err := svc.UpdateProfile(ctx, userID, &entities.UpdateProfileRequest{Password: "hunter2hunter2"})
		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		users := new(mockUsers)
		svc := NewService(users, logger.New("error", "test"))

		_, err := svc.UpdateProfile(ctx, userID, &entities.UpdateProfileRequest{Password: "short"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
		users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		users := new(mockUsers)
		svc := NewService(users, logger.New("error", "test"))

		_, err := svc.UpdateProfile(ctx, userID, &entities.UpdateProfileRequest{Email: "not-an-email"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	})

	t.Run("empty request is a read", func(t *testing.T) {
		users := new(mockUsers)
		svc := NewService(users, logger.New("error", "test"))

		users.On("GetProfile", ctx, userID).Return(&entities.UserProfile{MemberCode: "TAI768273"}, nil)

		got, err := svc.UpdateProfile(ctx, userID, &entities.UpdateProfileRequest{})
		require.NoError(t, err)
		assert.Equal(t, "TAI768273", got.MemberCode)
		users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})
}
