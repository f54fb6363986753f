package funding

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) PostDeposit(ctx context.Context, userID uuid.UUID, entry *entities.DepositEntry) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *mockLedger) ListDeposits(ctx context.Context, userID uuid.UUID) ([]*entities.DepositEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DepositEntry), args.Error(1)
}

func (m *mockLedger) ListIncome(ctx context.Context, userID uuid.UUID) ([]*entities.IncomeTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.IncomeTransaction), args.Error(1)
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("posts approved entry with mirrored coin value", func(t *testing.T) {
		ledger := new(mockLedger)
		svc := NewService(ledger, "USDT.TRC20", logger.New("error", "test"))

		ledger.On("PostDeposit", ctx, userID, mock.MatchedBy(func(entry *entities.DepositEntry) bool {
			return entry.Amount.Equal(decimal.NewFromInt(50)) &&
				entry.CoinValue.Equal(decimal.NewFromInt(50)) &&
				entry.CoinType == "USDT.TRC20" &&
				entry.Status == entities.DepositStatusApproved
		})).Return(nil)

		entry, err := svc.Deposit(ctx, userID, decimal.NewFromInt(50), "")
		require.NoError(t, err)
		assert.Equal(t, entities.DepositStatusApproved, entry.Status)
		ledger.AssertExpectations(t)
	})

	t.Run("honors an explicit coin type", func(t *testing.T) {
		ledger := new(mockLedger)
		svc := NewService(ledger, "USDT.TRC20", logger.New("error", "test"))

		ledger.On("PostDeposit", ctx, userID, mock.MatchedBy(func(entry *entities.DepositEntry) bool {
			return entry.CoinType == "USDC.ERC20"
		})).Return(nil)

		_, err := svc.Deposit(ctx, userID, decimal.NewFromInt(25), "USDC.ERC20")
		require.NoError(t, err)
		ledger.AssertExpectations(t)
	})

	t.Run("rejects non-positive amounts without posting", func(t *testing.T) {
		ledger := new(mockLedger)
		svc := NewService(ledger, "USDT.TRC20", logger.New("error", "test"))

		_, err := svc.Deposit(ctx, userID, decimal.Zero, "")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

		_, err = svc.Deposit(ctx, userID, decimal.NewFromInt(-10), "")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

		ledger.AssertNotCalled(t, "PostDeposit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wraps storage failures as persistence errors", func(t *testing.T) {
		ledger := new(mockLedger)
		svc := NewService(ledger, "USDT.TRC20", logger.New("error", "test"))

		ledger.On("PostDeposit", ctx, userID, mock.Anything).Return(assert.AnError)

		_, err := svc.Deposit(ctx, userID, decimal.NewFromInt(50), "")
		assert.ErrorIs(t, err, domainerrors.ErrPersistence)
	})
}

func TestGetDepositHistory(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	ledger := new(mockLedger)
	svc := NewService(ledger, "USDT.TRC20", logger.New("error", "test"))

	want := []*entities.DepositEntry{
		{SlNo: 2, Amount: decimal.NewFromInt(100)},
		{SlNo: 1, Amount: decimal.NewFromInt(50)},
	}
	ledger.On("ListDeposits", ctx, userID).Return(want, nil)

	got, err := svc.GetDepositHistory(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
