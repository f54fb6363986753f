// Package funding implements deposit intake. Crediting is optimistic: the
// payment rail is modeled as a no-fail collaborator, so the deposit wallet
// is credited and the entry recorded as Approve without waiting for
// settlement confirmation.
package funding

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// LedgerStore posts and lists deposit entries.
type LedgerStore interface {
	PostDeposit(ctx context.Context, userID uuid.UUID, entry *entities.DepositEntry) error
	ListDeposits(ctx context.Context, userID uuid.UUID) ([]*entities.DepositEntry, error)
	ListIncome(ctx context.Context, userID uuid.UUID) ([]*entities.IncomeTransaction, error)
}

// Service is the deposit intake engine.
type Service struct {
	ledger          LedgerStore
	defaultCoinType string
	logger          *logger.Logger
}

func NewService(ledger LedgerStore, defaultCoinType string, log *logger.Logger) *Service {
	return &Service{
		ledger:          ledger,
		defaultCoinType: defaultCoinType,
		logger:          log,
	}
}

// Deposit credits the member's deposit wallet and appends the approved
// entry. Coin value mirrors the USD amount for stablecoin rails.
func (s *Service) Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, coinType string) (*entities.DepositEntry, error) {
	if amount.Sign() <= 0 {
		return nil, domainerrors.InvalidAmountError(amount.String())
	}
	if coinType == "" {
		coinType = s.defaultCoinType
	}

	entry := &entities.DepositEntry{
		Amount:    amount,
		CoinType:  coinType,
		CoinValue: amount,
		Status:    entities.DepositStatusApproved,
	}
	if err := s.ledger.PostDeposit(ctx, userID, entry); err != nil {
		if errors.Is(err, domainerrors.ErrWalletNotFound) {
			return nil, err
		}
		s.logger.Error("deposit failed", "user_id", userID, "error", err)
		return nil, domainerrors.PersistenceError("deposit", err)
	}

	s.logger.Info("deposit posted",
		"user_id", userID, "amount", amount.String(), "coin_type", coinType)
	return entry, nil
}

// GetDepositHistory returns the member's deposits, newest first.
func (s *Service) GetDepositHistory(ctx context.Context, userID uuid.UUID) ([]*entities.DepositEntry, error) {
	return s.ledger.ListDeposits(ctx, userID)
}

// GetIncomeFeed returns the member's unified income feed, newest first.
func (s *Service) GetIncomeFeed(ctx context.Context, userID uuid.UUID) ([]*entities.IncomeTransaction, error) {
	return s.ledger.ListIncome(ctx, userID)
}
