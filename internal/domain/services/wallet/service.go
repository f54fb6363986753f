// Package wallet implements the transfer and withdrawal engine. Every
// operation validates against a wallet snapshot, then posts the balance
// change and its ledger entry through one atomic storage primitive.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// WalletStore reads wallet state.
type WalletStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*entities.WalletState, error)
}

// LedgerStore posts and lists transfer and withdrawal entries. Post methods
// are atomic: the balance change and the history row commit together or not
// at all, and an uncovered debit fails with ErrInsufficientFunds.
type LedgerStore interface {
	PostTransfer(ctx context.Context, userID uuid.UUID, source entities.WalletCategory, destination *entities.WalletCategory, entry *entities.TransferEntry) error
	PostWithdrawal(ctx context.Context, userID uuid.UUID, entry *entities.WithdrawalEntry) error
	ListTransfers(ctx context.Context, userID uuid.UUID) ([]*entities.TransferEntry, error)
	ListWithdrawals(ctx context.Context, userID uuid.UUID) ([]*entities.WithdrawalEntry, error)
}

// Service is the transfer and withdrawal engine.
type Service struct {
	wallets    WalletStore
	ledger     LedgerStore
	feePercent decimal.Decimal
	logger     *logger.Logger
}

// minAddressLength is the shortest external address accepted. TRON and EVM
// addresses are both longer than this.
const minAddressLength = 20

func NewService(wallets WalletStore, ledger LedgerStore, withdrawalFeePercent float64, log *logger.Logger) *Service {
	return &Service{
		wallets:    wallets,
		ledger:     ledger,
		feePercent: decimal.NewFromFloat(withdrawalFeePercent),
		logger:     log,
	}
}

// GetWallets returns the member's wallet snapshot.
func (s *Service) GetWallets(ctx context.Context, userID uuid.UUID) (*entities.WalletState, error) {
	return s.wallets.Get(ctx, userID)
}

// TransferInternal moves amount between two of the member's wallets. Both
// legs post in one transaction; failure leaves both balances untouched.
func (s *Service) TransferInternal(ctx context.Context, userID uuid.UUID, source, destination entities.WalletCategory, amount decimal.Decimal) (*entities.TransferEntry, error) {
	if err := source.Validate(); err != nil {
		return nil, domainerrors.ErrInvalidWalletCategory
	}
	if err := destination.Validate(); err != nil {
		return nil, domainerrors.ErrInvalidWalletCategory
	}
	if source == destination {
		return nil, domainerrors.ErrSameWallet
	}
	if amount.Sign() <= 0 {
		return nil, domainerrors.InvalidAmountError(amount.String())
	}

	if err := s.checkFunds(ctx, userID, source, amount); err != nil {
		return nil, err
	}

	entry := &entities.TransferEntry{
		Amount:      amount,
		Kind:        entities.TransferKindInternal,
		WalletLabel: fmt.Sprintf("%s -> %s", source.Label(), destination.Label()),
		Status:      entities.TransferStatusSuccess,
	}
	if err := s.ledger.PostTransfer(ctx, userID, source, &destination, entry); err != nil {
		return nil, s.postError("internal transfer", userID, err)
	}

	s.logger.Info("internal transfer posted",
		"user_id", userID, "source", source, "destination", destination,
		"amount", amount.String(), "reference", entry.Reference)
	return entry, nil
}

// TransferExternal debits amount from the source wallet toward an external
// address. No destination credit occurs; the funds leave the ledger.
func (s *Service) TransferExternal(ctx context.Context, userID uuid.UUID, source entities.WalletCategory, address string, amount decimal.Decimal) (*entities.TransferEntry, error) {
	if err := source.Validate(); err != nil {
		return nil, domainerrors.ErrInvalidWalletCategory
	}
	address = strings.TrimSpace(address)
	if len(address) < minAddressLength {
		return nil, domainerrors.ErrInvalidAddress
	}
	if amount.Sign() <= 0 {
		return nil, domainerrors.InvalidAmountError(amount.String())
	}

	if err := s.checkFunds(ctx, userID, source, amount); err != nil {
		return nil, err
	}

	entry := &entities.TransferEntry{
		Amount:      amount,
		Kind:        entities.TransferKindExternal,
		WalletLabel: fmt.Sprintf("%s -> %s", source.Label(), address),
		Status:      entities.TransferStatusSuccess,
	}
	if err := s.ledger.PostTransfer(ctx, userID, source, nil, entry); err != nil {
		return nil, s.postError("external transfer", userID, err)
	}

	s.logger.Info("external transfer posted",
		"user_id", userID, "source", source,
		"amount", amount.String(), "reference", entry.Reference)
	return entry, nil
}

// Withdraw debits the gross amount from the source wallet and records a
// Pending withdrawal with the 5% admin fee broken out. The fee is retained
// by the platform and never credited back anywhere.
func (s *Service) Withdraw(ctx context.Context, userID uuid.UUID, source entities.WalletCategory, amount decimal.Decimal) (*entities.WithdrawalEntry, error) {
	if err := source.Validate(); err != nil {
		return nil, domainerrors.ErrInvalidWalletCategory
	}
	if amount.Sign() <= 0 {
		return nil, domainerrors.InvalidAmountError(amount.String())
	}

	if err := s.checkFunds(ctx, userID, source, amount); err != nil {
		return nil, err
	}

	fee := amount.Mul(s.feePercent).Round(2)
	entry := &entities.WithdrawalEntry{
		Amount:      amount,
		AdminCharge: fee,
		NetAmount:   amount.Sub(fee),
		Wallet:      source,
		Status:      entities.WithdrawalStatusPending,
	}
	if err := s.ledger.PostWithdrawal(ctx, userID, entry); err != nil {
		return nil, s.postError("withdrawal", userID, err)
	}

	s.logger.Info("withdrawal posted",
		"user_id", userID, "source", source, "gross", amount.String(),
		"net", entry.NetAmount.String(), "reference", entry.Reference)
	return entry, nil
}

// GetTransferHistory returns the member's transfers, newest first.
func (s *Service) GetTransferHistory(ctx context.Context, userID uuid.UUID) ([]*entities.TransferEntry, error) {
	return s.ledger.ListTransfers(ctx, userID)
}

// GetWithdrawalHistory returns the member's withdrawals, newest first.
func (s *Service) GetWithdrawalHistory(ctx context.Context, userID uuid.UUID) ([]*entities.WithdrawalEntry, error) {
	return s.ledger.ListWithdrawals(ctx, userID)
}

// checkFunds is the fail-fast affordability pre-check. The storage layer's
// conditional debit remains authoritative under concurrency; this exists to
// return balance details before any posting is attempted.
func (s *Service) checkFunds(ctx context.Context, userID uuid.UUID, source entities.WalletCategory, amount decimal.Decimal) error {
	state, err := s.wallets.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !state.CanAfford(source, amount) {
		return domainerrors.InsufficientFundsError(string(source), state.Balance(source).String(), amount.String())
	}
	return nil
}

// postError normalizes posting failures: domain kinds pass through, storage
// faults wrap as persistence errors.
func (s *Service) postError(op string, userID uuid.UUID, err error) error {
	switch {
	case isDomainKind(err):
		return err
	default:
		s.logger.Error(op+" failed", "user_id", userID, "error", err)
		return domainerrors.PersistenceError(op, err)
	}
}

func isDomainKind(err error) bool {
	for _, kind := range []error{
		domainerrors.ErrInsufficientFunds,
		domainerrors.ErrWalletNotFound,
		domainerrors.ErrInvalidWalletCategory,
		domainerrors.ErrInvalidAmount,
		domainerrors.ErrAlreadyExists,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
