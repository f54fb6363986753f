package wallet

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// fakeLedger reproduces the storage contract in memory: each Post* applies
// the conditional debit, the optional credit and the history append as one
// unit, failing without any mutation when the balance does not cover the
// debit.
type fakeLedger struct {
	balances    map[entities.WalletCategory]decimal.Decimal
	transfers   []*entities.TransferEntry
	withdrawals []*entities.WithdrawalEntry
	refSeq      int
}

func newFakeLedger(initial map[entities.WalletCategory]decimal.Decimal) *fakeLedger {
	balances := make(map[entities.WalletCategory]decimal.Decimal)
	for _, cat := range entities.AllWalletCategories {
		balances[cat] = decimal.Zero
	}
	for cat, amount := range initial {
		balances[cat] = amount
	}
	return &fakeLedger{balances: balances, refSeq: 100000}
}

func (f *fakeLedger) Get(_ context.Context, userID uuid.UUID) (*entities.WalletState, error) {
	return &entities.WalletState{
		UserID:         userID,
		Deposit:        f.balances[entities.WalletDeposit],
		BotEarning:     f.balances[entities.WalletBotEarning],
		NetworkEarning: f.balances[entities.WalletNetworkEarning],
		TraydAI:        f.balances[entities.WalletTraydAI],
		Compounding:    f.balances[entities.WalletCompounding],
	}, nil
}

func (f *fakeLedger) PostTransfer(_ context.Context, userID uuid.UUID, source entities.WalletCategory, destination *entities.WalletCategory, entry *entities.TransferEntry) error {
	if f.balances[source].LessThan(entry.Amount) {
		return domainerrors.ErrInsufficientFunds
	}
	f.balances[source] = f.balances[source].Sub(entry.Amount)
	if destination != nil {
		f.balances[*destination] = f.balances[*destination].Add(entry.Amount)
	}
	f.refSeq++
	entry.ID = uuid.New()
	entry.UserID = userID
	entry.SlNo = len(f.transfers) + 1
	entry.Reference = fmt.Sprintf("TXN%08d", f.refSeq)
	f.transfers = append(f.transfers, entry)
	return nil
}

func (f *fakeLedger) PostWithdrawal(_ context.Context, userID uuid.UUID, entry *entities.WithdrawalEntry) error {
	if f.balances[entry.Wallet].LessThan(entry.Amount) {
		return domainerrors.ErrInsufficientFunds
	}
	f.balances[entry.Wallet] = f.balances[entry.Wallet].Sub(entry.Amount)
	f.refSeq++
	entry.ID = uuid.New()
	entry.UserID = userID
	entry.SlNo = len(f.withdrawals) + 1
	entry.Reference = fmt.Sprintf("WTH%08d", f.refSeq)
	f.withdrawals = append(f.withdrawals, entry)
	return nil
}

func (f *fakeLedger) ListTransfers(_ context.Context, _ uuid.UUID) ([]*entities.TransferEntry, error) {
	return f.transfers, nil
}

func (f *fakeLedger) ListWithdrawals(_ context.Context, _ uuid.UUID) ([]*entities.WithdrawalEntry, error) {
	return f.withdrawals, nil
}

func (f *fakeLedger) total() decimal.Decimal {
	sum := decimal.Zero
	for _, amount := range f.balances {
		sum = sum.Add(amount)
	}
	return sum
}

func newTestService(initial map[entities.WalletCategory]decimal.Decimal) (*Service, *fakeLedger) {
	ledger := newFakeLedger(initial)
	return NewService(ledger, ledger, 0.05, logger.New("error", "test")), ledger
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTransferInternal(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("moves amount and conserves total", func(t *testing.T) {
		svc, ledger := newTestService(map[entities.WalletCategory]decimal.Decimal{
			entities.WalletDeposit: d("100"),
		})
		before := ledger.total()

		entry, err := svc.TransferInternal(ctx, userID, entities.WalletDeposit, entities.WalletTraydAI, d("40"))
		require.NoError(t, err)

		assert.True(t, ledger.balances[entities.WalletDeposit].Equal(d("60")))
		assert.True(t, ledger.balances[entities.WalletTraydAI].Equal(d("40")))
		assert.True(t, ledger.total().Equal(before))
		assert.Equal(t, entities.TransferKindInternal, entry.Kind)
		assert.Equal(t, entities.TransferStatusSuccess, entry.Status)
		assert.Equal(t, "Deposit Wallet -> Trayd AI Wallet", entry.WalletLabel)
		assert.NotEmpty(t, entry.Reference)
	})

	t.Run("appends exactly one entry with serial index", func(t *testing.T) {
		svc, ledger := newTestService(map[entities.WalletCategory]decimal.Decimal{
			entities.WalletDeposit: d("100"),
		})

		first, err := svc.TransferInternal(ctx, userID, entities.WalletDeposit, entities.WalletTraydAI, d("10"))
		require.NoError(t, err)
		second, err := svc.TransferInternal(ctx, userID, entities.WalletDeposit, entities.WalletCompounding, d("10"))
		require.NoError(t, err)

		assert.Equal(t, 1, first.SlNo)
		assert.Equal(t, 2, second.SlNo)
		assert.Len(t, ledger.transfers, 2)
	})

	t.Run("insufficient funds leaves everything unchanged", func(t *testing.T) {
		svc, ledger := newTestService(map[entities.WalletCategory]decimal.Decimal{
			entities.WalletDeposit: d("30"),
		})

		_, err := svc.TransferInternal(ctx, userID, entities.WalletDeposit, entities.WalletTraydAI, d("31"))
		require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

		assert.True(t, ledger.balances[entities.WalletDeposit].Equal(d("30")))
		assert.True(t, ledger.balances[entities.WalletTraydAI].IsZero())
		assert.Empty(t, ledger.transfers)
	})

	t.Run("rejects same source and destination", func(t *testing.T) {
		svc, _ := newTestService(map[entities.WalletCategory]decimal.Decimal{
			entities.WalletDeposit: d("100"),
		})

		_, err := svc.TransferInternal(ctx, userID, entities.WalletDeposit, entities.WalletDeposit, d("10"))
		assert.ErrorIs(t, err, domainerrors.ErrSameWallet)
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		svc, _ := newTestService(nil)

		_, err := svc.TransferInternal(ctx, userID, "savings", entities.WalletDeposit, d("10"))
		assert.ErrorIs(t, err, domainerrors.ErrInvalidWalletCategory)

		_, err = svc.TransferInternal(ctx, userID, entities.WalletDeposit, "savings", d("10"))
		assert.ErrorIs(t, err, domainerrors.ErrInvalidWalletCategory)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, _ := newTestService(map[entities.WalletCategory]decimal.Decimal{
			entities.WalletDeposit: d("100"),
		})

		_, err := svc.TransferInternal(ctx, userID, entities.WalletDeposit, entities.WalletTraydAI, decimal.Zero)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

		_, err = svc.TransferInternal(ctx, userID, entities.WalletDeposit, entities.WalletTraydAI, d("-5"))
		assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
	})
}

func TestTransferExternal(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	address := "TX7k2mPqW9zYvN3cL5dF8hJ4gR6sB1aE0u"

	t.Run("debits only, funds leave the ledger", func(t *testing.T) {
		svc, ledger := newTestService(map[entities.WalletCategory]decimal.Decimal{
			entities.WalletBotEarning: d("200"),
		})

		entry, err := svc.TransferExternal(ctx, userID, entities.WalletBotEarning, address, d("75"))
		require.NoError(t, err)

		assert.True(t, ledger.balances[entities.WalletBotEarning].Equal(d("125")))
		assert.True(t, ledger.total().Equal(d("125")))
		assert.Equal(t, entities.TransferKindExternal, entry.Kind)
		assert.Equal(t, entities.TransferStatusSuccess, entry.Status)
		assert.Equal(t, "Bot Earning Wallet -> "+address, entry.WalletLabel)
	})

	t.Run("rejects empty or short address", func(t *testing.T) {
		svc, ledger := newTestService(map[entities.WalletCategory]decimal.Decimal{
			entities.WalletBotEarning: d("200"),
		})

		_, err := svc.TransferExternal(ctx, userID, entities.WalletBotEarning, "", d("10"))
		assert.ErrorIs(t, err, domainerrors.ErrInvalidAddress)

		_, err = svc.TransferExternal(ctx, userID, entities.WalletBotEarning, "  abc  ", d("10"))
		assert.ErrorIs(t, err, domainerrors.ErrInvalidAddress)

		assert.True(t, ledger.balances[entities.WalletBotEarning].Equal(d("200")))
		assert.Empty(t, ledger.transfers)
	})

	t.Run("insufficient funds leaves balance unchanged", func(t *testing.T) {
		svc, ledger := newTestService(map[entities.WalletCategory]decimal.Decimal{
			entities.WalletBotEarning: d("50"),
		})

		_, err := svc.TransferExternal(ctx, userID, entities.WalletBotEarning, address, d("50.01"))
		require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)
		assert.True(t, ledger.balances[entities.WalletBotEarning].Equal(d("50")))
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("debits gross and records net after 5% fee", func(t *testing.T) {
		svc, ledger := newTestService(map[entities.WalletCategory]decimal.Decimal{
			entities.WalletBotEarning: d("500"),
		})

		entry, err := svc.Withdraw(ctx, userID, entities.WalletBotEarning, d("100"))
		require.NoError(t, err)

		assert.True(t, ledger.balances[entities.WalletBotEarning].Equal(d("400")))
		assert.True(t, entry.AdminCharge.Equal(d("5")))
		assert.True(t, entry.NetAmount.Equal(d("95")))
		assert.Equal(t, entities.WithdrawalStatusPending, entry.Status)
		assert.NotEmpty(t, entry.Reference)
	})

	t.Run("fee rounds to two places without drift", func(t *testing.T) {
		cases := []struct {
			gross string
			fee   string
		}{
			{"100", "5"},
			{"33.33", "1.67"},
			{"0.01", "0"},
			{"19.99", "1"},
			{"123.45", "6.17"},
		}
		for _, tc := range cases {
			svc, _ := newTestService(map[entities.WalletCategory]decimal.Decimal{
				entities.WalletDeposit: d("1000"),
			})

			entry, err := svc.Withdraw(ctx, userID, entities.WalletDeposit, d(tc.gross))
			require.NoError(t, err, "gross %s", tc.gross)

			assert.True(t, entry.AdminCharge.Equal(d(tc.fee)),
				"gross %s: fee %s, want %s", tc.gross, entry.AdminCharge, tc.fee)
			assert.True(t, entry.Amount.Sub(entry.NetAmount).Equal(entry.AdminCharge),
				"gross %s: gross - net must equal fee exactly", tc.gross)
		}
	})

	t.Run("fee is not credited anywhere", func(t *testing.T) {
		svc, ledger := newTestService(map[entities.WalletCategory]decimal.Decimal{
			entities.WalletDeposit: d("100"),
		})

		_, err := svc.Withdraw(ctx, userID, entities.WalletDeposit, d("100"))
		require.NoError(t, err)
		assert.True(t, ledger.total().IsZero())
	})

	t.Run("insufficient funds fails without mutation", func(t *testing.T) {
		svc, ledger := newTestService(map[entities.WalletCategory]decimal.Decimal{
			entities.WalletDeposit: d("99.99"),
		})

		_, err := svc.Withdraw(ctx, userID, entities.WalletDeposit, d("100"))
		require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

		assert.True(t, ledger.balances[entities.WalletDeposit].Equal(d("99.99")))
		assert.Empty(t, ledger.withdrawals)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, _ := newTestService(map[entities.WalletCategory]decimal.Decimal{
			entities.WalletDeposit: d("100"),
		})

		_, err := svc.Withdraw(ctx, userID, entities.WalletDeposit, decimal.Zero)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
	})
}

// TestNoOverdraftSequence drives a mixed operation sequence and checks no
// balance ever goes negative and failed calls never change state.
func TestNoOverdraftSequence(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, ledger := newTestService(map[entities.WalletCategory]decimal.Decimal{
		entities.WalletDeposit: d("100"),
	})

	_, err := svc.TransferInternal(ctx, userID, entities.WalletDeposit, entities.WalletTraydAI, d("60"))
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, userID, entities.WalletDeposit, d("50"))
	require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

	_, err = svc.Withdraw(ctx, userID, entities.WalletDeposit, d("40"))
	require.NoError(t, err)

	_, err = svc.TransferInternal(ctx, userID, entities.WalletTraydAI, entities.WalletCompounding, d("60"))
	require.NoError(t, err)

	for cat, balance := range ledger.balances {
		assert.False(t, balance.IsNegative(), "%s went negative", cat)
	}
	assert.True(t, ledger.balances[entities.WalletDeposit].IsZero())
	assert.True(t, ledger.balances[entities.WalletCompounding].Equal(d("60")))
	assert.Len(t, ledger.transfers, 2)
	assert.Len(t, ledger.withdrawals, 1)
}

func TestHistoryReadsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, ledger := newTestService(map[entities.WalletCategory]decimal.Decimal{
		entities.WalletDeposit: d("100"),
	})

	_, err := svc.TransferInternal(ctx, userID, entities.WalletDeposit, entities.WalletTraydAI, d("10"))
	require.NoError(t, err)

	first, err := svc.GetTransferHistory(ctx, userID)
	require.NoError(t, err)
	second, err := svc.GetTransferHistory(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, ledger.balances[entities.WalletDeposit].Equal(d("90")))
}
