package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
)

// WalletRepository reads wallet state. Balance mutations go through the
// ledger repository's posting primitives so that every mutation carries its
// history row in the same transaction.
type WalletRepository struct {
	db *sqlx.DB
}

func NewWalletRepository(db *sqlx.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Get returns the wallet state for a user.
func (r *WalletRepository) Get(ctx context.Context, userID uuid.UUID) (*entities.WalletState, error) {
	var state entities.WalletState
	query := `
		SELECT user_id, deposit_balance, bot_earning_balance, network_earning_balance,
		       trayd_ai_balance, compounding_balance, updated_at
		FROM wallets
		WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &state, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domainerrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return &state, nil
}

// balanceColumn maps a wallet category to its column. The input is always a
// validated enum value, so interpolating the result into SQL is safe.
func balanceColumn(category entities.WalletCategory) (string, error) {
	switch category {
	case entities.WalletDeposit:
		return "deposit_balance", nil
	case entities.WalletBotEarning:
		return "bot_earning_balance", nil
	case entities.WalletNetworkEarning:
		return "network_earning_balance", nil
	case entities.WalletTraydAI:
		return "trayd_ai_balance", nil
	case entities.WalletCompounding:
		return "compounding_balance", nil
	default:
		return "", domainerrors.ErrInvalidWalletCategory
	}
}

// debitWalletTx conditionally removes amount from one balance column. The
// WHERE clause is the authoritative overdraft guard: when the balance does
// not cover the amount no row matches and ErrInsufficientFunds is returned.
func debitWalletTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, category entities.WalletCategory, amount decimal.Decimal) error {
	col, err := balanceColumn(category)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE wallets
		SET %s = %s - $1, updated_at = NOW()
		WHERE user_id = $2 AND %s >= $1`, col, col, col)

	res, err := tx.ExecContext(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("debit %s wallet: %w", category, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("debit %s wallet: %w", category, err)
	}
	if affected == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM wallets WHERE user_id = $1)`, userID); err != nil {
			return fmt.Errorf("debit %s wallet: %w", category, err)
		}
		if !exists {
			return domainerrors.ErrWalletNotFound
		}
		return domainerrors.ErrInsufficientFunds
	}
	return nil
}

// creditWalletTx adds amount to one balance column.
func creditWalletTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, category entities.WalletCategory, amount decimal.Decimal) error {
	col, err := balanceColumn(category)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE wallets
		SET %s = %s + $1, updated_at = NOW()
		WHERE user_id = $2`, col, col)

	res, err := tx.ExecContext(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("credit %s wallet: %w", category, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("credit %s wallet: %w", category, err)
	}
	if affected == 0 {
		return domainerrors.ErrWalletNotFound
	}
	return nil
}
