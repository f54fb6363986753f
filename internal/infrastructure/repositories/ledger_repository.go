package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
	"github.com/trayd-platform/trayd_service/pkg/metrics"
)

// LedgerRepository owns every wallet mutation. Each Post* method runs the
// balance change and its history row in one database transaction, so a
// balance can never move without an append-only record and a history row can
// never exist without its balance change.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// nextSlNoTx assigns the next 1-based serial within one user's history
// table. The table name comes from a fixed call-site constant, never from
// input. UNIQUE(user_id, sl_no) backstops concurrent posts.
func nextSlNoTx(ctx context.Context, tx *sqlx.Tx, table string, userID uuid.UUID) (int, error) {
	var slNo int
	query := fmt.Sprintf(`SELECT COALESCE(MAX(sl_no), 0) + 1 FROM %s WHERE user_id = $1`, table)
	if err := tx.GetContext(ctx, &slNo, query, userID); err != nil {
		return 0, fmt.Errorf("next sl_no for %s: %w", table, err)
	}
	return slNo, nil
}

// nextRefTx draws the next reference from a sequence and renders it with the
// given prefix, e.g. TXN00100001.
func nextRefTx(ctx context.Context, tx *sqlx.Tx, sequence, prefix string) (string, error) {
	var n int64
	query := fmt.Sprintf(`SELECT nextval('%s')`, sequence)
	if err := tx.GetContext(ctx, &n, query); err != nil {
		return "", fmt.Errorf("next %s reference: %w", prefix, err)
	}
	return fmt.Sprintf("%s%08d", prefix, n), nil
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

func recordPost(category string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	metrics.LedgerPostsTotal.WithLabelValues(category, outcome).Inc()
}

// PostDeposit credits the deposit wallet and appends the history row. The
// entry arrives with amount, coin type and coin value set; identity, serial
// and timestamps are assigned here.
func (r *LedgerRepository) PostDeposit(ctx context.Context, userID uuid.UUID, entry *entities.DepositEntry) (err error) {
	defer func() { recordPost("deposit", err) }()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin deposit transaction: %w", err)
	}
	defer tx.Rollback()

	if err := creditWalletTx(ctx, tx, userID, entities.WalletDeposit, entry.Amount); err != nil {
		return err
	}

	slNo, err := nextSlNoTx(ctx, tx, "deposit_history", userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	entry.ID = uuid.New()
	entry.UserID = userID
	entry.SlNo = slNo
	entry.AppliedAt = now
	entry.ApprovedAt = &now

	query := `
		INSERT INTO deposit_history (id, user_id, sl_no, amount, coin_type, coin_value, status, applied_at, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := tx.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.SlNo, entry.Amount, entry.CoinType,
		entry.CoinValue, entry.Status, entry.AppliedAt, entry.ApprovedAt); err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("insert deposit entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit deposit: %w", err)
	}
	return nil
}

// PostPurchase debits the funding wallet and appends the purchase row. The
// debit is conditional; an uncovered amount fails the whole post.
func (r *LedgerRepository) PostPurchase(ctx context.Context, userID uuid.UUID, entry *entities.PurchaseEntry) (err error) {
	defer func() { recordPost("purchase", err) }()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin purchase transaction: %w", err)
	}
	defer tx.Rollback()

	if err := debitWalletTx(ctx, tx, userID, entry.Wallet, entry.Amount); err != nil {
		return err
	}

	slNo, err := nextSlNoTx(ctx, tx, "purchase_history", userID)
	if err != nil {
		return err
	}
	ref, err := nextRefTx(ctx, tx, "package_ref_seq", "PKG")
	if err != nil {
		return err
	}

	entry.ID = uuid.New()
	entry.UserID = userID
	entry.SlNo = slNo
	entry.PackageRef = ref
	entry.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO purchase_history (id, user_id, sl_no, package_ref, package_name, bot_name,
		                              amount, wallet_category, status, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	if _, err := tx.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.SlNo, entry.PackageRef, entry.PackageName, entry.BotName,
		entry.Amount, entry.Wallet, entry.Status, entry.StartDate, entry.EndDate, entry.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("insert purchase entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit purchase: %w", err)
	}
	return nil
}

// PostTransfer debits the source wallet and, for internal moves, credits the
// destination in the same transaction. For external moves destination is nil
// and the funds leave the ledger with the debit.
func (r *LedgerRepository) PostTransfer(ctx context.Context, userID uuid.UUID, source entities.WalletCategory, destination *entities.WalletCategory, entry *entities.TransferEntry) (err error) {
	defer func() { recordPost("transfer", err) }()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer tx.Rollback()

	if err := debitWalletTx(ctx, tx, userID, source, entry.Amount); err != nil {
		return err
	}
	if destination != nil {
		if err := creditWalletTx(ctx, tx, userID, *destination, entry.Amount); err != nil {
			return err
		}
	}

	slNo, err := nextSlNoTx(ctx, tx, "transfer_history", userID)
	if err != nil {
		return err
	}
	ref, err := nextRefTx(ctx, tx, "transfer_ref_seq", "TXN")
	if err != nil {
		return err
	}

	entry.ID = uuid.New()
	entry.UserID = userID
	entry.SlNo = slNo
	entry.Reference = ref
	entry.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO transfer_history (id, user_id, sl_no, amount, kind, wallet_label, status, transaction_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := tx.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.SlNo, entry.Amount, entry.Kind,
		entry.WalletLabel, entry.Status, entry.Reference, entry.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("insert transfer entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transfer: %w", err)
	}
	return nil
}

// PostWithdrawal debits the gross amount and appends the withdrawal row in
// Pending state. Settlement of the net amount happens off-ledger.
func (r *LedgerRepository) PostWithdrawal(ctx context.Context, userID uuid.UUID, entry *entities.WithdrawalEntry) (err error) {
	defer func() { recordPost("withdrawal", err) }()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin withdrawal transaction: %w", err)
	}
	defer tx.Rollback()

	if err := debitWalletTx(ctx, tx, userID, entry.Wallet, entry.Amount); err != nil {
		return err
	}

	slNo, err := nextSlNoTx(ctx, tx, "withdrawal_history", userID)
	if err != nil {
		return err
	}
	ref, err := nextRefTx(ctx, tx, "withdrawal_ref_seq", "WTH")
	if err != nil {
		return err
	}

	entry.ID = uuid.New()
	entry.UserID = userID
	entry.SlNo = slNo
	entry.Reference = ref
	entry.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO withdrawal_history (id, user_id, sl_no, amount, admin_charge, net_amount,
		                                wallet_category, status, transaction_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := tx.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.SlNo, entry.Amount, entry.AdminCharge, entry.NetAmount,
		entry.Wallet, entry.Status, entry.Reference, entry.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("insert withdrawal entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit withdrawal: %w", err)
	}
	return nil
}

// ListDeposits returns a user's deposit history, newest first.
func (r *LedgerRepository) ListDeposits(ctx context.Context, userID uuid.UUID) ([]*entities.DepositEntry, error) {
	entries := []*entities.DepositEntry{}
	query := `
		SELECT id, user_id, sl_no, amount, coin_type, coin_value, status, applied_at, approved_at
		FROM deposit_history
		WHERE user_id = $1
		ORDER BY sl_no DESC`
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	return entries, nil
}

// ListPurchases returns a user's purchase history, newest first.
func (r *LedgerRepository) ListPurchases(ctx context.Context, userID uuid.UUID) ([]*entities.PurchaseEntry, error) {
	entries := []*entities.PurchaseEntry{}
	query := `
		SELECT id, user_id, sl_no, package_ref, package_name, bot_name, amount,
		       wallet_category, status, start_date, end_date, created_at
		FROM purchase_history
		WHERE user_id = $1
		ORDER BY sl_no DESC`
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return entries, nil
}

// ListTransfers returns a user's transfer history, newest first.
func (r *LedgerRepository) ListTransfers(ctx context.Context, userID uuid.UUID) ([]*entities.TransferEntry, error) {
	entries := []*entities.TransferEntry{}
	query := `
		SELECT id, user_id, sl_no, amount, kind, wallet_label, status, transaction_ref, created_at
		FROM transfer_history
		WHERE user_id = $1
		ORDER BY sl_no DESC`
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	return entries, nil
}

// ListWithdrawals returns a user's withdrawal history, newest first.
func (r *LedgerRepository) ListWithdrawals(ctx context.Context, userID uuid.UUID) ([]*entities.WithdrawalEntry, error) {
	entries := []*entities.WithdrawalEntry{}
	query := `
		SELECT id, user_id, sl_no, amount, admin_charge, net_amount, wallet_category,
		       status, transaction_ref, created_at
		FROM withdrawal_history
		WHERE user_id = $1
		ORDER BY sl_no DESC`
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	return entries, nil
}

// ListIncome returns a user's unified income feed, newest first.
func (r *LedgerRepository) ListIncome(ctx context.Context, userID uuid.UUID) ([]*entities.IncomeTransaction, error) {
	entries := []*entities.IncomeTransaction{}
	query := `
		SELECT id, user_id, wallet_label, income_type, amount, description, from_user, status, created_at
		FROM income_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	return entries, nil
}

// ListIncomeByType returns the income feed filtered to one type, newest
// first. The reports project straight from this.
func (r *LedgerRepository) ListIncomeByType(ctx context.Context, userID uuid.UUID, incomeType entities.IncomeType) ([]*entities.IncomeTransaction, error) {
	entries := []*entities.IncomeTransaction{}
	query := `
		SELECT id, user_id, wallet_label, income_type, amount, description, from_user, status, created_at
		FROM income_transactions
		WHERE user_id = $1 AND income_type = $2
		ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &entries, query, userID, incomeType); err != nil {
		return nil, fmt.Errorf("list %s income: %w", incomeType, err)
	}
	return entries, nil
}

// ListTradingLogs returns a user's executed bot trades, newest first.
func (r *LedgerRepository) ListTradingLogs(ctx context.Context, userID uuid.UUID) ([]*entities.TradingLog, error) {
	logs := []*entities.TradingLog{}
	query := `
		SELECT id, user_id, pair, purchase_price, selling_price, invested, traded_at
		FROM trading_logs
		WHERE user_id = $1
		ORDER BY traded_at DESC`
	if err := r.db.SelectContext(ctx, &logs, query, userID); err != nil {
		return nil, fmt.Errorf("list trading logs: %w", err)
	}
	return logs, nil
}

// ExpireDuePackages flips active purchases past their end date to expired
// and returns how many rows changed. Run by the nightly sweep.
func (r *LedgerRepository) ExpireDuePackages(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE purchase_history
		SET status = $1
		WHERE status = $2 AND end_date <= $3`
	res, err := r.db.ExecContext(ctx, query, entities.PackageStatusExpired, entities.PackageStatusActive, now)
	if err != nil {
		return 0, fmt.Errorf("expire packages: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expire packages: %w", err)
	}
	return affected, nil
}

// ActivePurchaseTotal sums a user's active package amounts.
func (r *LedgerRepository) ActivePurchaseTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM purchase_history
		WHERE user_id = $1 AND status = $2`
	if err := r.db.GetContext(ctx, &total, query, userID, entities.PackageStatusActive); err != nil {
		return decimal.Zero, fmt.Errorf("active purchase total: %w", err)
	}
	return total, nil
}
