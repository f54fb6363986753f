package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositStatus is the settlement status shown on a deposit row.
type DepositStatus string

const (
	DepositStatusApproved DepositStatus = "Approve"
	DepositStatusRejected DepositStatus = "Reject"
)

// TransferKind distinguishes wallet-to-wallet moves from funds leaving the
// platform to an external address.
type TransferKind string

const (
	TransferKindInternal TransferKind = "Internal"
	TransferKindExternal TransferKind = "External"
)

// TransferStatus is the status recorded on a transfer row.
type TransferStatus string

const (
	TransferStatusSuccess TransferStatus = "Success"
	TransferStatusPending TransferStatus = "Pending"
	TransferStatusFailed  TransferStatus = "Failed"
)

// WithdrawalStatus is the administrative status of a withdrawal request.
// The core only ever creates Pending rows; approval happens outside.
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "Pending"
	WithdrawalStatusApproved WithdrawalStatus = "Approved"
	WithdrawalStatusRejected WithdrawalStatus = "Rejected"
)

// PackageStatus tracks whether a purchased package is inside its validity
// window. The purchase ledger row itself is immutable; only user package
// status transitions, via the expiry sweep.
type PackageStatus string

const (
	PackageStatusActive  PackageStatus = "active"
	PackageStatusExpired PackageStatus = "expired"
)

// DepositEntry is one row of the deposit history ledger.
type DepositEntry struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	UserID     uuid.UUID       `json:"-" db:"user_id"`
	SlNo       int             `json:"slNo" db:"sl_no"`
	Amount     decimal.Decimal `json:"usd" db:"amount"`
	CoinType   string          `json:"coinType" db:"coin_type"`
	CoinValue  decimal.Decimal `json:"coinValue" db:"coin_value"`
	AppliedAt  time.Time       `json:"appliedDate" db:"applied_at"`
	ApprovedAt *time.Time      `json:"approveDate,omitempty" db:"approved_at"`
	Status     DepositStatus   `json:"status" db:"status"`
}

// PurchaseEntry is one row of the package purchase ledger.
type PurchaseEntry struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"-" db:"user_id"`
	SlNo        int             `json:"slNo" db:"sl_no"`
	PackageRef  string          `json:"packageId" db:"package_ref"`
	PackageName string          `json:"packageName" db:"package_name"`
	BotName     string          `json:"botName" db:"bot_name"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Wallet      WalletCategory  `json:"wallet" db:"wallet_category"`
	StartDate   time.Time       `json:"startDate" db:"start_date"`
	EndDate     time.Time       `json:"endDate" db:"end_date"`
	Status      PackageStatus   `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// TransferEntry is one row of the transfer ledger. WalletLabel is the
// human-readable descriptor "{source} -> {destination-or-address}".
type TransferEntry struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"-" db:"user_id"`
	SlNo        int             `json:"slNo" db:"sl_no"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Kind        TransferKind    `json:"type" db:"kind"`
	WalletLabel string          `json:"wallet" db:"wallet_label"`
	Status      TransferStatus  `json:"status" db:"status"`
	Reference   string          `json:"transactionId" db:"transaction_ref"`
	CreatedAt   time.Time       `json:"date" db:"created_at"`
}

// WithdrawalEntry is one row of the withdrawal ledger. Amount is the gross
// amount removed from the wallet; NetAmount = Amount - AdminCharge.
type WithdrawalEntry struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	UserID      uuid.UUID        `json:"-" db:"user_id"`
	SlNo        int              `json:"slNo" db:"sl_no"`
	Amount      decimal.Decimal  `json:"amount" db:"amount"`
	AdminCharge decimal.Decimal  `json:"adminCharge" db:"admin_charge"`
	NetAmount   decimal.Decimal  `json:"netAmount" db:"net_amount"`
	Wallet      WalletCategory   `json:"wallet" db:"wallet_category"`
	Status      WithdrawalStatus `json:"status" db:"status"`
	Reference   string           `json:"transactionId" db:"transaction_ref"`
	CreatedAt   time.Time        `json:"date" db:"created_at"`
}

// IncomeType labels a row in the unified income feed.
type IncomeType string

const (
	IncomeTypeROI      IncomeType = "ROI"
	IncomeTypeReferral IncomeType = "Referral"
	IncomeTypeBinary   IncomeType = "Binary"
	IncomeTypeReward   IncomeType = "Reward"
	IncomeTypeUpline   IncomeType = "Upline"
)

// IncomeTransaction is one row of the unified income feed the dashboard and
// the income reports project from. Rows are written by the earnings pipeline
// (out of this core's scope); this core only reads them.
type IncomeTransaction struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"-" db:"user_id"`
	WalletLabel string          `json:"wallet" db:"wallet_label"`
	Type        IncomeType      `json:"incomeType" db:"income_type"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description string          `json:"description" db:"description"`
	FromUser    *string         `json:"fromUser,omitempty" db:"from_user"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"date" db:"created_at"`
}

// DepositRequest is the payload for a deposit intake. Amount positivity is
// enforced by the funding service.
type DepositRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	CoinType string          `json:"coinType"`
}

// TransferRequest is the payload for an internal or external transfer.
type TransferRequest struct {
	From            WalletCategory  `json:"from" binding:"required,walletcategory"`
	To              WalletCategory  `json:"to"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	External        bool            `json:"external"`
	ExternalAddress string          `json:"externalAddress"`
}

// WithdrawRequest is the payload for a withdrawal.
type WithdrawRequest struct {
	Wallet WalletCategory  `json:"wallet" binding:"required,walletcategory"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// PurchaseRequest is the payload for a package purchase.
type PurchaseRequest struct {
	PackageName string          `json:"packageName" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Wallet      WalletCategory  `json:"wallet" binding:"required,walletcategory"`
}
