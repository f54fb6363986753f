package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletCategory names one of the five balance buckets a member holds.
type WalletCategory string

const (
	WalletDeposit        WalletCategory = "deposit"
	WalletBotEarning     WalletCategory = "bot_earning"
	WalletNetworkEarning WalletCategory = "network_earning"
	WalletTraydAI        WalletCategory = "trayd_ai"
	WalletCompounding    WalletCategory = "compounding"
)

// AllWalletCategories lists every valid category in display order.
var AllWalletCategories = []WalletCategory{
	WalletDeposit,
	WalletBotEarning,
	WalletNetworkEarning,
	WalletTraydAI,
	WalletCompounding,
}

// Validate checks if the wallet category is valid.
func (w WalletCategory) Validate() error {
	switch w {
	case WalletDeposit, WalletBotEarning, WalletNetworkEarning, WalletTraydAI, WalletCompounding:
		return nil
	default:
		return fmt.Errorf("invalid wallet category: %s", w)
	}
}

// IsValid reports whether the category is one of the five buckets.
func (w WalletCategory) IsValid() bool {
	return w.Validate() == nil
}

// Label returns the member-facing wallet name.
func (w WalletCategory) Label() string {
	switch w {
	case WalletDeposit:
		return "Deposit Wallet"
	case WalletBotEarning:
		return "Bot Earning Wallet"
	case WalletNetworkEarning:
		return "Network Earning Wallet"
	case WalletTraydAI:
		return "Trayd AI Wallet"
	case WalletCompounding:
		return "Compounding Wallet"
	default:
		return string(w)
	}
}

// WalletState holds the five balances for one member. Balances are mutated
// only through the engine services; no balance may go negative.
type WalletState struct {
	UserID         uuid.UUID       `json:"user_id" db:"user_id"`
	Deposit        decimal.Decimal `json:"deposit" db:"deposit_balance"`
	BotEarning     decimal.Decimal `json:"botEarning" db:"bot_earning_balance"`
	NetworkEarning decimal.Decimal `json:"networkEarning" db:"network_earning_balance"`
	TraydAI        decimal.Decimal `json:"traydAi" db:"trayd_ai_balance"`
	Compounding    decimal.Decimal `json:"compounding" db:"compounding_balance"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// Balance returns the balance for one category.
func (w *WalletState) Balance(category WalletCategory) decimal.Decimal {
	switch category {
	case WalletDeposit:
		return w.Deposit
	case WalletBotEarning:
		return w.BotEarning
	case WalletNetworkEarning:
		return w.NetworkEarning
	case WalletTraydAI:
		return w.TraydAI
	case WalletCompounding:
		return w.Compounding
	default:
		return decimal.Zero
	}
}

// CanAfford reports whether amount is positive and covered by the category
// balance. This is the engines' fail-fast pre-check; the storage layer's
// conditional debit remains the authoritative guard.
func (w *WalletState) CanAfford(category WalletCategory, amount decimal.Decimal) bool {
	if amount.Sign() <= 0 {
		return false
	}
	return w.Balance(category).GreaterThanOrEqual(amount)
}

// Total returns the sum of all five balances.
func (w *WalletState) Total() decimal.Decimal {
	return w.Deposit.
		Add(w.BotEarning).
		Add(w.NetworkEarning).
		Add(w.TraydAI).
		Add(w.Compounding)
}

// Validate checks the no-negative-balance invariant.
func (w *WalletState) Validate() error {
	for _, cat := range AllWalletCategories {
		if w.Balance(cat).IsNegative() {
			return fmt.Errorf("wallet %s balance cannot be negative", cat)
		}
	}
	return nil
}
