package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportType selects which income report projection to produce.
type ReportType string

const (
	ReportTrading  ReportType = "trading"
	ReportReferral ReportType = "referral"
	ReportBinary   ReportType = "binary"
	ReportRewards  ReportType = "rewards"
	ReportUpline   ReportType = "upline"
)

// Validate checks if the report type is valid.
func (r ReportType) Validate() error {
	switch r {
	case ReportTrading, ReportReferral, ReportBinary, ReportRewards, ReportUpline:
		return nil
	default:
		return fmt.Errorf("invalid report type: %s", r)
	}
}

// IncomeType returns the income feed type this report projects from.
func (r ReportType) IncomeType() IncomeType {
	switch r {
	case ReportTrading:
		return IncomeTypeROI
	case ReportReferral:
		return IncomeTypeReferral
	case ReportBinary:
		return IncomeTypeBinary
	case ReportRewards:
		return IncomeTypeReward
	case ReportUpline:
		return IncomeTypeUpline
	default:
		return ""
	}
}

// IncomeReportRow is one projected row of an income report. The populated
// fields depend on the report type; the rest stay at their zero value and
// are omitted from JSON. Fields the feed cannot provide yet are filled with
// neutral placeholders (fromUser "N/A", level 1, zero business legs).
type IncomeReportRow struct {
	ID             string           `json:"id"`
	SlNo           int              `json:"slNo"`
	Date           time.Time        `json:"date"`
	Amount         decimal.Decimal  `json:"amount"`
	Description    string           `json:"description,omitempty"`
	FromUser       string           `json:"fromUser,omitempty"`
	Level          int              `json:"level,omitempty"`
	LeftBusiness   *decimal.Decimal `json:"leftBusiness,omitempty"`
	RightBusiness  *decimal.Decimal `json:"rightBusiness,omitempty"`
	MatchingAmount *decimal.Decimal `json:"matchingAmount,omitempty"`
	RewardName     string           `json:"rewardName,omitempty"`
	Rank           string           `json:"rank,omitempty"`
	Status         string           `json:"status,omitempty"`
}

// TradingActivityRow is one projected row of the trading activity log.
// Profit and loss fields are mutually exclusive, derived from the buy and
// sell prices of the underlying trade.
type TradingActivityRow struct {
	ID            string           `json:"id"`
	SlNo          int              `json:"slNo"`
	Date          time.Time        `json:"date"`
	Pair          string           `json:"pair"`
	Low           decimal.Decimal  `json:"low"`
	High          decimal.Decimal  `json:"high"`
	PurchasePrice decimal.Decimal  `json:"purchasePrice"`
	SellingPrice  decimal.Decimal  `json:"sellingPrice"`
	ProfitPercent *decimal.Decimal `json:"profitPercent,omitempty"`
	LossPercent   *decimal.Decimal `json:"lossPercent,omitempty"`
	ProfitAmount  *decimal.Decimal `json:"profitAmount,omitempty"`
	LossAmount    *decimal.Decimal `json:"lossAmount,omitempty"`
	Prediction    string           `json:"prediction"`
}

// TradingLog is one executed bot trade as persisted by the trading pipeline.
// The activity report is a pure projection of these rows.
type TradingLog struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        uuid.UUID       `json:"-" db:"user_id"`
	Pair          string          `json:"pair" db:"pair"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" db:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" db:"selling_price"`
	Invested      decimal.Decimal `json:"invested" db:"invested"`
	TradedAt      time.Time       `json:"tradedAt" db:"traded_at"`
}
