// Package report produces the income and trading activity reports. Every
// report is a pure projection of ledger rows, recomputed fresh on each call
// and never cached, so it can never disagree with the ledger it reads.
package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// LedgerStore reads the rows the projections are computed from.
type LedgerStore interface {
	ListIncomeByType(ctx context.Context, userID uuid.UUID, incomeType entities.IncomeType) ([]*entities.IncomeTransaction, error)
	ListTradingLogs(ctx context.Context, userID uuid.UUID) ([]*entities.TradingLog, error)
}

// Service is the report projection engine.
type Service struct {
	ledger LedgerStore
	logger *logger.Logger
}

func NewService(ledger LedgerStore, log *logger.Logger) *Service {
	return &Service{ledger: ledger, logger: log}
}

// placeholderFromUser fills the source-member column where the income feed
// carries no originator.
const placeholderFromUser = "N/A"

// placeholderLevel fills the referral level column until levels are modeled.
const placeholderLevel = 1

// GetIncomeReport projects the income feed of one type into the report's
// column set. Rows keep the feed's newest-first order; slNo restarts at 1
// per report.
func (s *Service) GetIncomeReport(ctx context.Context, userID uuid.UUID, reportType entities.ReportType) ([]*entities.IncomeReportRow, error) {
	if err := reportType.Validate(); err != nil {
		return nil, domainerrors.NewDomainError(domainerrors.ErrInvalidInput, "INVALID_REPORT_TYPE", err.Error())
	}

	transactions, err := s.ledger.ListIncomeByType(ctx, userID, reportType.IncomeType())
	if err != nil {
		return nil, err
	}

	rows := make([]*entities.IncomeReportRow, 0, len(transactions))
	for i, txn := range transactions {
		row := &entities.IncomeReportRow{
			ID:     txn.ID.String(),
			SlNo:   i + 1,
			Date:   txn.CreatedAt,
			Amount: txn.Amount,
			Status: txn.Status,
		}
		switch reportType {
		case entities.ReportTrading:
			row.Description = txn.Description
		case entities.ReportReferral:
			fromUser := placeholderFromUser
			if txn.FromUser != nil && *txn.FromUser != "" {
				fromUser = *txn.FromUser
			}
			row.FromUser = fromUser
			row.Level = placeholderLevel
		case entities.ReportBinary:
			zero := decimal.Zero
			row.LeftBusiness = &zero
			row.RightBusiness = &zero
			row.MatchingAmount = &zero
		case entities.ReportRewards:
			row.RewardName = txn.Description
			row.Rank = placeholderFromUser
		case entities.ReportUpline:
			row.Description = txn.Description
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// GetTradingActivity projects executed bot trades into the activity log.
// Profit or loss is derived from the buy and sell prices; exactly one of
// the two is populated per row.
func (s *Service) GetTradingActivity(ctx context.Context, userID uuid.UUID) ([]*entities.TradingActivityRow, error) {
	logs, err := s.ledger.ListTradingLogs(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := make([]*entities.TradingActivityRow, 0, len(logs))
	for i, log := range logs {
		row := &entities.TradingActivityRow{
			ID:            log.ID.String(),
			SlNo:          i + 1,
			Date:          log.TradedAt,
			Pair:          log.Pair,
			Low:           decimal.Min(log.PurchasePrice, log.SellingPrice),
			High:          decimal.Max(log.PurchasePrice, log.SellingPrice),
			PurchasePrice: log.PurchasePrice,
			SellingPrice:  log.SellingPrice,
		}

		diff := log.SellingPrice.Sub(log.PurchasePrice)
		if log.PurchasePrice.Sign() > 0 {
			percent := diff.Div(log.PurchasePrice).Mul(decimal.NewFromInt(100)).Round(2)
			amount := log.Invested.Mul(diff).Div(log.PurchasePrice).Round(2)
			if diff.Sign() >= 0 {
				row.ProfitPercent = &percent
				row.ProfitAmount = &amount
				row.Prediction = "profit"
			} else {
				lossPercent := percent.Abs()
				lossAmount := amount.Abs()
				row.LossPercent = &lossPercent
				row.LossAmount = &lossAmount
				row.Prediction = "loss"
			}
		} else {
			row.Prediction = "profit"
			zero := decimal.Zero
			row.ProfitPercent = &zero
			row.ProfitAmount = &zero
		}
		rows = append(rows, row)
	}
	return rows, nil
}
