package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	"github.com/trayd-platform/trayd_service/internal/domain/services/report"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// ReportHandler serves the income and trading activity reports.
type ReportHandler struct {
	service *report.Service
	logger  *logger.Logger
}

func NewReportHandler(service *report.Service, log *logger.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: log}
}

// GetIncomeReport projects one income report type.
// GET /api/v1/reports/income/:type
func (h *ReportHandler) GetIncomeReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reportType := entities.ReportType(c.Param("type"))
	rows, err := h.service.GetIncomeReport(c.Request.Context(), userID, reportType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, rows)
}

// GetTradingActivity projects the executed bot trades.
// GET /api/v1/reports/trading-activity
func (h *ReportHandler) GetTradingActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rows, err := h.service.GetTradingActivity(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, rows)
}
