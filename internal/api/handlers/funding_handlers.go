package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	"github.com/trayd-platform/trayd_service/internal/domain/services/funding"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// FundingHandler serves deposits and the income feed.
type FundingHandler struct {
	service *funding.Service
	logger  *logger.Logger
}

func NewFundingHandler(service *funding.Service, log *logger.Logger) *FundingHandler {
	return &FundingHandler{service: service, logger: log}
}

// Deposit credits the member's deposit wallet.
// POST /api/v1/funding/deposits
func (h *FundingHandler) Deposit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entities.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.service.Deposit(c.Request.Context(), userID, req.Amount, req.CoinType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, entry)
}

// GetDepositHistory lists the member's deposits, newest first.
// GET /api/v1/funding/deposits
func (h *FundingHandler) GetDepositHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.service.GetDepositHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries)
}

// GetIncomeFeed lists the member's income transactions, newest first.
// GET /api/v1/funding/income
func (h *FundingHandler) GetIncomeFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.service.GetIncomeFeed(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries)
}
