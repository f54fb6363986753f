package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	"github.com/trayd-platform/trayd_service/internal/domain/services/wallet"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// WalletHandler serves wallet balances, transfers and withdrawals.
type WalletHandler struct {
	service *wallet.Service
	logger  *logger.Logger
}

func NewWalletHandler(service *wallet.Service, log *logger.Logger) *WalletHandler {
	return &WalletHandler{service: service, logger: log}
}

// GetWallets returns the member's five wallet balances.
// GET /api/v1/wallets
func (h *WalletHandler) GetWallets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state, err := h.service.GetWallets(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, state)
}

// Transfer moves funds between wallets or out to an external address.
// POST /api/v1/wallets/transfer
func (h *WalletHandler) Transfer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entities.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var (
		entry *entities.TransferEntry
		err   error
	)
	if req.External {
		entry, err = h.service.TransferExternal(c.Request.Context(), userID, req.From, req.ExternalAddress, req.Amount)
	} else {
		entry, err = h.service.TransferInternal(c.Request.Context(), userID, req.From, req.To, req.Amount)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, entry)
}

// Withdraw requests a withdrawal from one wallet.
// POST /api/v1/wallets/withdraw
func (h *WalletHandler) Withdraw(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entities.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.service.Withdraw(c.Request.Context(), userID, req.Wallet, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, entry)
}

// GetTransferHistory lists the member's transfers, newest first.
// GET /api/v1/wallets/transfers
func (h *WalletHandler) GetTransferHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.service.GetTransferHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries)
}

// GetWithdrawalHistory lists the member's withdrawals, newest first.
// GET /api/v1/wallets/withdrawals
func (h *WalletHandler) GetWithdrawalHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.service.GetWithdrawalHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries)
}
