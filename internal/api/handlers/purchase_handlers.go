package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	"github.com/trayd-platform/trayd_service/internal/domain/services/purchase"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// PurchaseHandler serves the package catalog and purchases.
type PurchaseHandler struct {
	service *purchase.Service
	logger  *logger.Logger
}

func NewPurchaseHandler(service *purchase.Service, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{service: service, logger: log}
}

// ListPackages returns the purchasable catalog.
// GET /api/v1/packages
func (h *PurchaseHandler) ListPackages(c *gin.Context) {
	packages, err := h.service.ListPackages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, packages)
}

// Purchase buys a package from one wallet.
// POST /api/v1/packages/purchase
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entities.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.service.Purchase(c.Request.Context(), userID, req.PackageName, req.Amount, req.Wallet)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, entry)
}

// GetPurchaseHistory lists the member's purchases, newest first.
// GET /api/v1/packages/history
func (h *PurchaseHandler) GetPurchaseHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.service.GetPurchaseHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries)
}

// GetActiveTotal returns the sum of the member's active package amounts.
// GET /api/v1/packages/active-total
func (h *PurchaseHandler) GetActiveTotal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	total, err := h.service.GetActiveTotal(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"activeTotal": total})
}
