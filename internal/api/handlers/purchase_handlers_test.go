package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trayd-platform/trayd_service/internal/api/middleware"
	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	"github.com/trayd-platform/trayd_service/internal/domain/services/purchase"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

type stubPurchaseLedger struct {
	activeTotal decimal.Decimal
	totalErr    error
}

func (s *stubPurchaseLedger) PostPurchase(_ context.Context, userID uuid.UUID, entry *entities.PurchaseEntry) error {
	entry.ID = uuid.New()
	entry.UserID = userID
	entry.SlNo = 1
	entry.PackageRef = "PKG00100001"
	return nil
}

func (s *stubPurchaseLedger) ListPurchases(context.Context, uuid.UUID) ([]*entities.PurchaseEntry, error) {
	return []*entities.PurchaseEntry{}, nil
}

func (s *stubPurchaseLedger) ActivePurchaseTotal(context.Context, uuid.UUID) (decimal.Decimal, error) {
	return s.activeTotal, s.totalErr
}

type stubCatalog struct{}

func (stubCatalog) ListActive(context.Context) ([]*entities.Package, error) {
	return []*entities.Package{}, nil
}

func newPurchaseRouter(ledger *stubPurchaseLedger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("error", "test")
	svc := purchase.NewService(fundedWallet("500"), ledger, stubCatalog{}, nil, 0, 50, 12, log)
	handler := NewPurchaseHandler(svc, log)

	router := gin.New()
	authed := router.Group("/", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uuid.New())
	})
	authed.GET("/packages/active-total", handler.GetActiveTotal)
	return router
}

func TestGetActiveTotalHandler(t *testing.T) {
	t.Run("returns the active package sum", func(t *testing.T) {
		router := newPurchaseRouter(&stubPurchaseLedger{
			activeTotal: decimal.RequireFromString("350"),
		})

		req := httptest.NewRequest(http.MethodGet, "/packages/active-total", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data struct {
				ActiveTotal decimal.Decimal `json:"activeTotal"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Data.ActiveTotal.Equal(decimal.NewFromInt(350)))
	})

	t.Run("storage failure maps to an error response", func(t *testing.T) {
		router := newPurchaseRouter(&stubPurchaseLedger{totalErr: assert.AnError})

		req := httptest.NewRequest(http.MethodGet, "/packages/active-total", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
