package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

type mockWallets struct {
	mock.Mock
}

func (m *mockWallets) Get(ctx context.Context, userID uuid.UUID) (*entities.WalletState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletState), args.Error(1)
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) PostPurchase(ctx context.Context, userID uuid.UUID, entry *entities.PurchaseEntry) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *mockLedger) ListPurchases(ctx context.Context, userID uuid.UUID) ([]*entities.PurchaseEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PurchaseEntry), args.Error(1)
}

func (m *mockLedger) ActivePurchaseTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ListActive(ctx context.Context) ([]*entities.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Package), args.Error(1)
}

// memoryCache is a map-backed catalog cache.
type memoryCache struct {
	values map[string][]*entities.Package
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	cached, ok := c.values[key]
	if !ok {
		return false, nil
	}
	*dest.(*[]*entities.Package) = cached
	return true, nil
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.values[key] = value.([]*entities.Package)
	return nil
}

func walletWith(deposit string) *entities.WalletState {
	return &entities.WalletState{Deposit: decimal.RequireFromString(deposit)}
}

func newTestService(wallets *mockWallets, ledger *mockLedger, catalog *mockCatalog, cache CatalogCache) *Service {
	return NewService(wallets, ledger, catalog, cache, time.Minute, 50, 12, logger.New("error", "test"))
}

func TestPurchase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("posts entry with one-year term and mirrored bot name", func(t *testing.T) {
		wallets := new(mockWallets)
		ledger := new(mockLedger)
		svc := newTestService(wallets, ledger, new(mockCatalog), nil)

		wallets.On("Get", ctx, userID).Return(walletWith("500"), nil)
		ledger.On("PostPurchase", ctx, userID, mock.MatchedBy(func(entry *entities.PurchaseEntry) bool {
			return entry.PackageName == "Growth Bot" &&
				entry.BotName == "Growth Bot" &&
				entry.Status == entities.PackageStatusActive &&
				entry.EndDate.Equal(entry.StartDate.AddDate(0, 12, 0))
		})).Return(nil)

		entry, err := svc.Purchase(ctx, userID, "Growth Bot", decimal.NewFromInt(500), entities.WalletDeposit)
		require.NoError(t, err)
		assert.Equal(t, entry.PackageName, entry.BotName)
		assert.WithinDuration(t, time.Now().UTC(), entry.StartDate, 5*time.Second)
		ledger.AssertExpectations(t)
	})

	t.Run("enforces the purchase floor", func(t *testing.T) {
		wallets := new(mockWallets)
		ledger := new(mockLedger)
		svc := newTestService(wallets, ledger, new(mockCatalog), nil)

		_, err := svc.Purchase(ctx, userID, "Starter Bot", decimal.RequireFromString("49.99"), entities.WalletDeposit)
		assert.ErrorIs(t, err, domainerrors.ErrBelowMinimum)
		ledger.AssertNotCalled(t, "PostPurchase", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("accepts exactly the floor", func(t *testing.T) {
		wallets := new(mockWallets)
		ledger := new(mockLedger)
		svc := newTestService(wallets, ledger, new(mockCatalog), nil)

		wallets.On("Get", ctx, userID).Return(walletWith("50"), nil)
		ledger.On("PostPurchase", ctx, userID, mock.Anything).Return(nil)

		_, err := svc.Purchase(ctx, userID, "Starter Bot", decimal.NewFromInt(50), entities.WalletDeposit)
		assert.NoError(t, err)
	})

	t.Run("fails on insufficient funds without posting", func(t *testing.T) {
		wallets := new(mockWallets)
		ledger := new(mockLedger)
		svc := newTestService(wallets, ledger, new(mockCatalog), nil)

		wallets.On("Get", ctx, userID).Return(walletWith("100"), nil)

		_, err := svc.Purchase(ctx, userID, "Growth Bot", decimal.NewFromInt(200), entities.WalletDeposit)
		assert.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)
		ledger.AssertNotCalled(t, "PostPurchase", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown wallet category", func(t *testing.T) {
		svc := newTestService(new(mockWallets), new(mockLedger), new(mockCatalog), nil)

		_, err := svc.Purchase(ctx, userID, "Growth Bot", decimal.NewFromInt(100), "savings")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidWalletCategory)
	})
}

func TestListPackages(t *testing.T) {
	ctx := context.Background()

	t.Run("reads through and fills the cache", func(t *testing.T) {
		catalog := new(mockCatalog)
		cache := &memoryCache{values: map[string][]*entities.Package{}}
		svc := newTestService(new(mockWallets), new(mockLedger), catalog, cache)

		want := []*entities.Package{{ID: 1, Name: "Starter Bot"}}
		catalog.On("ListActive", ctx).Return(want, nil).Once()

		got, err := svc.ListPackages(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		// second call served from cache
		got, err = svc.ListPackages(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		catalog.AssertNumberOfCalls(t, "ListActive", 1)
	})

	t.Run("works without a cache", func(t *testing.T) {
		catalog := new(mockCatalog)
		svc := newTestService(new(mockWallets), new(mockLedger), catalog, nil)

		want := []*entities.Package{{ID: 1, Name: "Starter Bot"}}
		catalog.On("ListActive", ctx).Return(want, nil)

		got, err := svc.ListPackages(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}
