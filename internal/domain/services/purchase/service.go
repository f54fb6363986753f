// Package purchase implements package purchases and the catalog listing.
package purchase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// WalletStore reads wallet state for the affordability pre-check.
type WalletStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*entities.WalletState, error)
}

// LedgerStore posts and lists purchase entries.
type LedgerStore interface {
	PostPurchase(ctx context.Context, userID uuid.UUID, entry *entities.PurchaseEntry) error
	ListPurchases(ctx context.Context, userID uuid.UUID) ([]*entities.PurchaseEntry, error)
	ActivePurchaseTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// CatalogStore reads the package catalog.
type CatalogStore interface {
	ListActive(ctx context.Context) ([]*entities.Package, error)
}

// CatalogCache caches the catalog listing. Optional; a nil cache means
// every listing hits the database.
type CatalogCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

const catalogCacheKey = "catalog:packages"

// Service is the package purchase engine.
type Service struct {
	wallets    WalletStore
	ledger     LedgerStore
	catalog    CatalogStore
	cache      CatalogCache
	cacheTTL   time.Duration
	minAmount  decimal.Decimal
	termMonths int
	logger     *logger.Logger
}

func NewService(wallets WalletStore, ledger LedgerStore, catalog CatalogStore, cache CatalogCache, cacheTTL time.Duration, minAmount float64, termMonths int, log *logger.Logger) *Service {
	return &Service{
		wallets:    wallets,
		ledger:     ledger,
		catalog:    catalog,
		cache:      cache,
		cacheTTL:   cacheTTL,
		minAmount:  decimal.NewFromFloat(minAmount),
		termMonths: termMonths,
		logger:     log,
	}
}

// Purchase debits the funding wallet and appends the purchase entry. The
// package name doubles as the bot name; validity runs one term from today.
func (s *Service) Purchase(ctx context.Context, userID uuid.UUID, packageName string, amount decimal.Decimal, wallet entities.WalletCategory) (*entities.PurchaseEntry, error) {
	if err := wallet.Validate(); err != nil {
		return nil, domainerrors.ErrInvalidWalletCategory
	}
	if amount.Sign() <= 0 {
		return nil, domainerrors.InvalidAmountError(amount.String())
	}
	if amount.LessThan(s.minAmount) {
		return nil, domainerrors.BelowMinimumError(amount.String(), s.minAmount.String())
	}

	state, err := s.wallets.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !state.CanAfford(wallet, amount) {
		return nil, domainerrors.InsufficientFundsError(string(wallet), state.Balance(wallet).String(), amount.String())
	}

	start := time.Now().UTC()
	entry := &entities.PurchaseEntry{
		PackageName: packageName,
		BotName:     packageName,
		Amount:      amount,
		Wallet:      wallet,
		Status:      entities.PackageStatusActive,
		StartDate:   start,
		EndDate:     start.AddDate(0, s.termMonths, 0),
	}
	if err := s.ledger.PostPurchase(ctx, userID, entry); err != nil {
		if errors.Is(err, domainerrors.ErrInsufficientFunds) || errors.Is(err, domainerrors.ErrWalletNotFound) {
			return nil, err
		}
		s.logger.Error("purchase failed", "user_id", userID, "error", err)
		return nil, domainerrors.PersistenceError("purchase", err)
	}

	s.logger.Info("package purchased",
		"user_id", userID, "package", packageName,
		"amount", amount.String(), "reference", entry.PackageRef)
	return entry, nil
}

// GetPurchaseHistory returns the member's purchases, newest first.
func (s *Service) GetPurchaseHistory(ctx context.Context, userID uuid.UUID) ([]*entities.PurchaseEntry, error) {
	return s.ledger.ListPurchases(ctx, userID)
}

// GetActiveTotal sums the member's active package amounts.
func (s *Service) GetActiveTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return s.ledger.ActivePurchaseTotal(ctx, userID)
}

// ListPackages returns the purchasable catalog, cached for a short TTL.
// Cache faults degrade to a database read; they never fail the listing.
func (s *Service) ListPackages(ctx context.Context) ([]*entities.Package, error) {
	if s.cache != nil {
		var cached []*entities.Package
		hit, err := s.cache.GetJSON(ctx, catalogCacheKey, &cached)
		if err != nil {
			s.logger.Warn("catalog cache read failed", "error", err)
		} else if hit {
			return cached, nil
		}
	}

	packages, err := s.catalog.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, catalogCacheKey, packages, s.cacheTTL); err != nil {
			s.logger.Warn("catalog cache write failed", "error", err)
		}
	}
	return packages, nil
}
