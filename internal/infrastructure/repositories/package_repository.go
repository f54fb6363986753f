package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
)

// PackageRepository reads the purchasable package catalog.
type PackageRepository struct {
	db *sqlx.DB
}

func NewPackageRepository(db *sqlx.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// ListActive returns the active catalog entries in ascending price order.
func (r *PackageRepository) ListActive(ctx context.Context) ([]*entities.Package, error) {
	packages := []*entities.Package{}
	query := `
		SELECT id, name, bot_name, min_amount, max_amount, active
		FROM packages
		WHERE active = TRUE
		ORDER BY min_amount ASC`
	if err := r.db.SelectContext(ctx, &packages, query); err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return packages, nil
}
