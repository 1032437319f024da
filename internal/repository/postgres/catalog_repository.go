package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresuchdata/autopo-forecast/internal/domain"
	"github.com/andresuchdata/autopo-forecast/internal/repository"
)

type catalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) repository.Catalog {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetSKU(ctx context.Context, skuID string) (*domain.SKU, bool, error) {
	query := `
		SELECT id, sku_code AS code, name
		FROM products
		WHERE id = $1
	`

	var sku domain.SKU
	err := r.db.withRead(ctx, func() error {
		return r.db.GetContext(ctx, &sku, query, skuID)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error getting sku %s: %w", skuID, err)
	}

	return &sku, true, nil
}
