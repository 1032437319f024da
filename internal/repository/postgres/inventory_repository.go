package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresuchdata/autopo-forecast/internal/domain"
	"github.com/andresuchdata/autopo-forecast/internal/repository"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) repository.InventoryLedger {
	return &inventoryRepository{db: db}
}

// GetInventoryPosition sums stock across all inventory rows of the SKU.
func (r *inventoryRepository) GetInventoryPosition(ctx context.Context, skuID string) (domain.InventoryPosition, error) {
	query := `
		SELECT
			COALESCE(SUM(quantity), 0) AS current_stock,
			COALESCE(SUM(reserved_quantity), 0) AS reserved_stock
		FROM inventory
		WHERE product_id = $1
	`

	var pos domain.InventoryPosition
	err := r.db.withRead(ctx, func() error {
		return r.db.GetContext(ctx, &pos, query, skuID)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.InventoryPosition{}, nil
	}
	if err != nil {
		return domain.InventoryPosition{}, fmt.Errorf("error getting inventory for %s: %w", skuID, err)
	}

	return pos, nil
}
