// internal/repository/forecast_repository.go
package repository

import (
	"context"
	"time"

	"github.com/andresuchdata/autopo-forecast/internal/domain"
)

// SalesLedger reads historical sell-through from the order/sales ledger.
type SalesLedger interface {
	// GetSaleLineItems returns every sold line for skuID on or after since.
	// An empty result is valid for SKUs without sales.
	GetSaleLineItems(ctx context.Context, skuID string, since time.Time) ([]domain.SaleLineItem, error)
	// RankTopSkusByVolume returns up to limit SKU ids ordered by units sold over the
	// trailing windowDays, best seller first.
	RankTopSkusByVolume(ctx context.Context, windowDays, limit int) ([]string, error)
}

// InventoryLedger reads the current stock position.
type InventoryLedger interface {
	// GetInventoryPosition returns a zero position when no inventory record exists.
	GetInventoryPosition(ctx context.Context, skuID string) (domain.InventoryPosition, error)
}

// Catalog resolves SKU identities.
type Catalog interface {
	GetSKU(ctx context.Context, skuID string) (*domain.SKU, bool, error)
}
