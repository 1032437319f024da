package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/autopo-forecast/internal/domain"
	"github.com/andresuchdata/autopo-forecast/internal/repository"
)

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) repository.SalesLedger {
	return &salesRepository{db: db}
}

func (r *salesRepository) GetSaleLineItems(ctx context.Context, skuID string, since time.Time) ([]domain.SaleLineItem, error) {
	query := `
		SELECT
			s.sale_date,
			si.quantity,
			si.unit_price
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE si.product_id = $1
		  AND s.sale_date >= $2
		ORDER BY s.sale_date
	`

	var items []domain.SaleLineItem
	err := r.db.withRead(ctx, func() error {
		return r.db.SelectContext(ctx, &items, query, skuID, since)
	})
	if err != nil {
		return nil, fmt.Errorf("error getting sale line items for %s: %w", skuID, err)
	}

	return items, nil
}

func (r *salesRepository) RankTopSkusByVolume(ctx context.Context, windowDays, limit int) ([]string, error) {
	if windowDays <= 0 {
		windowDays = 90
	}
	if limit <= 0 {
		return []string{}, nil
	}

	query := `
		SELECT si.product_id
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.sale_date >= current_date - make_interval(days => $1::int)
		GROUP BY si.product_id
		ORDER BY SUM(si.quantity) DESC, si.product_id
		LIMIT $2
	`

	var ids []string
	err := r.db.withRead(ctx, func() error {
		return r.db.SelectContext(ctx, &ids, query, windowDays, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("error ranking top skus: %w", err)
	}

	return ids, nil
}
