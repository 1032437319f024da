// internal/service/forecast_service.go
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/andresuchdata/autopo-forecast/internal/config"
	"github.com/andresuchdata/autopo-forecast/internal/domain"
	"github.com/andresuchdata/autopo-forecast/internal/forecast"
	"github.com/andresuchdata/autopo-forecast/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ForecastService runs the forecasting pipeline for single SKUs and batches.
// It holds no mutable state; every call reads fresh history and inventory.
type ForecastService struct {
	sales     repository.SalesLedger
	inventory repository.InventoryLedger
	catalog   repository.Catalog
	cfg       config.ForecastConfig
	now       func() time.Time
}

// NewForecastService wires the ledgers into a service, filling zero config values with defaults.
func NewForecastService(
	sales repository.SalesLedger,
	inventory repository.InventoryLedger,
	catalog repository.Catalog,
	cfg config.ForecastConfig,
) *ForecastService {
	if cfg.Alpha <= 0 || cfg.Alpha > 1 {
		cfg.Alpha = forecast.DefaultAlpha
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 90
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = 30
	}
	if cfg.RankingWindowDays <= 0 {
		cfg.RankingWindowDays = 90
	}
	if cfg.BatchMaxSKUs <= 0 {
		cfg.BatchMaxSKUs = 20
	}
	if cfg.ReorderCandidatePool <= 0 {
		cfg.ReorderCandidatePool = 50
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	return &ForecastService{
		sales:     sales,
		inventory: inventory,
		catalog:   catalog,
		cfg:       cfg,
		now:       time.Now,
	}
}

// ForecastOne forecasts a single SKU. The boolean is false when the SKU does not
// exist in the catalog; that is not an error.
func (s *ForecastService) ForecastOne(ctx context.Context, skuID string, horizonDays, lookbackDays int) (*domain.DemandForecast, bool, error) {
	if horizonDays <= 0 {
		horizonDays = s.cfg.HorizonDays
	}
	if lookbackDays <= 0 {
		lookbackDays = s.cfg.LookbackDays
	}

	sku, ok, err := s.catalog.GetSKU(ctx, skuID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	now := s.now()
	since := forecast.CalendarDay(now).AddDate(0, 0, -lookbackDays)

	items, err := s.sales.GetSaleLineItems(ctx, skuID, since)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read sales history: %w", err)
	}

	position, err := s.inventory.GetInventoryPosition(ctx, skuID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read inventory: %w", err)
	}

	result, err := forecast.Build(*sku, items, &position, forecast.Params{
		HorizonDays:  horizonDays,
		LookbackDays: lookbackDays,
		Alpha:        s.cfg.Alpha,
		Now:          now,
	})
	if err != nil {
		return nil, false, err
	}

	log.Debug().
		Str("sku_id", skuID).
		Int("horizon_days", horizonDays).
		Str("trend", string(result.Trend.Direction)).
		Str("urgency", string(result.Replenishment.Urgency)).
		Msg("forecast computed")

	return result, true, nil
}

// ForecastBatch forecasts up to maxSkus best sellers concurrently. SKUs that are not
// found or whose reads fail are left out of the result; only cancellation aborts the run.
func (s *ForecastService) ForecastBatch(ctx context.Context, horizonDays, maxSkus int) (*domain.BatchForecast, error) {
	if horizonDays <= 0 {
		horizonDays = s.cfg.HorizonDays
	}
	if maxSkus <= 0 {
		maxSkus = s.cfg.BatchMaxSKUs
	}

	skuIDs, err := s.sales.RankTopSkusByVolume(ctx, s.cfg.RankingWindowDays, maxSkus)
	if err != nil {
		return nil, fmt.Errorf("failed to rank skus: %w", err)
	}

	// Each worker writes only its own slot, so ranking order is preserved without locking.
	results := make([]*domain.DemandForecast, len(skuIDs))
	failed := make([]bool, len(skuIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i, skuID := range skuIDs {
		if err := gctx.Err(); err != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result, ok, err := s.ForecastOne(gctx, skuID, horizonDays, s.cfg.LookbackDays)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Warn().Err(err).Str("sku_id", skuID).Msg("forecast batch: skipping sku")
				failed[i] = true
				return nil
			}
			if ok {
				results[i] = result
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	forecasts := make([]*domain.DemandForecast, 0, len(results))
	failedCount := 0
	for i, result := range results {
		if failed[i] {
			failedCount++
		}
		if result != nil {
			forecasts = append(forecasts, result)
		}
	}

	batch := &domain.BatchForecast{
		Forecasts:   forecasts,
		Summary:     summarize(forecasts, failedCount),
		GeneratedAt: s.now(),
	}

	log.Info().
		Int("ranked", len(skuIDs)).
		Int("forecasted", batch.Summary.TotalSKUs).
		Int("failed", batch.Summary.Failed).
		Int("critical", batch.Summary.Critical).
		Msg("forecast batch completed")

	return batch, nil
}

// ReorderRecommendations returns CRITICAL and LOW SKUs from a batch over the reorder
// candidate pool, critical first and then by suggested quantity descending.
func (s *ForecastService) ReorderRecommendations(ctx context.Context) ([]domain.ReorderRecommendation, error) {
	batch, err := s.ForecastBatch(ctx, s.cfg.HorizonDays, s.cfg.ReorderCandidatePool)
	if err != nil {
		return nil, err
	}

	return BuildReorderRecommendations(batch.Forecasts), nil
}

// BuildReorderRecommendations filters forecasts down to the ones needing a reorder and
// sorts them for procurement.
func BuildReorderRecommendations(forecasts []*domain.DemandForecast) []domain.ReorderRecommendation {
	recommendations := make([]domain.ReorderRecommendation, 0)
	for _, f := range forecasts {
		a := f.Replenishment
		if a == nil || !a.Urgency.NeedsReorder() {
			continue
		}

		rec := domain.ReorderRecommendation{
			SKU:                 f.SKU,
			ReorderPoint:        a.ReorderPoint,
			SuggestedReorderQty: a.SuggestedReorderQty,
			Urgency:             a.Urgency,
			ExpectedDemand:      a.ExpectedDemand,
		}
		if f.Inventory != nil {
			rec.CurrentStock = f.Inventory.CurrentStock
			rec.AvailableStock = f.Inventory.AvailableStock()
		}
		recommendations = append(recommendations, rec)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		ci := recommendations[i].Urgency == domain.UrgencyCritical
		cj := recommendations[j].Urgency == domain.UrgencyCritical
		if ci != cj {
			return ci
		}
		return recommendations[i].SuggestedReorderQty > recommendations[j].SuggestedReorderQty
	})

	return recommendations
}

func summarize(forecasts []*domain.DemandForecast, failed int) domain.BatchSummary {
	summary := domain.BatchSummary{
		TotalSKUs: len(forecasts),
		Failed:    failed,
	}

	for _, f := range forecasts {
		switch f.Trend.Direction {
		case domain.TrendUp:
			summary.TrendingUp++
		case domain.TrendDown:
			summary.TrendingDown++
		}

		if f.Replenishment == nil {
			continue
		}
		switch f.Replenishment.Urgency {
		case domain.UrgencyCritical:
			summary.Critical++
		case domain.UrgencyLow:
			summary.Low++
		case domain.UrgencyAdequate:
			summary.Adequate++
		case domain.UrgencyExcess:
			summary.Excess++
		}
	}

	return summary
}
