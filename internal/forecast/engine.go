package forecast

import (
	"time"

	"github.com/andresuchdata/autopo-forecast/internal/domain"
)

// Params controls a single forecasting run.
type Params struct {
	HorizonDays  int
	LookbackDays int
	Alpha        float64
	Now          time.Time
}

// Build runs the full pipeline for one SKU: aggregate history, analyze trend and
// seasonality, smooth, then plan. Inventory may be nil.
func Build(sku domain.SKU, items []domain.SaleLineItem, inventory *domain.InventoryPosition, p Params) (*domain.DemandForecast, error) {
	history, err := AggregateDailyHistory(items, p.Now, p.LookbackDays)
	if err != nil {
		return nil, err
	}

	series := Quantities(history)
	direction, percentChange := AnalyzeTrend(series)
	trend := domain.TrendSummary{
		Direction:      direction,
		PercentChange:  percentChange,
		HasSeasonality: DetectWeeklySeasonality(series),
	}

	smoothing := Smooth(series, p.HorizonDays, p.Alpha)
	points, assessment := Plan(PlanInput{
		History:   series,
		Smoothing: smoothing,
		Trend:     trend,
		Inventory: inventory,
		Today:     p.Now,
	})

	return &domain.DemandForecast{
		SKU:           sku,
		History:       history,
		Forecast:      points,
		Trend:         trend,
		Inventory:     inventory,
		Replenishment: assessment,
		GeneratedAt:   p.Now,
	}, nil
}
