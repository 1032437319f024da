package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/autopo-forecast/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidLookback is returned when the lookback window is shorter than one day.
var ErrInvalidLookback = errors.New("lookback window must be at least 1 day")

// AggregateDailyHistory turns raw sale line items into a dense daily series covering
// every calendar day from day(now)-lookbackDays to day(now) inclusive, oldest first.
// Days without sales are materialized with zero quantity and revenue.
func AggregateDailyHistory(items []domain.SaleLineItem, now time.Time, lookbackDays int) ([]domain.DailyDemandPoint, error) {
	if lookbackDays < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLookback, lookbackDays)
	}

	end := CalendarDay(now)
	start := end.AddDate(0, 0, -lookbackDays)

	points := make([]domain.DailyDemandPoint, lookbackDays+1)
	for i := range points {
		points[i] = domain.DailyDemandPoint{
			Date:    start.AddDate(0, 0, i),
			Revenue: decimal.Zero,
		}
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}

		day := CalendarDay(item.Date)
		if day.Before(start) || day.After(end) {
			continue
		}

		idx := int(day.Sub(start).Hours() / 24)
		points[idx].QuantitySold += item.Quantity
		points[idx].Revenue = points[idx].Revenue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return points, nil
}

// CalendarDay drops the clock and zone of t, keeping its calendar date as a UTC midnight.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Quantities extracts the quantity series from a daily history.
func Quantities(points []domain.DailyDemandPoint) []int {
	series := make([]int, len(points))
	for i, p := range points {
		series[i] = p.QuantitySold
	}
	return series
}
