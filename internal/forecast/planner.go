package forecast

import (
	"math"
	"time"

	"github.com/andresuchdata/autopo-forecast/internal/domain"
)

const (
	// zScore95 scales the historical standard deviation into a ~95% interval.
	zScore95 = 1.96
	// NoStockoutDays is reported as days of stock when there is no demand.
	NoStockoutDays = 999

	safetyStockDays   = 7
	leadTimeCoverDays = 14

	criticalMaxDays = 7
	lowMaxDays      = 14
	adequateMaxDays = 60
)

// PlanInput carries everything the planner fuses into the final forecast.
type PlanInput struct {
	// History is the observed daily quantity series, oldest first.
	History   []int
	Smoothing SmoothingResult
	Trend     domain.TrendSummary
	// Inventory may be nil when no stock snapshot is available.
	Inventory *domain.InventoryPosition
	// Today is the forecast run date; the first forecast point is the day after.
	Today time.Time
}

// Plan applies the trend adjustment and confidence interval to the smoothed forecast and
// derives the replenishment assessment. The assessment is nil when Inventory is nil.
func Plan(in PlanInput) ([]domain.ForecastPoint, *domain.ReplenishmentAssessment) {
	// 1. Trend multiplier, damped to half the observed percent change
	trendMultiplier := 1 + in.Trend.PercentChange/200

	// 2. One standard deviation for the whole horizon
	stdDev := math.Sqrt(residualVariance(in.History, in.Smoothing.Level))
	margin := zScore95 * stdDev

	today := CalendarDay(in.Today)
	points := make([]domain.ForecastPoint, len(in.Smoothing.Forecast))
	expectedDemand := 0
	for i, raw := range in.Smoothing.Forecast {
		adjusted := int(math.Max(0, roundHalfUp(float64(raw)*trendMultiplier)))
		points[i] = domain.ForecastPoint{
			Date:             today.AddDate(0, 0, i+1),
			ExpectedQuantity: adjusted,
			LowEstimate:      int(math.Max(0, roundHalfUp(float64(adjusted)-margin))),
			HighEstimate:     int(roundHalfUp(float64(adjusted) + margin)),
			Confidence:       in.Smoothing.Confidence,
		}
		expectedDemand += adjusted
	}

	if in.Inventory == nil {
		return points, nil
	}

	return points, Assess(expectedDemand, len(points), in.Inventory.AvailableStock())
}

// Assess derives days of stock, safety stock, reorder point, suggested quantity and
// urgency from the expected demand over horizonDays and the available stock.
func Assess(expectedDemand, horizonDays, availableStock int) *domain.ReplenishmentAssessment {
	dailyDemand := 0.0
	if horizonDays > 0 {
		dailyDemand = float64(expectedDemand) / float64(horizonDays)
	}

	// 1. Days of stock
	daysOfStock := NoStockoutDays
	if dailyDemand > 0 {
		daysOfStock = int(roundHalfUp(float64(availableStock) / dailyDemand))
	}

	// 2. Safety stock = one week of demand
	safetyStock := int(math.Ceil(dailyDemand * safetyStockDays))

	// 3. Reorder point = two weeks of demand + safety stock
	reorderPoint := int(math.Ceil(dailyDemand*leadTimeCoverDays + float64(safetyStock)))

	// 4. Suggested quantity tops up to the reorder point plus two safety buffers
	suggested := math.Ceil(float64(reorderPoint-availableStock) + float64(safetyStock*2))

	return &domain.ReplenishmentAssessment{
		DaysOfStock:         daysOfStock,
		SafetyStock:         safetyStock,
		ReorderPoint:        reorderPoint,
		SuggestedReorderQty: int(math.Max(0, suggested)),
		Urgency:             ClassifyUrgency(daysOfStock),
		ExpectedDemand:      expectedDemand,
		DailyDemand:         dailyDemand,
	}
}

// ClassifyUrgency maps days of stock to an urgency tier. Boundaries are inclusive.
func ClassifyUrgency(daysOfStock int) domain.Urgency {
	switch {
	case daysOfStock <= criticalMaxDays:
		return domain.UrgencyCritical
	case daysOfStock <= lowMaxDays:
		return domain.UrgencyLow
	case daysOfStock <= adequateMaxDays:
		return domain.UrgencyAdequate
	default:
		return domain.UrgencyExcess
	}
}
