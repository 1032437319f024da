// internal/domain/forecast.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SKU is the catalog identity of a stock keeping unit.
type SKU struct {
	ID   string `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}

// SaleLineItem is one sold line read from the sales ledger.
type SaleLineItem struct {
	Date      time.Time       `json:"date" db:"sale_date"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
}

// DailyDemandPoint is the sell-through of one SKU on one calendar day.
// Days without sales are present with zero quantity and revenue.
type DailyDemandPoint struct {
	Date         time.Time       `json:"date"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TrendSummary characterizes the direction and weekly pattern of demand.
type TrendSummary struct {
	Direction      TrendDirection `json:"direction"`
	PercentChange  float64        `json:"percent_change"`
	HasSeasonality bool           `json:"has_seasonality"`
}

// ForecastPoint is the expected demand for one future day.
type ForecastPoint struct {
	Date             time.Time `json:"date"`
	ExpectedQuantity int       `json:"expected_quantity"`
	LowEstimate      int       `json:"low_estimate"`
	HighEstimate     int       `json:"high_estimate"`
	Confidence       int       `json:"confidence"`
}

// InventoryPosition is the stock snapshot taken at forecast time.
type InventoryPosition struct {
	CurrentStock  int `json:"current_stock" db:"current_stock"`
	ReservedStock int `json:"reserved_stock" db:"reserved_stock"`
}

// AvailableStock is on-hand minus reserved. It goes negative when
// reservations exceed stock.
func (p InventoryPosition) AvailableStock() int {
	return p.CurrentStock - p.ReservedStock
}

// ReplenishmentAssessment is the reorder arithmetic for one SKU.
type ReplenishmentAssessment struct {
	DaysOfStock         int     `json:"days_of_stock"`
	SafetyStock         int     `json:"safety_stock"`
	ReorderPoint        int     `json:"reorder_point"`
	SuggestedReorderQty int     `json:"suggested_reorder_qty"`
	Urgency             Urgency `json:"urgency"`
	ExpectedDemand      int     `json:"expected_demand"`
	DailyDemand         float64 `json:"daily_demand"`
}

// DemandForecast is the full forecasting result for one SKU.
type DemandForecast struct {
	SKU           SKU                      `json:"sku"`
	History       []DailyDemandPoint       `json:"history"`
	Forecast      []ForecastPoint          `json:"forecast"`
	Trend         TrendSummary             `json:"trend"`
	Inventory     *InventoryPosition       `json:"inventory"`
	Replenishment *ReplenishmentAssessment `json:"replenishment"`
	GeneratedAt   time.Time                `json:"generated_at"`
}

// ReorderRecommendation is the flattened projection used by procurement action lists.
type ReorderRecommendation struct {
	SKU                 SKU     `json:"sku"`
	CurrentStock        int     `json:"current_stock"`
	AvailableStock      int     `json:"available_stock"`
	ReorderPoint        int     `json:"reorder_point"`
	SuggestedReorderQty int     `json:"suggested_reorder_qty"`
	Urgency             Urgency `json:"urgency"`
	ExpectedDemand      int     `json:"expected_demand"`
}

// BatchSummary aggregates urgency and trend counts across a batch run.
type BatchSummary struct {
	TotalSKUs    int `json:"total_skus"`
	Critical     int `json:"critical"`
	Low          int `json:"low"`
	Adequate     int `json:"adequate"`
	Excess       int `json:"excess"`
	TrendingUp   int `json:"trending_up"`
	TrendingDown int `json:"trending_down"`
	Failed       int `json:"failed"`
}

// BatchForecast is the result of forecasting the top-selling SKUs.
type BatchForecast struct {
	Forecasts   []*DemandForecast `json:"forecasts"`
	Summary     BatchSummary      `json:"summary"`
	GeneratedAt time.Time         `json:"generated_at"`
}
