package forecast

import (
	"math"

	"github.com/andresuchdata/autopo-forecast/internal/domain"
)

const (
	minTrendPoints = 4
	// trendThresholdPct is the percent swing beyond which demand counts as trending.
	trendThresholdPct = 10
)

// AnalyzeTrend compares the mean of the second half of the series against the first
// half and returns the trend direction with the rounded percent change.
func AnalyzeTrend(series []int) (domain.TrendDirection, float64) {
	if len(series) < minTrendPoints {
		return domain.TrendStable, 0
	}

	mid := len(series) / 2
	firstAvg := mean(series[:mid])
	secondAvg := mean(series[mid:])

	percentChange := 0.0
	if firstAvg > 0 {
		percentChange = roundHalfUp((secondAvg - firstAvg) * 100 / firstAvg)
	}

	switch {
	case percentChange > trendThresholdPct:
		return domain.TrendUp, percentChange
	case percentChange < -trendThresholdPct:
		return domain.TrendDown, percentChange
	default:
		return domain.TrendStable, percentChange
	}
}

func mean(series []int) float64 {
	if len(series) == 0 {
		return 0
	}

	sum := 0
	for _, v := range series {
		sum += v
	}
	return float64(sum) / float64(len(series))
}

// roundHalfUp rounds halves toward positive infinity: 2.5 becomes 3, -10.5 becomes -10.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
