package forecast

import "math"

// DefaultAlpha is the smoothing factor used when none (or an invalid one) is given.
const DefaultAlpha = 0.3

// SmoothingResult holds a flat exponential-smoothing forecast.
type SmoothingResult struct {
	// Forecast has one rounded value per requested period; all values are equal.
	Forecast []int
	// Level is the final smoothed value before rounding.
	Level float64
	// Confidence is 0-100, derived from the coefficient of variation around Level.
	Confidence int
}

// Smooth applies single exponential smoothing to series and projects the final level
// flat across periods. Alpha outside (0, 1] falls back to DefaultAlpha.
func Smooth(series []int, periods int, alpha float64) SmoothingResult {
	if len(series) == 0 {
		return SmoothingResult{Forecast: []int{}}
	}

	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}

	level := float64(series[0])
	for _, v := range series[1:] {
		level = alpha*float64(v) + (1-alpha)*level
	}

	if periods < 0 {
		periods = 0
	}
	forecast := make([]int, periods)
	projected := int(roundHalfUp(level))
	for i := range forecast {
		forecast[i] = projected
	}

	cv := 0.0
	if level > 0 {
		cv = math.Sqrt(residualVariance(series, level)) / level
	}
	confidence := int(roundHalfUp(math.Max(0, math.Min(100, (1-cv)*100))))

	return SmoothingResult{
		Forecast:   forecast,
		Level:      level,
		Confidence: confidence,
	}
}

// residualVariance is the sample variance (n-1 divisor) of series around center.
func residualVariance(series []int, center float64) float64 {
	n := len(series)
	if n <= 1 {
		return 0
	}

	sum := 0.0
	for _, v := range series {
		d := float64(v) - center
		sum += d * d
	}
	return sum / float64(n-1)
}
