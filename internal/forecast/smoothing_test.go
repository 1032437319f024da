package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmooth_EmptySeries(t *testing.T) {
	result := Smooth(nil, 30, DefaultAlpha)

	assert.NotNil(t, result.Forecast)
	assert.Empty(t, result.Forecast)
	assert.Zero(t, result.Confidence)
	assert.Zero(t, result.Level)
}

func TestSmooth_ConstantDemand(t *testing.T) {
	series := []int{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}

	result := Smooth(series, 7, 0.3)

	require.Len(t, result.Forecast, 7)
	for _, v := range result.Forecast {
		assert.Equal(t, 10, v)
	}
	assert.InDelta(t, 10, result.Level, 1e-9)
	assert.Equal(t, 100, result.Confidence)
}

func TestSmooth_Recurrence(t *testing.T) {
	// 4 -> 0.3*10 + 0.7*4 = 5.8 -> 0.3*1 + 0.7*5.8 = 4.36
	result := Smooth([]int{4, 10, 1}, 2, 0.3)

	assert.InDelta(t, 4.36, result.Level, 1e-9)
	assert.Equal(t, []int{4, 4}, result.Forecast)

	// variance around 4.36: (0.1296 + 31.8096 + 11.2896) / 2 = 21.6144
	cv := math.Sqrt(21.6144) / 4.36
	assert.Equal(t, int(math.Round(math.Max(0, (1-cv)*100))), result.Confidence)
}

func TestSmooth_ConfidenceClampedAtZero(t *testing.T) {
	result := Smooth([]int{0, 0, 0, 0, 100, 0, 0, 0, 0, 1}, 1, 0.3)

	assert.Zero(t, result.Confidence)
}

func TestSmooth_AllZeroSeries(t *testing.T) {
	result := Smooth(make([]int, 30), 5, 0.3)

	assert.Equal(t, []int{0, 0, 0, 0, 0}, result.Forecast)
	// cv is defined as 0 when the level is 0
	assert.Equal(t, 100, result.Confidence)
}

func TestSmooth_InvalidAlphaFallsBack(t *testing.T) {
	series := []int{3, 9, 4, 12, 7}

	assert.Equal(t, Smooth(series, 3, DefaultAlpha), Smooth(series, 3, 0))
	assert.Equal(t, Smooth(series, 3, DefaultAlpha), Smooth(series, 3, 1.5))
}

func TestSmooth_NonPositiveHorizon(t *testing.T) {
	result := Smooth([]int{1, 2, 3}, -4, 0.3)

	assert.Empty(t, result.Forecast)
	assert.Greater(t, result.Confidence, 0)
}

func TestSmooth_SinglePointHasZeroVariance(t *testing.T) {
	result := Smooth([]int{6}, 2, 0.3)

	assert.Equal(t, []int{6, 6}, result.Forecast)
	assert.Equal(t, 100, result.Confidence)
}
