package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectWeeklySeasonality(t *testing.T) {
	testCases := []struct {
		name     string
		series   []int
		expected bool
	}{
		{"same weekly pattern", []int{5, 0, 0, 0, 0, 0, 0, 5, 0, 0, 0, 0, 0, 0}, true},
		{"all zero", make([]int, 14), true},
		{"five of seven offsets match", []int{1, 1, 1, 1, 1, 0, 0, 2, 2, 2, 2, 2, 3, 3}, true},
		{"four of seven offsets match", []int{1, 1, 1, 1, 0, 0, 0, 2, 2, 2, 2, 3, 3, 3}, false},
		{"inverted pattern", []int{1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0}, false},
		{"magnitude does not matter", []int{1, 1, 1, 1, 1, 1, 1, 90, 40, 7, 3, 2, 1, 100}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectWeeklySeasonality(tc.series))
		})
	}
}

func TestDetectWeeklySeasonality_RequiresFourteenPoints(t *testing.T) {
	for n := 0; n < 14; n++ {
		assert.False(t, DetectWeeklySeasonality(make([]int, n)), "length %d", n)
	}
}

// Known limitation: only the first two weeks are compared, later data is ignored.
func TestDetectWeeklySeasonality_IgnoresDataAfterDayFourteen(t *testing.T) {
	firstTwoWeeks := []int{1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0}
	series := append(append([]int{}, firstTwoWeeks...), 5, 0, 0, 0, 0, 0, 0, 5, 0, 0, 0, 0, 0, 0)

	assert.False(t, DetectWeeklySeasonality(firstTwoWeeks))
	assert.False(t, DetectWeeklySeasonality(series))
}
