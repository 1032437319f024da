package forecast

const (
	weekDays = 7
	// seasonalMatchThreshold is the number of weekday offsets (out of 7) whose
	// sold/not-sold state must agree across the first two weeks.
	seasonalMatchThreshold = 5
)

// DetectWeeklySeasonality compares the on/off sales pattern of the first week with the
// second week. Only the first 14 days are examined; anything after day 14 is ignored.
func DetectWeeklySeasonality(series []int) bool {
	if len(series) < 2*weekDays {
		return false
	}

	matches := 0
	for i := 0; i < weekDays; i++ {
		a, b := series[i], series[i+weekDays]
		if (a > 0 && b > 0) || (a == 0 && b == 0) {
			matches++
		}
	}

	return matches >= seasonalMatchThreshold
}
