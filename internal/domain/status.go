package domain

import "strings"

// TrendDirection classifies the demand trend.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// Urgency is the replenishment urgency tier.
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyLow      Urgency = "LOW"
	UrgencyAdequate Urgency = "ADEQUATE"
	UrgencyExcess   Urgency = "EXCESS"
)

var urgencyRanks = map[Urgency]int{
	UrgencyCritical: 0,
	UrgencyLow:      1,
	UrgencyAdequate: 2,
	UrgencyExcess:   3,
}

// Rank orders urgency tiers from most to least urgent. Unknown values sort last.
func (u Urgency) Rank() int {
	if rank, ok := urgencyRanks[u]; ok {
		return rank
	}

	return len(urgencyRanks)
}

// NeedsReorder reports whether the tier belongs on a reorder action list.
func (u Urgency) NeedsReorder() bool {
	return u == UrgencyCritical || u == UrgencyLow
}

// ParseUrgency returns the urgency for a given label (case-insensitive).
func ParseUrgency(label string) (Urgency, bool) {
	u := Urgency(strings.ToUpper(strings.TrimSpace(label)))
	_, ok := urgencyRanks[u]

	return u, ok
}
