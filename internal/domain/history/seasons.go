package history

import (
	"fmt"
	"time"
)

// seasonStartMonth is when a new Premier League season begins.
const seasonStartMonth = time.August

// CurrentSeasonStartYear returns the starting calendar year of the
// season in progress at the given time.
func CurrentSeasonStartYear(now time.Time) int {
	if now.Month() >= seasonStartMonth {
		return now.Year()
	}
	return now.Year() - 1
}

// SeasonLabel formats a season by its starting year, e.g. "2025-26".
func SeasonLabel(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// PastSeasonLabels lists the n seasons before the current one, oldest
// first, in the layout season archives use.
func PastSeasonLabels(now time.Time, n int) []string {
	start := CurrentSeasonStartYear(now)
	out := make([]string, 0, n)
	for i := n; i >= 1; i-- {
		out = append(out, SeasonLabel(start-i))
	}
	return out
}

// RecentSeasonLabels lists the current season and the n-1 before it,
// oldest first.
func RecentSeasonLabels(now time.Time, n int) []string {
	start := CurrentSeasonStartYear(now)
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, SeasonLabel(start-i))
	}
	return out
}
