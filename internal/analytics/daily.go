package analytics

import (
	"slices"
	"strings"

	"github.com/ignite/touchpoint-analytics/internal/domain"
)

// DateLayout is the calendar-date key for daily buckets.
const DateLayout = "2006-01-02"

// DateOf returns the UTC calendar date of ts. Invalid timestamps have no
// date and are left out of daily activity.
func DateOf(ts domain.Timestamp) (string, bool) {
	if !ts.Valid {
		return "", false
	}
	return ts.Time.UTC().Format(DateLayout), true
}

// DailyActivity counts events per UTC date across all recipients, in
// chronological order.
func DailyActivity(recipients []domain.RecipientAnalytics) []domain.DayCount {
	days := make(map[string]int)
	for _, r := range recipients {
		for _, e := range r.Events {
			if d, ok := DateOf(e.Timestamp); ok {
				days[d]++
			}
		}
	}
	return sortedDays(days)
}

func sortedDays(days map[string]int) []domain.DayCount {
	out := make([]domain.DayCount, 0, len(days))
	for d, n := range days {
		out = append(out, domain.DayCount{Date: d, Count: n})
	}
	// DateLayout sorts lexically in date order.
	slices.SortFunc(out, func(a, b domain.DayCount) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}

// MostActiveDay picks the date with the most events from a chronological
// series. Ties go to the earliest date. An empty series returns
// domain.NoActiveDay.
func MostActiveDay(series []domain.DayCount) string {
	best := domain.NoActiveDay
	bestCount := 0
	for _, d := range series {
		if d.Count > bestCount {
			best, bestCount = d.Date, d.Count
		}
	}
	return best
}
