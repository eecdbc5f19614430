package timeline

import (
	"fmt"
	"time"

	"github.com/ignite/touchpoint-analytics/internal/domain"
)

// UnknownTime is shown for events whose timestamp could not be parsed.
const UnknownTime = "Unknown time"

// AbsoluteLayout is used once an event is a week old or more. Dates are
// rendered in UTC.
const AbsoluteLayout = "Jan 2, 2006"

// FormatRelative renders ts relative to now. Each bucket is strictly below
// its ceiling: 59s is "Just now", 60s is "1 min ago". Future instants read
// as "Just now".
func FormatRelative(ts domain.Timestamp, now time.Time) string {
	if !ts.Valid {
		return UnknownTime
	}
	diff := now.Sub(ts.Time)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return ago(int(diff/time.Minute), "min")
	case diff < 24*time.Hour:
		return ago(int(diff/time.Hour), "hour")
	case diff < 7*24*time.Hour:
		return ago(int(diff/(24*time.Hour)), "day")
	default:
		return ts.Time.UTC().Format(AbsoluteLayout)
	}
}

func ago(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
