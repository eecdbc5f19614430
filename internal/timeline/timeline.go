// Package timeline orders a recipient's touchpoints and prepares them for
// display. Nothing here reads the clock; callers pass "now" explicitly.
package timeline

import (
	"slices"
	"strings"

	"github.com/ignite/touchpoint-analytics/internal/domain"
)

// Build returns the events in ascending timestamp order. The sort is stable,
// so events sharing a timestamp keep their input order. Invalid timestamps
// sort on their raw text, ahead of every valid instant. The input slice is
// not modified.
func Build(events []domain.TouchpointEvent) []domain.TouchpointEvent {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b domain.TouchpointEvent) int {
		return Compare(a.Timestamp, b.Timestamp)
	})
	return out
}

// Compare orders two timestamps the way Build does.
func Compare(a, b domain.Timestamp) int {
	switch {
	case a.Valid && b.Valid:
		return a.Time.Compare(b.Time)
	case !a.Valid && !b.Valid:
		return strings.Compare(a.Raw, b.Raw)
	case !a.Valid:
		return -1
	default:
		return 1
	}
}
