// Package stage derives a recipient's current journey stage and summary.
//
// Stage is the title of the furthest milestone present in the event set.
// Message and landing-page interactions are informational and never move
// a recipient forward, and neither do unknown types. Because only the
// maximum rank matters, the result ignores event order and duplicates, and
// adding events can only hold or advance it.
package stage

import (
	"github.com/ignite/touchpoint-analytics/internal/domain"
	"github.com/ignite/touchpoint-analytics/internal/touchpoint"
)

// NoActivity is the stage of a recipient with no milestone events.
const NoActivity = "No Activity"

var progression = []domain.EventType{
	domain.EventInviteSent,
	domain.EventGiftSelected,
	domain.EventAddressConfirmed,
	domain.EventGiftSent,
	domain.EventGiftInTransit,
	domain.EventGiftDelivered,
	domain.EventFeedbackSubmitted,
}

var ranks = func() map[domain.EventType]int {
	m := make(map[domain.EventType]int, len(progression))
	for i, t := range progression {
		m[t] = i + 1
	}
	return m
}()

// Rank returns t's position in the milestone order, starting at 1.
// Non-milestone types rank 0.
func Rank(t domain.EventType) int {
	return ranks[t]
}

// Highest returns the highest-ranked milestone type in events.
func Highest(events []domain.TouchpointEvent) (domain.EventType, bool) {
	var best domain.EventType
	bestRank := 0
	for _, e := range events {
		if r := Rank(e.Type); r > bestRank {
			best, bestRank = e.Type, r
		}
	}
	return best, bestRank > 0
}

// Determine returns the current stage title for events.
func Determine(events []domain.TouchpointEvent) string {
	t, ok := Highest(events)
	if !ok {
		return NoActivity
	}
	return touchpoint.Title(t)
}

// Funnel lists every stage title from least to most progressed, starting
// with NoActivity.
func Funnel() []string {
	out := make([]string, 0, len(progression)+1)
	out = append(out, NoActivity)
	for _, t := range progression {
		out = append(out, touchpoint.Title(t))
	}
	return out
}
