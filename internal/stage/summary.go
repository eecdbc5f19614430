package stage

import (
	"github.com/ignite/touchpoint-analytics/internal/domain"
	"github.com/ignite/touchpoint-analytics/internal/timeline"
)

// Summarize derives r's summary from its events. The externally supplied
// engagement score is kept (clamped to 0-100). First and last interaction
// come from valid event timestamps; when there are none, the supplied
// values are kept.
func Summarize(r domain.RecipientAnalytics) domain.RecipientSummary {
	s := domain.RecipientSummary{
		TotalInteractions: len(r.Events),
		FirstInteraction:  r.Summary.FirstInteraction,
		LastInteraction:   r.Summary.LastInteraction,
		EngagementScore:   domain.ClampScore(r.Summary.EngagementScore),
		CurrentStage:      Determine(r.Events),
	}

	var first, last domain.Timestamp
	for _, e := range r.Events {
		if !e.Timestamp.Valid {
			continue
		}
		if !first.Valid || timeline.Compare(e.Timestamp, first) < 0 {
			first = e.Timestamp
		}
		if !last.Valid || timeline.Compare(e.Timestamp, last) > 0 {
			last = e.Timestamp
		}
	}
	if first.Valid {
		s.FirstInteraction, s.LastInteraction = first, last
	}
	return s
}

// WithSummary returns a copy of r with its summary re-derived.
func WithSummary(r domain.RecipientAnalytics) domain.RecipientAnalytics {
	r.Summary = Summarize(r)
	return r
}
