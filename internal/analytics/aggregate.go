package analytics

import (
	"maps"
	"math"
	"slices"

	"github.com/ignite/touchpoint-analytics/internal/domain"
	"github.com/ignite/touchpoint-analytics/internal/stage"
)

// Aggregate combines every recipient's analytics into campaign metrics.
// Summaries are re-derived from each recipient's events; only the
// engagement score is taken as supplied. An empty input yields zero totals,
// an average of 0 and domain.NoActiveDay.
func Aggregate(recipients []domain.RecipientAnalytics) domain.CampaignAnalytics {
	out := domain.CampaignAnalytics{
		RecipientCount:  len(recipients),
		StageBreakdown:  make(map[string]int),
		EventTypeCounts: make(map[domain.EventType]int),
	}
	for _, title := range stage.Funnel() {
		out.StageBreakdown[title] = 0
	}

	days := make(map[string]int)
	var scoreSum float64
	for _, r := range recipients {
		s := stage.Summarize(r)
		out.TotalInteractions += s.TotalInteractions
		scoreSum += s.EngagementScore
		out.StageBreakdown[s.CurrentStage]++
		addToDistribution(&out.EngagementDistribution, TierOf(s.EngagementScore))

		for _, e := range r.Events {
			out.EventTypeCounts[e.Type]++
			if d, ok := DateOf(e.Timestamp); ok {
				days[d]++
			}
		}
	}

	if len(recipients) > 0 {
		out.AverageEngagement = int(math.Round(scoreSum / float64(len(recipients))))
	}
	out.DailyActivity = sortedDays(days)
	out.MostActiveDay = MostActiveDay(out.DailyActivity)
	return out
}

// clone deep-copies a result so cached values can't be mutated by callers.
func clone(a domain.CampaignAnalytics) domain.CampaignAnalytics {
	out := a
	out.DailyActivity = slices.Clone(a.DailyActivity)
	out.StageBreakdown = maps.Clone(a.StageBreakdown)
	out.EventTypeCounts = maps.Clone(a.EventTypeCounts)
	return out
}
