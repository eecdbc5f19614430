package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/ignite/touchpoint-analytics/internal/domain"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func event(id string, t domain.EventType, at time.Time) domain.TouchpointEvent {
	return domain.TouchpointEvent{ID: id, Type: t, Timestamp: domain.NewTimestamp(at)}
}

func recipient(id string, score float64, events ...domain.TouchpointEvent) domain.RecipientAnalytics {
	return domain.RecipientAnalytics{
		RecipientID: id,
		Events:      events,
		Summary:     domain.RecipientSummary{EngagementScore: score},
	}
}

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t.Add(10 * time.Hour)
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	assert.Zero(t, got.TotalInteractions)
	assert.Zero(t, got.AverageEngagement)
	assert.Equal(t, domain.NoActiveDay, got.MostActiveDay)
	assert.Equal(t, domain.EngagementDistribution{}, got.EngagementDistribution)
	assert.Empty(t, got.DailyActivity)
	assert.NotNil(t, got.DailyActivity)
}

func TestAggregateScoresScenario(t *testing.T) {
	var rs []domain.RecipientAnalytics
	for i, s := range []float64{90, 70, 50, 30, 85} {
		rs = append(rs, recipient(fmt.Sprintf("r%d", i), s))
	}
	got := Aggregate(rs)
	assert.Equal(t, domain.EngagementDistribution{High: 2, Medium: 1, Low: 1, VeryLow: 1}, got.EngagementDistribution)
	assert.Equal(t, 65, got.AverageEngagement)
	assert.Equal(t, 5, got.RecipientCount)
}

func TestAggregateJourneyScenario(t *testing.T) {
	base := day("2024-04-17")
	r := recipient("r1", 88,
		event("1", domain.EventInviteSent, base),
		event("2", domain.EventGiftSelected, base.Add(time.Hour)),
		event("3", domain.EventGiftDelivered, base.Add(48*time.Hour)),
	)
	got := Aggregate([]domain.RecipientAnalytics{r})
	assert.Equal(t, 3, got.TotalInteractions)
	assert.Equal(t, 1, got.StageBreakdown["Gift Delivered"])
	assert.Equal(t, 0, got.StageBreakdown["Invite Sent"])
	assert.Equal(t, 1, got.EventTypeCounts[domain.EventGiftSelected])
}

func TestAggregateMostActiveDayScenario(t *testing.T) {
	rs := []domain.RecipientAnalytics{
		recipient("a", 50, event("1", domain.EventInviteSent, day("2024-04-17"))),
		recipient("b", 50, event("2", domain.EventInviteSent, day("2024-04-18"))),
		recipient("c", 50, event("3", domain.EventInviteSent, day("2024-04-17"))),
	}
	got := Aggregate(rs)
	assert.Equal(t, "2024-04-17", got.MostActiveDay)
	assert.Equal(t, []domain.DayCount{{Date: "2024-04-17", Count: 2}, {Date: "2024-04-18", Count: 1}}, got.DailyActivity)
}

func TestMostActiveDayTieGoesToEarliest(t *testing.T) {
	rs := []domain.RecipientAnalytics{
		recipient("late", 10, event("1", domain.EventInviteSent, day("2024-05-02"))),
		recipient("early", 10, event("2", domain.EventInviteSent, day("2024-05-01"))),
	}
	assert.Equal(t, "2024-05-01", Aggregate(rs).MostActiveDay)
}

func TestDailyBucketsUseUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	local := time.Date(2024, 4, 18, 2, 0, 0, 0, loc) // 2024-04-17 17:00 UTC
	rs := []domain.RecipientAnalytics{recipient("r", 0, event("1", domain.EventGiftSent, local))}
	assert.Equal(t, []domain.DayCount{{Date: "2024-04-17", Count: 1}}, DailyActivity(rs))
}

func TestAggregateSkipsUndatedEvents(t *testing.T) {
	rs := []domain.RecipientAnalytics{
		recipient("r", 40, domain.TouchpointEvent{ID: "x", Type: domain.EventGiftSent, Timestamp: domain.ParseTimestamp("bad")}),
	}
	got := Aggregate(rs)
	assert.Equal(t, 1, got.TotalInteractions)
	assert.Equal(t, domain.NoActiveDay, got.MostActiveDay)
}

func TestAggregateIgnoresStaleSummaryCount(t *testing.T) {
	r := recipient("r", 50, event("1", domain.EventInviteSent, day("2024-04-17")))
	r.Summary.TotalInteractions = 99
	assert.Equal(t, 1, Aggregate([]domain.RecipientAnalytics{r}).TotalInteractions)
}

func TestAverageRounds(t *testing.T) {
	rs := []domain.RecipientAnalytics{recipient("a", 60), recipient("b", 61)}
	assert.Equal(t, 61, Aggregate(rs).AverageEngagement) // 60.5 rounds half away from zero
	rs = []domain.RecipientAnalytics{recipient("a", 60), recipient("b", 60.4)}
	assert.Equal(t, 60, Aggregate(rs).AverageEngagement)
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{100, TierHigh}, {80, TierHigh}, {79, TierMedium}, {79.9, TierMedium},
		{60, TierMedium}, {59, TierLow}, {40, TierLow}, {39, TierVeryLow},
		{0, TierVeryLow}, {-10, TierVeryLow}, {150, TierHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierOf(tt.score), "score %v", tt.score)
	}
}

func TestDistribution(t *testing.T) {
	rs := []domain.RecipientAnalytics{recipient("a", 80), recipient("b", 60), recipient("c", 40), recipient("d", 39)}
	assert.Equal(t, domain.EngagementDistribution{High: 1, Medium: 1, Low: 1, VeryLow: 1}, Distribution(rs))
}

func TestMostActiveDayEmptySeries(t *testing.T) {
	assert.Equal(t, domain.NoActiveDay, MostActiveDay(nil))
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	rs := []domain.RecipientAnalytics{recipient("r", 70,
		event("2", domain.EventGiftSent, day("2024-04-18")),
		event("1", domain.EventInviteSent, day("2024-04-17")),
	)}
	Aggregate(rs)
	assert.Equal(t, "2", rs[0].Events[0].ID)
	assert.Empty(t, rs[0].Summary.CurrentStage)
}

func TestAggregateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	build := func(scores []int, eventCounts []int) []domain.RecipientAnalytics {
		rs := make([]domain.RecipientAnalytics, len(scores))
		for i, s := range scores {
			var events []domain.TouchpointEvent
			n := 0
			if i < len(eventCounts) {
				n = eventCounts[i]
			}
			for j := 0; j < n; j++ {
				events = append(events, event(fmt.Sprintf("%d-%d", i, j), domain.EventMessageViewed, day("2024-04-01").Add(time.Duration(j)*13*time.Hour)))
			}
			rs[i] = recipient(fmt.Sprintf("r%d", i), float64(s), events...)
		}
		return rs
	}

	properties.Property("distribution partitions every recipient", prop.ForAll(
		func(scores []int) bool {
			got := Aggregate(build(scores, nil))
			return got.EngagementDistribution.Total() == len(scores)
		},
		gen.SliceOf(gen.IntRange(-20, 120)),
	))

	properties.Property("total interactions equals event count", prop.ForAll(
		func(scores []int, counts []int) bool {
			rs := build(scores, counts)
			want := 0
			for _, r := range rs {
				want += len(r.Events)
			}
			got := Aggregate(rs)
			daySum := 0
			for _, d := range got.DailyActivity {
				daySum += d.Count
			}
			return got.TotalInteractions == want && daySum == want
		},
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.SliceOf(gen.IntRange(0, 6)),
	))

	properties.Property("aggregate is deterministic", prop.ForAll(
		func(scores []int, counts []int) bool {
			rs := build(scores, counts)
			return fmt.Sprint(Aggregate(rs)) == fmt.Sprint(Aggregate(rs))
		},
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.SliceOf(gen.IntRange(0, 4)),
	))

	properties.TestingRun(t)
}
