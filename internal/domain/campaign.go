package domain

// NoActiveDay is reported when a campaign has no dated events.
const NoActiveDay = "N/A"

// EngagementDistribution counts recipients per score tier. Every recipient
// lands in exactly one tier.
type EngagementDistribution struct {
	High    int `json:"high"`
	Medium  int `json:"medium"`
	Low     int `json:"low"`
	VeryLow int `json:"veryLow"`
}

// Total returns the number of recipients across all tiers.
func (d EngagementDistribution) Total() int {
	return d.High + d.Medium + d.Low + d.VeryLow
}

// DayCount is the number of events observed on one calendar date.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CampaignAnalytics is the campaign-wide aggregate. It's always derived from
// the recipient feed and never persisted.
type CampaignAnalytics struct {
	RecipientCount         int                    `json:"recipientCount"`
	TotalInteractions      int                    `json:"totalInteractions"`
	AverageEngagement      int                    `json:"averageEngagement"`
	MostActiveDay          string                 `json:"mostActiveDay"`
	EngagementDistribution EngagementDistribution `json:"engagementDistribution"`
	DailyActivity          []DayCount             `json:"dailyActivity"`
	StageBreakdown         map[string]int         `json:"stageBreakdown"`
	EventTypeCounts        map[EventType]int      `json:"eventTypeCounts"`
}
