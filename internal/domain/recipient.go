package domain

import "math"

// Engagement scores are supplied on a 0-100 scale.
const (
	MinEngagementScore = 0
	MaxEngagementScore = 100
)

// RecipientSummary is the derived headline view of one recipient.
type RecipientSummary struct {
	TotalInteractions int       `json:"totalInteractions"`
	FirstInteraction  Timestamp `json:"firstInteraction"`
	LastInteraction   Timestamp `json:"lastInteraction"`
	EngagementScore   float64   `json:"engagementScore"`
	CurrentStage      string    `json:"currentStage"`
}

// RecipientAnalytics is one recipient together with their raw event feed.
// Events carry no ordering guarantee.
type RecipientAnalytics struct {
	RecipientID    string            `json:"recipientId" db:"id"`
	RecipientName  string            `json:"recipientName" db:"name"`
	RecipientEmail string            `json:"recipientEmail" db:"email"`
	Events         []TouchpointEvent `json:"events"`
	Summary        RecipientSummary  `json:"summary"`
}

// ClampScore forces a score into the supported 0-100 range.
func ClampScore(score float64) float64 {
	if math.IsNaN(score) || score < MinEngagementScore {
		return MinEngagementScore
	}
	if score > MaxEngagementScore {
		return MaxEngagementScore
	}
	return score
}
