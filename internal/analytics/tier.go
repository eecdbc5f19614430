package analytics

import "github.com/ignite/touchpoint-analytics/internal/domain"

// Tier is one of the four engagement bands.
type Tier string

const (
	TierHigh    Tier = "high"
	TierMedium  Tier = "medium"
	TierLow     Tier = "low"
	TierVeryLow Tier = "veryLow"
)

// Tier lower bounds, inclusive.
const (
	HighThreshold   = 80
	MediumThreshold = 60
	LowThreshold    = 40
)

// TierOf places a score in exactly one band. The score is clamped first.
func TierOf(score float64) Tier {
	score = domain.ClampScore(score)
	switch {
	case score >= HighThreshold:
		return TierHigh
	case score >= MediumThreshold:
		return TierMedium
	case score >= LowThreshold:
		return TierLow
	default:
		return TierVeryLow
	}
}

func addToDistribution(d *domain.EngagementDistribution, t Tier) {
	switch t {
	case TierHigh:
		d.High++
	case TierMedium:
		d.Medium++
	case TierLow:
		d.Low++
	default:
		d.VeryLow++
	}
}

// Distribution partitions recipients by their supplied score.
func Distribution(recipients []domain.RecipientAnalytics) domain.EngagementDistribution {
	var d domain.EngagementDistribution
	for _, r := range recipients {
		addToDistribution(&d, TierOf(r.Summary.EngagementScore))
	}
	return d
}
