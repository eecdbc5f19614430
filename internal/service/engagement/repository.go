package engagement

import (
	"context"

	"github.com/ignite/touchpoint-analytics/internal/domain"
)

// Repository is the read-only contract for the recipient/event feed.
// Implementations must be safe for concurrent use.
type Repository interface {
	// ListRecipients returns every recipient of a campaign with their
	// events. Event order is unspecified.
	ListRecipients(ctx context.Context, orgID, campaignID string) ([]domain.RecipientAnalytics, error)

	// GetRecipient returns one recipient. Returns ErrNotFound if absent.
	GetRecipient(ctx context.Context, orgID, campaignID, recipientID string) (*domain.RecipientAnalytics, error)

	// FeedVersion returns an opaque value that changes whenever the
	// campaign's recipients or events change.
	FeedVersion(ctx context.Context, orgID, campaignID string) (string, error)
}
