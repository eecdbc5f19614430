package engagement

import (
	"context"
	"fmt"
	"time"

	"github.com/ignite/touchpoint-analytics/internal/analytics"
	"github.com/ignite/touchpoint-analytics/internal/domain"
	"github.com/ignite/touchpoint-analytics/internal/pkg/logger"
	"github.com/ignite/touchpoint-analytics/internal/stage"
	"github.com/ignite/touchpoint-analytics/internal/timeline"
)

// Service joins the feed repository with the analytics core. All public
// methods are safe for concurrent use if the repository is.
type Service struct {
	repo Repository
	memo *analytics.Memo
	now  func() time.Time
	log  *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for relative timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an engagement service. memo may be nil.
func NewService(repo Repository, memo *analytics.Memo, opts ...Option) *Service {
	s := &Service{repo: repo, memo: memo, now: time.Now, log: logger.With("engagement")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TimelineView is one recipient's display-ready journey.
type TimelineView struct {
	Recipient   domain.RecipientAnalytics `json:"recipient"`
	Items       []timeline.Item           `json:"items"`
	GeneratedAt time.Time                 `json:"generatedAt"`
}

func validate(orgID, campaignID string) error {
	if orgID == "" {
		return ErrMissingOrg
	}
	if campaignID == "" {
		return ErrMissingCampaign
	}
	return nil
}

// CampaignAnalytics aggregates a campaign's feed, memoized on its feed
// version. If the version can't be read the feed content is fingerprinted
// instead.
//
// The version is read before the feed: a write landing between the two
// reads may put newer data under an older key, never older data under a
// newer one.
func (s *Service) CampaignAnalytics(ctx context.Context, orgID, campaignID string) (domain.CampaignAnalytics, error) {
	if err := validate(orgID, campaignID); err != nil {
		return domain.CampaignAnalytics{}, err
	}

	var key string
	if version, err := s.repo.FeedVersion(ctx, orgID, campaignID); err != nil {
		s.log.Warn("feed version unavailable", "campaign_id", campaignID, "error", err)
	} else if version != "" {
		key = orgID + "/" + campaignID + "/" + version
	}

	recipients, err := s.repo.ListRecipients(ctx, orgID, campaignID)
	if err != nil {
		return domain.CampaignAnalytics{}, fmt.Errorf("list recipients: %w", err)
	}

	out := s.memo.Aggregate(ctx, key, recipients)
	s.log.Debug("campaign analytics", "campaign_id", campaignID, "recipients", out.RecipientCount, "interactions", out.TotalInteractions)
	return out, nil
}

// Recipients returns every recipient with a derived summary and events in
// timeline order.
func (s *Service) Recipients(ctx context.Context, orgID, campaignID string) ([]domain.RecipientAnalytics, error) {
	if err := validate(orgID, campaignID); err != nil {
		return nil, err
	}
	recipients, err := s.repo.ListRecipients(ctx, orgID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	out := make([]domain.RecipientAnalytics, len(recipients))
	for i, r := range recipients {
		out[i] = present(r)
	}
	return out, nil
}

// Timeline renders one recipient's journey. A non-empty expandedEventID
// marks that event's detail view open.
func (s *Service) Timeline(ctx context.Context, orgID, campaignID, recipientID, expandedEventID string) (*TimelineView, error) {
	if err := validate(orgID, campaignID); err != nil {
		return nil, err
	}
	if recipientID == "" {
		return nil, ErrNotFound
	}
	r, err := s.repo.GetRecipient(ctx, orgID, campaignID, recipientID)
	if err != nil {
		return nil, err
	}

	var state timeline.DetailState
	if expandedEventID != "" {
		state.Toggle(expandedEventID)
	}
	now := s.now()
	return &TimelineView{
		Recipient:   present(*r),
		Items:       timeline.Render(r.Events, now, &state),
		GeneratedAt: now.UTC(),
	}, nil
}

// AggregateFeed aggregates a feed supplied directly by the caller.
func (s *Service) AggregateFeed(ctx context.Context, recipients []domain.RecipientAnalytics) domain.CampaignAnalytics {
	return s.memo.Aggregate(ctx, "", recipients)
}

// Stage returns the current stage for a bare event list.
func (s *Service) Stage(events []domain.TouchpointEvent) string {
	return stage.Determine(events)
}

func present(r domain.RecipientAnalytics) domain.RecipientAnalytics {
	r = stage.WithSummary(r)
	r.Events = timeline.Build(r.Events)
	if r.Events == nil {
		r.Events = []domain.TouchpointEvent{}
	}
	return r
}
