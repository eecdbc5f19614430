package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/touchpoint-analytics/internal/domain"
	"github.com/ignite/touchpoint-analytics/internal/pkg/logger"
	"github.com/ignite/touchpoint-analytics/internal/service/engagement"
	"github.com/lib/pq"
)

// FeedRepo implements engagement.Repository against the PostgreSQL tables
// written by the campaign and shipping systems. It only reads.
type FeedRepo struct {
	db  *sql.DB
	log *logger.Logger
}

// NewFeedRepo creates a Postgres-backed feed repository.
func NewFeedRepo(db *sql.DB) *FeedRepo {
	return &FeedRepo{db: db, log: logger.With("repository.feed")}
}

const recipientColumns = `
	id, name, COALESCE(email, ''), COALESCE(engagement_score, 0),
	first_interaction_at, last_interaction_at`

func (r *FeedRepo) ListRecipients(ctx context.Context, orgID, campaignID string) ([]domain.RecipientAnalytics, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+recipientColumns+`
		FROM gifting_recipients
		WHERE organization_id = $1 AND campaign_id = $2
		ORDER BY created_at, id
	`, orgID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	defer rows.Close()

	var out []domain.RecipientAnalytics
	index := make(map[string]int)
	for rows.Next() {
		rec, err := scanRecipient(rows)
		if err != nil {
			return nil, err
		}
		index[rec.RecipientID] = len(out)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipients: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, len(out))
	for i, rec := range out {
		ids[i] = rec.RecipientID
	}
	events, err := r.loadEvents(ctx, orgID, campaignID, ids)
	if err != nil {
		return nil, err
	}
	for _, re := range events {
		if i, ok := index[re.recipientID]; ok {
			out[i].Events = append(out[i].Events, re.event)
		}
	}
	return out, nil
}

func (r *FeedRepo) GetRecipient(ctx context.Context, orgID, campaignID, recipientID string) (*domain.RecipientAnalytics, error) {
	if _, err := uuid.Parse(recipientID); err != nil {
		return nil, engagement.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT`+recipientColumns+`
		FROM gifting_recipients
		WHERE organization_id = $1 AND campaign_id = $2 AND id = $3
	`, orgID, campaignID, recipientID)
	rec, err := scanRecipient(row)
	if err == sql.ErrNoRows {
		return nil, engagement.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	events, err := r.loadEvents(ctx, orgID, campaignID, []string{recipientID})
	if err != nil {
		return nil, err
	}
	for _, re := range events {
		rec.Events = append(rec.Events, re.event)
	}
	return &rec, nil
}

// FeedVersion summarizes the campaign's feed so any insert, update or
// delete of a recipient or event yields a different value.
func (r *FeedRepo) FeedVersion(ctx context.Context, orgID, campaignID string) (string, error) {
	var (
		eventCount     int64
		lastEvent      sql.NullTime
		recipientCount int64
		lastUpdate     sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM gifting_touchpoint_events WHERE organization_id = $1 AND campaign_id = $2),
			(SELECT MAX(created_at) FROM gifting_touchpoint_events WHERE organization_id = $1 AND campaign_id = $2),
			(SELECT COUNT(*) FROM gifting_recipients WHERE organization_id = $1 AND campaign_id = $2),
			(SELECT MAX(updated_at) FROM gifting_recipients WHERE organization_id = $1 AND campaign_id = $2)
	`, orgID, campaignID).Scan(&eventCount, &lastEvent, &recipientCount, &lastUpdate)
	if err != nil {
		return "", fmt.Errorf("feed version: %w", err)
	}
	return fmt.Sprintf("%d-%d-%d-%d", eventCount, unixNano(lastEvent), recipientCount, unixNano(lastUpdate)), nil
}

type recipientEvent struct {
	recipientID string
	event       domain.TouchpointEvent
}

func (r *FeedRepo) loadEvents(ctx context.Context, orgID, campaignID string, recipientIDs []string) ([]recipientEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, recipient_id, event_type, occurred_at, data, metadata
		FROM gifting_touchpoint_events
		WHERE organization_id = $1 AND campaign_id = $2 AND recipient_id = ANY($3)
	`, orgID, campaignID, pq.Array(recipientIDs))
	if err != nil {
		return nil, fmt.Errorf("list touchpoint events: %w", err)
	}
	defer rows.Close()

	var out []recipientEvent
	for rows.Next() {
		var (
			re         recipientEvent
			eventType  string
			occurredAt sql.NullTime
			data, meta []byte
		)
		if err := rows.Scan(&re.event.ID, &re.recipientID, &eventType, &occurredAt, &data, &meta); err != nil {
			return nil, fmt.Errorf("scan touchpoint event: %w", err)
		}
		re.event.Type = domain.EventType(eventType)
		if occurredAt.Valid {
			re.event.Timestamp = domain.NewTimestamp(occurredAt.Time)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &re.event.Data); err != nil {
				r.log.Warn("bad event data, ignoring", "event_id", re.event.ID, "error", err)
				re.event.Data = nil
			}
		}
		if len(meta) > 0 {
			var m domain.EventMetadata
			if err := json.Unmarshal(meta, &m); err != nil {
				r.log.Warn("bad event metadata, ignoring", "event_id", re.event.ID, "error", err)
			} else {
				re.event.Metadata = &m
			}
		}
		out = append(out, re)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate touchpoint events: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipient(s scanner) (domain.RecipientAnalytics, error) {
	var (
		rec         domain.RecipientAnalytics
		first, last sql.NullTime
	)
	err := s.Scan(&rec.RecipientID, &rec.RecipientName, &rec.RecipientEmail,
		&rec.Summary.EngagementScore, &first, &last)
	if err == sql.ErrNoRows {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("scan recipient: %w", err)
	}
	if first.Valid {
		rec.Summary.FirstInteraction = domain.NewTimestamp(first.Time)
	}
	if last.Valid {
		rec.Summary.LastInteraction = domain.NewTimestamp(last.Time)
	}
	return rec, nil
}

func unixNano(t sql.NullTime) int64 {
	if !t.Valid {
		return 0
	}
	return t.Time.UTC().Truncate(time.Microsecond).UnixNano()
}
