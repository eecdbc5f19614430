package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// EventType enumerates the touchpoints of a recipient's gifting journey.
type EventType string

const (
	EventInviteSent               EventType = "invite_sent"
	EventGiftSelected             EventType = "gift_selected"
	EventAddressConfirmed         EventType = "address_confirmed"
	EventMessageViewed            EventType = "message_viewed"
	EventMessageButtonClicked     EventType = "message_button_clicked"
	EventGiftSent                 EventType = "gift_sent"
	EventGiftInTransit            EventType = "gift_in_transit"
	EventGiftDelivered            EventType = "gift_delivered"
	EventLandingPageAccessed      EventType = "landing_page_accessed"
	EventLandingPageButtonClicked EventType = "landing_page_button_clicked"
	EventFeedbackSubmitted        EventType = "feedback_submitted"
)

// EventMetadata carries the optional request context captured with an event.
type EventMetadata struct {
	UserAgent string `json:"userAgent,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
	Location  string `json:"location,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
}

// TouchpointEvent is a single recorded interaction or milestone. Events are
// produced outside this module and are never modified once observed.
type TouchpointEvent struct {
	ID        string         `json:"id" db:"id"`
	Type      EventType      `json:"type" db:"event_type"`
	Timestamp Timestamp      `json:"timestamp" db:"occurred_at"`
	Data      map[string]any `json:"data,omitempty" db:"data"`
	Metadata  *EventMetadata `json:"metadata,omitempty" db:"metadata"`
}

// Timestamp is an event instant that remembers its wire form. Upstream feeds
// sometimes send missing or malformed values; those decode without error,
// keep their raw text and report Valid == false.
type Timestamp struct {
	Time  time.Time
	Raw   string
	Valid bool
}

// NewTimestamp wraps a known-good instant.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Raw: t.Format(time.RFC3339Nano), Valid: true}
}

// ParseTimestamp parses an RFC 3339 value. Unparseable input is kept as Raw.
func ParseTimestamp(raw string) Timestamp {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return Timestamp{Raw: raw}
	}
	return Timestamp{Time: t, Raw: raw, Valid: true}
}

// MarshalJSON writes valid instants as RFC 3339 and echoes invalid raw text.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Valid {
		return json.Marshal(t.Time.Format(time.RFC3339Nano))
	}
	if t.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(t.Raw)
}

// UnmarshalJSON accepts RFC 3339 strings and unix-millisecond numbers.
// It never returns an error: anything else becomes an invalid Timestamp.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*t = Timestamp{Raw: string(b)}
			return nil
		}
		*t = ParseTimestamp(s)
		return nil
	}
	if ms, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		*t = Timestamp{Time: time.UnixMilli(ms).UTC(), Raw: string(b), Valid: true}
		return nil
	}
	*t = Timestamp{Raw: string(b)}
	return nil
}
