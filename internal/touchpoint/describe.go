package touchpoint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ignite/touchpoint-analytics/internal/domain"
)

// Describe renders a one-line human description of e from its type and
// payload. Missing fields fall back to generic wording.
func Describe(e domain.TouchpointEvent) string {
	d := e.Data
	switch e.Type {
	case domain.EventInviteSent:
		if email := str(d, "email"); email != "" {
			return "Invitation sent to " + email
		}
		return "Invitation sent"
	case domain.EventGiftSelected:
		return "Selected " + strOr(d, "giftName", "Gift")
	case domain.EventAddressConfirmed:
		if addr := address(d["address"]); addr != "" {
			return "Confirmed shipping address: " + addr
		}
		return "Confirmed shipping address"
	case domain.EventMessageViewed:
		if secs, ok := number(d, "viewDuration"); ok {
			return "Viewed message for " + secs + "s"
		}
		return "Viewed message"
	case domain.EventMessageButtonClicked:
		return fmt.Sprintf("Clicked %q in message", strOr(d, "buttonText", "button"))
	case domain.EventGiftSent:
		return "Gift shipped via " + strOr(d, "carrier", "carrier") + tracking(d)
	case domain.EventGiftInTransit:
		return "Gift in transit with " + strOr(d, "carrier", "carrier") + tracking(d)
	case domain.EventGiftDelivered:
		loc := str(d, "location")
		if loc == "" && e.Metadata != nil {
			loc = e.Metadata.Location
		}
		if loc != "" {
			return "Gift delivered to " + loc
		}
		return "Gift delivered"
	case domain.EventLandingPageAccessed:
		ref := str(d, "referrer")
		if ref == "" && e.Metadata != nil {
			ref = e.Metadata.Referrer
		}
		if ref != "" {
			return "Visited landing page from " + ref
		}
		return "Visited landing page"
	case domain.EventLandingPageButtonClicked:
		return fmt.Sprintf("Clicked %q on landing page", strOr(d, "buttonText", "button"))
	case domain.EventFeedbackSubmitted:
		if ft := str(d, "feedbackType"); ft != "" {
			return "Submitted " + ft + " feedback"
		}
		return "Submitted feedback"
	default:
		return "Unknown event"
	}
}

func tracking(d map[string]any) string {
	if id := str(d, "trackingId"); id != "" {
		return " (tracking " + id + ")"
	}
	return ""
}

// str reads a non-blank string field. Non-string scalars are formatted.
func str(d map[string]any, key string) string {
	v, ok := d[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64, int, int64, bool:
		return fmt.Sprint(s)
	default:
		return ""
	}
}

func strOr(d map[string]any, key, fallback string) string {
	if s := str(d, key); s != "" {
		return s
	}
	return fallback
}

// number reads a numeric field that may arrive as a JSON number or a
// numeric string.
func number(d map[string]any, key string) (string, bool) {
	switch v := d[key].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
	}
	return "", false
}

// address flattens either a free-form string or a structured address.
func address(v any) string {
	switch a := v.(type) {
	case string:
		return strings.TrimSpace(a)
	case map[string]any:
		var parts []string
		for _, k := range []string{"street", "city", "state", "zip", "country"} {
			if s := str(a, k); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
