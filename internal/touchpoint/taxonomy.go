// Package touchpoint classifies touchpoint events for display.
//
// The taxonomy is a single lookup table: adding an event type means adding
// one constant in domain and one row here. Both Classify and Describe are
// total; unknown types get a generic descriptor and wording.
package touchpoint

import "github.com/ignite/touchpoint-analytics/internal/domain"

// Descriptor is the presentation metadata for an event type.
type Descriptor struct {
	Icon       string `json:"icon"`
	ColorClass string `json:"colorClass"`
	Title      string `json:"title"`
}

// Unknown is returned for any type missing from the taxonomy.
var Unknown = Descriptor{
	Icon:       "activity",
	ColorClass: "text-gray-500 bg-gray-100",
	Title:      "Unknown Event",
}

// taxonomy lists the known types in journey order.
var taxonomy = []struct {
	typ        domain.EventType
	descriptor Descriptor
	signal     bool
}{
	{domain.EventInviteSent, Descriptor{"mail", "text-blue-500 bg-blue-100", "Invite Sent"}, false},
	{domain.EventGiftSelected, Descriptor{"gift", "text-purple-500 bg-purple-100", "Gift Selected"}, false},
	{domain.EventAddressConfirmed, Descriptor{"map-pin", "text-indigo-500 bg-indigo-100", "Address Confirmed"}, false},
	{domain.EventMessageViewed, Descriptor{"eye", "text-cyan-500 bg-cyan-100", "Message Viewed"}, true},
	{domain.EventMessageButtonClicked, Descriptor{"mouse-pointer-click", "text-teal-500 bg-teal-100", "Message Button Clicked"}, true},
	{domain.EventGiftSent, Descriptor{"send", "text-orange-500 bg-orange-100", "Gift Sent"}, false},
	{domain.EventGiftInTransit, Descriptor{"truck", "text-amber-500 bg-amber-100", "Gift In Transit"}, false},
	{domain.EventGiftDelivered, Descriptor{"package-check", "text-green-500 bg-green-100", "Gift Delivered"}, false},
	{domain.EventLandingPageAccessed, Descriptor{"globe", "text-sky-500 bg-sky-100", "Landing Page Accessed"}, true},
	{domain.EventLandingPageButtonClicked, Descriptor{"link", "text-pink-500 bg-pink-100", "Landing Page Button Clicked"}, true},
	{domain.EventFeedbackSubmitted, Descriptor{"message-square", "text-emerald-500 bg-emerald-100", "Feedback Submitted"}, false},
}

var byType = func() map[domain.EventType]int {
	m := make(map[domain.EventType]int, len(taxonomy))
	for i, row := range taxonomy {
		m[row.typ] = i
	}
	return m
}()

// Classify returns the descriptor for t, or Unknown.
func Classify(t domain.EventType) Descriptor {
	if i, ok := byType[t]; ok {
		return taxonomy[i].descriptor
	}
	return Unknown
}

// Title is shorthand for Classify(t).Title.
func Title(t domain.EventType) string {
	return Classify(t).Title
}

// Known reports whether t is part of the taxonomy.
func Known(t domain.EventType) bool {
	_, ok := byType[t]
	return ok
}

// IsEngagementSignal reports whether t is an informational message or
// landing-page interaction rather than a journey milestone.
func IsEngagementSignal(t domain.EventType) bool {
	i, ok := byType[t]
	return ok && taxonomy[i].signal
}

// Types returns every known type in journey order.
func Types() []domain.EventType {
	out := make([]domain.EventType, len(taxonomy))
	for i, row := range taxonomy {
		out[i] = row.typ
	}
	return out
}
