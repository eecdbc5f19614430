package timeline

// DetailState tracks which event of one timeline has its detail view open.
// At most one event is expanded at a time. The zero value is ready to use
// and is not safe for concurrent use.
type DetailState struct {
	expanded string
	open     bool
}

// Toggle opens eventID, replacing any other open event, or collapses it if
// it's already open. It returns whether eventID is now expanded.
func (s *DetailState) Toggle(eventID string) bool {
	if s.open && s.expanded == eventID {
		s.expanded, s.open = "", false
		return false
	}
	s.expanded, s.open = eventID, true
	return true
}

// Expanded returns the open event, if any.
func (s *DetailState) Expanded() (string, bool) {
	return s.expanded, s.open
}

// IsExpanded reports whether eventID is the open event.
func (s *DetailState) IsExpanded(eventID string) bool {
	return s.open && s.expanded == eventID
}

// Collapse closes whatever is open.
func (s *DetailState) Collapse() {
	s.expanded, s.open = "", false
}
