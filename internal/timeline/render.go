package timeline

import (
	"time"

	"github.com/ignite/touchpoint-analytics/internal/domain"
	"github.com/ignite/touchpoint-analytics/internal/touchpoint"
)

// Item is one display-ready timeline row.
type Item struct {
	Event        domain.TouchpointEvent `json:"event"`
	Icon         string                 `json:"icon"`
	ColorClass   string                 `json:"colorClass"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	RelativeTime string                 `json:"relativeTime"`
	Expanded     bool                   `json:"expanded"`
}

// Render builds the ordered timeline and decorates every event. state may
// be nil, in which case nothing is expanded.
func Render(events []domain.TouchpointEvent, now time.Time, state *DetailState) []Item {
	ordered := Build(events)
	items := make([]Item, len(ordered))
	for i, e := range ordered {
		d := touchpoint.Classify(e.Type)
		items[i] = Item{
			Event:        e,
			Icon:         d.Icon,
			ColorClass:   d.ColorClass,
			Title:        d.Title,
			Description:  touchpoint.Describe(e),
			RelativeTime: FormatRelative(e.Timestamp, now),
			Expanded:     state != nil && state.IsExpanded(e.ID),
		}
	}
	return items
}
