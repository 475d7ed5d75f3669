package calendar

import (
	"time"

	"github.com/structura-app/structura-cli/internal/models"
)

// EventList is the in-memory list state of the event views: the full fetched
// collection plus an optional day-filtered slice. Writes the client performs
// patch both lists in place; there is no re-fetch after write.
type EventList struct {
	All      []models.Event
	Filtered []models.Event

	filtered bool
	day      time.Time
}

// NewEventList wraps a fetched event collection.
func NewEventList(events []models.Event) *EventList {
	return &EventList{All: events}
}

// FilterDay narrows the filtered slice to events starting on day.
func (l *EventList) FilterDay(day time.Time) {
	l.filtered = true
	l.day = day
	l.Filtered = EventsOn(l.All, day)
}

// ClearFilter drops the day filter.
func (l *EventList) ClearFilter() {
	l.filtered = false
	l.Filtered = nil
}

// Replace patches the event with the same ID in both lists, preserving
// order. Unknown IDs are ignored.
func (l *EventList) Replace(e models.Event) {
	for i := range l.All {
		if l.All[i].ID == e.ID {
			l.All[i] = e
			break
		}
	}
	for i := range l.Filtered {
		if l.Filtered[i].ID == e.ID {
			l.Filtered[i] = e
			break
		}
	}
}

// Remove filters the event with the given ID out of both lists after the
// server confirmed deletion.
func (l *EventList) Remove(id string) {
	l.All = removeEvent(l.All, id)
	if l.filtered {
		l.Filtered = removeEvent(l.Filtered, id)
	}
}

func removeEvent(events []models.Event, id string) []models.Event {
	kept := events[:0]
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return kept
}
