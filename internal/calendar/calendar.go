// Package calendar derives the event-calendar views: a month grid computed
// purely from a date, day grouping of fetched events, and per-second
// countdowns recomputed from the wall clock.
package calendar

import (
	"fmt"
	"time"

	"github.com/structura-app/structura-cli/internal/models"
)

// Week is one row of the month grid.
type Week [7]time.Time

// MonthGrid returns the weeks of the month containing t. Rows are
// Sunday-led; leading and trailing cells belong to the adjacent months so
// every row is full.
func MonthGrid(t time.Time) []Week {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))
	last := first.AddDate(0, 1, -1)

	var weeks []Week
	day := start
	for !day.After(last) {
		var w Week
		for i := 0; i < 7; i++ {
			w[i] = day
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, w)
	}
	return weeks
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// EventsOn filters events starting on the given day.
func EventsOn(events []models.Event, day time.Time) []models.Event {
	var out []models.Event
	for _, e := range events {
		if SameDay(e.StartTime, day) {
			out = append(out, e)
		}
	}
	return out
}

// GroupByDay groups events by the midnight of their start day.
func GroupByDay(events []models.Event) map[time.Time][]models.Event {
	out := make(map[time.Time][]models.Event)
	for _, e := range events {
		key := time.Date(e.StartTime.Year(), e.StartTime.Month(), e.StartTime.Day(), 0, 0, 0, 0, e.StartTime.Location())
		out[key] = append(out[key], e)
	}
	return out
}

// Countdown renders the time remaining until until as "1d 2h 3m 4s",
// omitting leading zero units. Once reached it renders "started".
func Countdown(until, now time.Time) string {
	d := until.Sub(now)
	if d <= 0 {
		return "started"
	}
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
