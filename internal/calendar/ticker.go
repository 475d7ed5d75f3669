package calendar

import (
	"context"
	"time"

	"github.com/structura-app/structura-cli/internal/models"
)

// EventCountdown pairs an event with its rendered countdown.
type EventCountdown struct {
	EventID   string
	Title     string
	Remaining string
}

// StartCountdowns emits the countdowns of every event, once immediately and
// then on each tick, recomputed from the clock each time. The channel closes
// when ctx is canceled, so a departing view stops the loop instead of
// leaking it. now is injectable for tests; pass nil for time.Now.
func StartCountdowns(ctx context.Context, events []models.Event, interval time.Duration, now func() time.Time) <-chan []EventCountdown {
	if now == nil {
		now = time.Now
	}
	out := make(chan []EventCountdown)

	compute := func() []EventCountdown {
		t := now()
		cds := make([]EventCountdown, len(events))
		for i, e := range events {
			cds[i] = EventCountdown{
				EventID:   e.ID,
				Title:     e.Title,
				Remaining: Countdown(e.StartTime, t),
			}
		}
		return cds
	}

	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		select {
		case out <- compute():
		case <-ctx.Done():
			return
		}
		for {
			select {
			case <-ticker.C:
				select {
				case out <- compute():
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
