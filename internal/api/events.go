package api

import (
	"context"
	"time"

	"github.com/structura-app/structura-cli/internal/forms"
	"github.com/structura-app/structura-cli/internal/models"
)

// EventService wraps the event endpoints.
type EventService struct {
	c *Client
}

// NewEventService creates an EventService over the given client.
func NewEventService(c *Client) *EventService {
	return &EventService{c: c}
}

// List fetches every event.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := s.c.get(ctx, "/api/events", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Upcoming fetches events that have not started yet.
func (s *EventService) Upcoming(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := s.c.get(ctx, "/api/events/upcoming", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Get fetches one event by ID.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	if err := s.c.get(ctx, "/api/events/"+id, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create submits a new event with an optional image.
func (s *EventService) Create(ctx context.Context, form forms.EventForm, image *File) (*models.Event, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	var files []File
	if image != nil {
		files = append(files, *image)
	}
	var e models.Event
	if err := s.c.postMultipart(ctx, "/api/events", eventFields(form), files, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update submits a full-resource replacement for the event.
func (s *EventService) Update(ctx context.Context, id string, form forms.EventForm, image *File) (*models.Event, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	var files []File
	if image != nil {
		files = append(files, *image)
	}
	var e models.Event
	if err := s.c.putMultipart(ctx, "/api/events/"+id, eventFields(form), files, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes the event on the server.
func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/api/events/"+id, nil)
}

func eventFields(form forms.EventForm) map[string]string {
	return map[string]string{
		"title":       form.Title,
		"description": form.Description,
		"location":    form.Location,
		"startTime":   form.StartTime.Format(time.RFC3339),
		"endTime":     form.EndTime.Format(time.RFC3339),
	}
}
