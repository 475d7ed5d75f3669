package api

import (
	"context"

	"github.com/structura-app/structura-cli/internal/forms"
	"github.com/structura-app/structura-cli/internal/models"
)

// LearnService wraps the self-study lesson endpoints.
type LearnService struct {
	c *Client
}

// NewLearnService creates a LearnService over the given client.
func NewLearnService(c *Client) *LearnService {
	return &LearnService{c: c}
}

// List fetches every lesson.
func (s *LearnService) List(ctx context.Context) ([]models.Learn, error) {
	var learns []models.Learn
	if err := s.c.get(ctx, "/api/learns", &learns); err != nil {
		return nil, err
	}
	return learns, nil
}

// Get fetches one lesson by ID.
func (s *LearnService) Get(ctx context.Context, id string) (*models.Learn, error) {
	var l models.Learn
	if err := s.c.get(ctx, "/api/learns/"+id, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Create submits a new lesson with an optional image.
func (s *LearnService) Create(ctx context.Context, form forms.LearnForm, image *File) (*models.Learn, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	var files []File
	if image != nil {
		files = append(files, *image)
	}
	var l models.Learn
	if err := s.c.postMultipart(ctx, "/api/learns", learnFields(form), files, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Update submits a full-resource replacement for the lesson.
func (s *LearnService) Update(ctx context.Context, id string, form forms.LearnForm, image *File) (*models.Learn, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	var files []File
	if image != nil {
		files = append(files, *image)
	}
	var l models.Learn
	if err := s.c.putMultipart(ctx, "/api/learns/"+id, learnFields(form), files, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Delete removes the lesson on the server.
func (s *LearnService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/api/learns/"+id, nil)
}

func learnFields(form forms.LearnForm) map[string]string {
	return map[string]string{
		"title":       form.Title,
		"description": form.Description,
		"category":    form.Category,
		"content":     form.Content,
	}
}
