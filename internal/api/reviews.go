package api

import (
	"context"

	"github.com/structura-app/structura-cli/internal/forms"
	"github.com/structura-app/structura-cli/internal/models"
)

// ReviewService wraps the review endpoints.
type ReviewService struct {
	c *Client
}

// NewReviewService creates a ReviewService over the given client.
func NewReviewService(c *Client) *ReviewService {
	return &ReviewService{c: c}
}

// List fetches every review.
func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.c.get(ctx, "/api/reviews", &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Create submits a new review.
func (s *ReviewService) Create(ctx context.Context, form forms.ReviewForm) (*models.Review, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	var r models.Review
	if err := s.c.postJSON(ctx, "/api/reviews", form, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Delete removes the review on the server.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/api/reviews/"+id, nil)
}
