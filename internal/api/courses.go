package api

import (
	"context"

	"github.com/structura-app/structura-cli/internal/forms"
	"github.com/structura-app/structura-cli/internal/models"
)

// CourseService wraps the course endpoints. Course writes may attach an
// image, a PDF and a video, so all writes are multipart.
type CourseService struct {
	c *Client
}

// NewCourseService creates a CourseService over the given client.
func NewCourseService(c *Client) *CourseService {
	return &CourseService{c: c}
}

// List fetches every course.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.c.get(ctx, "/api/courses", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Get fetches one course by ID.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := s.c.get(ctx, "/api/courses/"+id, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create submits a new course with optional media attachments.
func (s *CourseService) Create(ctx context.Context, form forms.CourseForm, media []File) (*models.Course, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	var course models.Course
	if err := s.c.postMultipart(ctx, "/api/courses", courseFields(form), media, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Update submits a full-resource replacement for the course.
func (s *CourseService) Update(ctx context.Context, id string, form forms.CourseForm, media []File) (*models.Course, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	var course models.Course
	if err := s.c.putMultipart(ctx, "/api/courses/"+id, courseFields(form), media, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Delete removes the course on the server.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/api/courses/"+id, nil)
}

func courseFields(form forms.CourseForm) map[string]string {
	return map[string]string{
		"title":       form.Title,
		"description": form.Description,
		"category":    form.Category,
		"instructor":  form.Instructor,
	}
}
