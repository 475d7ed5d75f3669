package forms

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structura-app/structura-cli/internal/models"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	out := make(map[string]string)
	for _, fe := range verr.Fields {
		out[fe.Field] = fe.Error
	}
	return out
}

func TestCheck_RequiredFields(t *testing.T) {
	err := Check(CourseForm{})
	fields := fieldErrors(t, err)

	assert.Contains(t, fields, "title")
	assert.Contains(t, fields["title"], "required")
}

func TestCheck_ValidCourse(t *testing.T) {
	err := Check(CourseForm{
		Title:       "Brutalism revisited",
		Description: "A survey of raw concrete",
		Category:    "history",
		Instructor:  "Jane Doe",
	})
	assert.NoError(t, err)
}

func TestLettersTag_AcceptAndValidate(t *testing.T) {
	// Digits are accepted as input and rejected by validation, never
	// silently swallowed.
	err := Check(SignUpForm{
		Username: "ada99",
		Email:    "ada@example.com",
		Password: "longenough",
	})
	fields := fieldErrors(t, err)
	assert.Equal(t, "only letters and spaces are allowed", fields["username"])
}

func TestLettersTag_AllowsSpacesAndUnicode(t *testing.T) {
	err := Check(SignUpForm{
		Username: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "longenough",
	})
	assert.NoError(t, err)
}

func TestEventForm_TimeRange(t *testing.T) {
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	err := Check(EventForm{
		Title:       "Open studio",
		Description: "tour",
		Location:    "Atelier 4",
		StartTime:   start,
		EndTime:     start.Add(-time.Hour),
	})
	fields := fieldErrors(t, err)
	assert.Equal(t, "end time must be after start time", fields["endTime"])
}

func TestReviewForm_RatingBounds(t *testing.T) {
	for _, rating := range []int{-1, 0, 6} {
		err := Check(ReviewForm{Rating: rating, Comment: "fine"})
		assert.Error(t, err, "rating %d must fail", rating)
	}
	assert.NoError(t, Check(ReviewForm{Rating: 5, Comment: "fine"}))
}

func TestSeedCourseForm(t *testing.T) {
	course := models.Course{
		ID:          "c1",
		Title:       "Brutalism revisited",
		Description: "A survey",
		Category:    "history",
		Instructor:  "Jane Doe",
	}
	form, err := SeedCourseForm(course)
	require.NoError(t, err)

	assert.Equal(t, course.Title, form.Title)
	assert.Equal(t, course.Description, form.Description)
	assert.Equal(t, course.Category, form.Category)
	assert.Equal(t, course.Instructor, form.Instructor)
}

func TestSeedEventForm(t *testing.T) {
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	event := models.Event{ID: "e1", Title: "Open studio", StartTime: start, EndTime: start.Add(time.Hour)}

	form, err := SeedEventForm(event)
	require.NoError(t, err)
	assert.Equal(t, event.Title, form.Title)
	assert.True(t, form.StartTime.Equal(start))
}
