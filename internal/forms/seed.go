package forms

import (
	"github.com/jinzhu/copier"

	"github.com/structura-app/structura-cli/internal/models"
)

// The SeedX helpers fill an edit buffer from the selected record so an edit
// view starts from the server's current values and submits a full-resource
// replacement.

// SeedCourseForm seeds an edit buffer from a course record.
func SeedCourseForm(c models.Course) (CourseForm, error) {
	var f CourseForm
	err := copier.Copy(&f, &c)
	return f, err
}

// SeedLearnForm seeds an edit buffer from a lesson record.
func SeedLearnForm(l models.Learn) (LearnForm, error) {
	var f LearnForm
	err := copier.Copy(&f, &l)
	return f, err
}

// SeedPostForm seeds an edit buffer from a post record.
func SeedPostForm(p models.Post) (PostForm, error) {
	var f PostForm
	err := copier.Copy(&f, &p)
	return f, err
}

// SeedEventForm seeds an edit buffer from an event record.
func SeedEventForm(e models.Event) (EventForm, error) {
	var f EventForm
	err := copier.Copy(&f, &e)
	return f, err
}

// SeedProfileForm seeds a profile edit buffer from the signed-in user.
func SeedProfileForm(u models.User) (ProfileForm, error) {
	var f ProfileForm
	err := copier.Copy(&f, &u)
	return f, err
}
