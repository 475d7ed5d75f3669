// Package forms defines the submission forms for every resource and their
// validation rules. Validation is accept-and-validate: input is stored as
// typed and checked on submit, never silently filtered.
package forms

import (
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// Validate is the shared validator instance.
	Validate *validator.Validate
	// Translator renders validation errors as english messages.
	Translator ut.Translator

	// custom validation tags
	lettersTag   = "letters"
	timeRangeTag = "timerange"
)

// Instantiate the validator for use.
func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(lettersTag, lettersValidation)
	Validate.RegisterStructValidation(eventFormStructValidation, EventForm{})

	registerCustomValidationsTranslations(lettersTag, timeRangeTag)
}

// registerCustomValidationsTranslations registers error messages for custom
// validations. The default translation set is already registered, so a noop
// register func is passed to satisfy the API.
func registerCustomValidationsTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateCustomValidationErrs)
	}
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case lettersTag:
		return "only letters and spaces are allowed"
	case timeRangeTag:
		return "end time must be after start time"
	default:
		return ""
	}
}

// lettersValidation accepts unicode letters and spaces only.
func lettersValidation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	for _, r := range str {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// eventFormStructValidation checks that an event ends after it starts.
func eventFormStructValidation(sl validator.StructLevel) {
	if ef, ok := sl.Current().Interface().(EventForm); ok {
		if !ef.StartTime.IsZero() && !ef.EndTime.IsZero() && !ef.EndTime.After(ef.StartTime) {
			sl.ReportError(ef.EndTime, "endTime", "EndTime", timeRangeTag, "")
		}
	}
}

// SignInForm carries sign-in credentials.
type SignInForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUpForm carries new-account fields.
type SignUpForm struct {
	Username string `json:"username" validate:"required,letters"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProfileForm stages a profile update.
type ProfileForm struct {
	Username string `json:"username" validate:"required,letters"`
	Email    string `json:"email" validate:"required,email"`
}

// PasswordForm stages a password change.
type PasswordForm struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// CourseForm stages a course create or edit.
type CourseForm struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,letters"`
	Instructor  string `json:"instructor" validate:"required,letters"`
}

// LearnForm stages a lesson create or edit.
type LearnForm struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,letters"`
	Content     string `json:"content" validate:"required"`
}

// PostForm stages a post create or edit.
type PostForm struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// EventForm stages an event create or edit.
type EventForm struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required"`
}

// ReviewForm stages a review submission.
type ReviewForm struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required"`
}

// CommentForm stages a comment on a post.
type CommentForm struct {
	PostID string `json:"postId" validate:"required"`
	Body   string `json:"body" validate:"required"`
}
