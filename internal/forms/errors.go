package forms

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FieldError is used to indicate an error with a specific form field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError aggregates the field errors of one failed submission.
type ValidationError struct {
	Fields []FieldError
}

func (err *ValidationError) Error() string {
	if len(err.Fields) == 0 {
		return "invalid input"
	}
	return err.Fields[0].Field + ": " + err.Fields[0].Error
}

// Check validates v and returns a *ValidationError describing every failed
// field, or nil when the form is valid. Field order follows struct order.
func Check(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Error: fe.Translate(Translator)})
	}
	return out
}
