package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInsufficientEmployees is returned by AssignTasks when no employee is registered.
var ErrInsufficientEmployees = errors.New("dispatch: at least one employee is required to assign tasks")

// FieldError describes one rejected input field
type FieldError struct {
	Field string
	Tag   string
}

func (fe FieldError) String() string {
	if fe.Tag == "required" {
		return fe.Field + " is required"
	}
	return fmt.Sprintf("%s failed the %q check", fe.Field, fe.Tag)
}

// ValidationError is returned when a request is rejected before anything is written
type ValidationError struct {
	// Kind is "employee" or "task"
	Kind   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dispatch: invalid %s: %s", e.Kind, e.details())
}

func (e *ValidationError) details() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return strings.Join(msgs, "; ")
}

// HasField reports whether field was rejected
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func newValidationError(kind string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("dispatch: validate %s: %w", kind, err)
	}
	ve := &ValidationError{Kind: kind}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return ve
}

// UserMessage returns the title and body to show the user for err
func UserMessage(err error) (title, body string) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve) && ve.Kind == "employee":
		return "Invalid name", "First name and last name are required"
	case errors.As(err, &ve) && ve.Kind == "task":
		return "Invalid task name", "Task name cannot be empty"
	case errors.Is(err, ErrInsufficientEmployees):
		return "Not enough employees", "At least one employee is needed to distribute tasks"
	default:
		return "Database error", err.Error()
	}
}

// IsUserError reports whether err is caused by user input rather than a store failure
func IsUserError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrInsufficientEmployees)
}
