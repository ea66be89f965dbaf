package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SignInForm is the credential form in sign-in mode.
type SignInForm struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"min=6,max=100"`
}

// SignUpForm is the credential form in registration mode.
type SignUpForm struct {
	Email      string `validate:"required,email,max=255"`
	Password   string `validate:"min=6,max=100"`
	Name       string `validate:"required,max=100"`
	Department string `validate:"required,max=100"`
}

// ProfileForm carries the editable profile fields.
type ProfileForm struct {
	Name       string `validate:"required,max=100"`
	Department string `validate:"required,max=100"`
	Bio        string `validate:"max=1000"`
}

// Normalize trims the fields the form trims before checking them.
// Passwords are left untouched.
func (f *SignInForm) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

func (f *SignUpForm) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
	f.Name = strings.TrimSpace(f.Name)
	f.Department = strings.TrimSpace(f.Department)
}

func (f *ProfileForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Department = strings.TrimSpace(f.Department)
	f.Bio = strings.TrimSpace(f.Bio)
}

// messages maps "<Field>.<tag>" to the text shown for that failure.
var messages = map[string]string{
	"Email.required":      "Invalid email address",
	"Email.email":         "Invalid email address",
	"Email.max":           "Email must be at most 255 characters",
	"Password.min":        "Password must be at least 6 characters",
	"Password.max":        "Password must be at most 100 characters",
	"Name.required":       "Name is required",
	"Name.max":            "Name must be at most 100 characters",
	"Department.required": "Department is required",
	"Department.max":      "Department must be at most 100 characters",
	"Bio.max":             "Bio must be at most 1000 characters",
}

// Validator wraps a configured validator instance.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Check validates s and returns the first failing field's message, or nil.
func (val *Validator) Check(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	msgs := FormatValidationErrors(err)
	return &Error{Messages: msgs, cause: err}
}

// Error reports per-field messages in declaration order.
type Error struct {
	Messages []string
	cause    error
}

func (e *Error) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	return e.Messages[0]
}

func (e *Error) Unwrap() error { return e.cause }

// First returns the message that should be surfaced to the user.
func (e *Error) First() string {
	return e.Error()
}

// FormatValidationErrors converts validator.ValidationErrors to user-facing messages.
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, formatSingleError(e))
	}
	return out
}

func formatSingleError(e validator.FieldError) string {
	if msg, ok := messages[e.Field()+"."+e.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", e.Field())
}
