package service

import (
	"errors"
	"strings"
)

// Authentication failure reasons. Handlers surface neither to the user (the
// log-in flow redirects silently either way), but tests and logs distinguish
// them.
var (
	ErrIncorrectUsername = errors.New("Incorrect username")
	ErrIncorrectPassword = errors.New("Incorrect password")
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects field-level failures for one form submission. It
// is always recovered locally by re-rendering the originating form.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the user-facing messages in submission order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Message
	}
	return msgs
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
