package book

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a book id does not exist in the store.
var ErrNotFound = errors.New("book not found")

// ErrStorage wraps failures of the underlying store. Callers should not
// retry; the fault is surfaced as-is.
var ErrStorage = errors.New("storage failure")

// FieldError describes a single violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InvalidInputError reports every violated field of a request, in declared
// field order (title, author, isbn).
type InvalidInputError struct {
	Fields []FieldError
}

func (e *InvalidInputError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}
