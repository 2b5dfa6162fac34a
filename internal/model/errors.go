// Package model defines the workshop domain entities shared by the
// repository, store and handler layers, along with the error types
// callers are expected to branch on.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a referenced record does not exist in
// either the backend or the local tier.
var ErrNotFound = errors.New("not found")

// ValidationError reports every violated field of an input at once so
// a form can highlight all problems in a single round trip.  It is
// the only error kind surfaced to the UI besides not-found.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a violation for a field.  The first message per field
// wins; later ones are ignored.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Empty reports whether no violations were recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
