package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrForbidden means the caller's role does not allow the action.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound covers both "does not exist" and "exists but is outside the
	// caller's visible set"; the two are indistinguishable on purpose.
	ErrNotFound = errors.New("not found")
	// ErrConflict is a uniqueness violation that slipped past validation.
	ErrConflict = errors.New("conflict")
)

// ValidationError carries per-field messages for semantically invalid input.
// The operation it aborts has no side effects.
type ValidationError struct {
	Fields map[string]string
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

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
