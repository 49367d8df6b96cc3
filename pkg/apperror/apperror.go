// Package apperror defines the error taxonomy shared by all services:
// validation failures that aggregate every violated field, expected
// absences, conflicts, and partially applied multi-step operations.
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound marks an absent resource. For warehouse-config lookups this
// is an expected state, not a failure.
var ErrNotFound = errors.New("not found")

// ValidationError aggregates every violated field of a request, not just
// the first one encountered.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty validation error ready to collect
// field violations.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a violation for a field. Adding to the same field keeps the
// first message.
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// HasErrors reports whether any violation was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the error when violations exist, nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConflictError marks a state conflict, e.g. a share code collision.
type ConflictError struct {
	Resource string
	Detail   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Resource, e.Detail)
}

// PartialError reports a multi-step operation that failed midway. Step
// names the exact step that failed so callers can retry just that part.
type PartialError struct {
	Step string
	Err  error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an expected-absence error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
