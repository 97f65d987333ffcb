package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPersistedData is returned when a stored record cannot be parsed
	ErrMalformedPersistedData = errors.New("persisted record is malformed")
	// ErrNotFound is returned when a requested item does not exist
	ErrNotFound = errors.New("not found")
	// ErrDayLocked is returned when day content is requested before it unlocks
	ErrDayLocked = errors.New("day is locked")
	// ErrStoreUnreadable is returned by writes after the stored record could not be read
	ErrStoreUnreadable = errors.New("saved progress could not be read, changes are kept for this session only")
)

// ValidationError reports a rejected mutation. The record is left untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// PersistenceWarning reports a storage read or write failure.
// The in-memory record stays authoritative for the session.
type PersistenceWarning struct {
	Op  string
	Err error
}

func (w *PersistenceWarning) Error() string {
	return fmt.Sprintf("could not %s progress: %v", w.Op, w.Err)
}

func (w *PersistenceWarning) Unwrap() error {
	return w.Err
}

// IsWarning reports whether err only carries a non-fatal persistence warning
func IsWarning(err error) bool {
	var w *PersistenceWarning
	return errors.As(err, &w)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
