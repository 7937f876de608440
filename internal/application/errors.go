package application

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the referenced ID does not exist in the
	// relevant store.
	ErrNotFound = errors.New("application: not found")
	// ErrUnauthorized is returned when an admin-only operation is invoked
	// without an active admin session.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrInvalidCredentials is returned when a login attempt is rejected by
	// the configured authenticator policy.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrNotConfirmed is returned when a confirmation ticket is requested for
	// a booking that has not been confirmed.
	ErrNotConfirmed = errors.New("application: booking not confirmed")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// merge copies entries from another validation error into the receiver.
func (v *ValidationError) merge(other *ValidationError) {
	if other == nil || len(other.FieldErrors) == 0 {
		return
	}
	for field, msg := range other.FieldErrors {
		v.add(field, msg)
	}
}

// InvalidTransitionError reports an attempt to decide a booking that is no
// longer pending.
type InvalidTransitionError struct {
	BookingID int64
	From      BookingStatus
	To        BookingStatus
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("booking %d: invalid transition %s -> %s", e.BookingID, e.From, e.To)
}
