package signup

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmissionInFlight is returned by Submit and by every mutation while a
	// registration request is outstanding.
	ErrSubmissionInFlight = errors.New("signup: submission in flight")
	// ErrClosed is returned once the modal owning the controller was closed.
	ErrClosed = errors.New("signup: form closed")
	// ErrUnknownField is returned by SetField for names outside FieldNames.
	ErrUnknownField = errors.New("signup: unknown field")
	// ErrNotInCatalog is returned by AddFromCatalog for names outside
	// PopularSkills.
	ErrNotInCatalog = errors.New("signup: skill not in catalog")
)

func unknownField(name string) error {
	return fmt.Errorf("%w %q", ErrUnknownField, name)
}

// TransportError wraps any registration failure that is not a business
// rejection. The cause is logged but never shown to the user.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	if e == nil || e.Cause == nil {
		return "signup: transport error"
	}
	return "signup: transport error: " + e.Cause.Error()
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
