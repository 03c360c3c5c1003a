package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrSelectionsNotFound = errors.New("selections not found")
	ErrActionInFlight     = errors.New("action already in progress")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAuthRequired   = errors.New("mail account not connected")
	ErrAuthInProgress = errors.New("mail authorization already in progress")
	ErrAuthDenied     = errors.New("mail authorization denied")
	ErrAuthExpired    = errors.New("mail authorization expired")
)

// ValidationError reports bad input at a single field. It is recovered
// locally and never forwarded to the store.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError formats a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// StoreError wraps a network or server failure of the candidate/selection store.
type StoreError struct {
	Op     string
	Status int // HTTP status when the store answered, 0 otherwise
	Err    error
}

func (e *StoreError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("store %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// AuthError reports a missing, denied or expired mail authorization.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TransportError reports a send failure that is not an authorization problem.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "mail transport: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

var (
	// ErrClipboardUnsupported is returned by clipboards that cannot hold HTML.
	ErrClipboardUnsupported = errors.New("clipboard does not support html")
	// ErrClipboardUnavailable means the host has no clipboard to write to.
	ErrClipboardUnavailable = errors.New("no clipboard available")
)
