// Package apperr provides the typed error taxonomy shared by the services,
// the booking resolver and the conversation session.
package apperr

import (
	"errors"
	"fmt"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindMissingRequiredField indicates a booking intent without customer name or date.
	KindMissingRequiredField
	// KindDeviceNotResolved indicates a device name that matched nothing in the inventory.
	// It is informational; callers proceed with an unspecified device.
	KindDeviceNotResolved
	// KindExtraction indicates a transport, auth or quota failure calling the extractor.
	KindExtraction
	// KindPersistence indicates the store rejected a create or update.
	KindPersistence
	// KindValidation indicates invalid input data.
	KindValidation
	// KindNotFound indicates a record was not found.
	KindNotFound
	// KindBusy indicates a session already has an extraction in flight.
	KindBusy
	// KindClosed indicates a session that has been torn down.
	KindClosed
)

func (k Kind) String() string {
	switch k {
	case KindMissingRequiredField:
		return "missing_required_field"
	case KindDeviceNotResolved:
		return "device_not_resolved"
	case KindExtraction:
		return "extraction"
	case KindPersistence:
		return "persistence"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindBusy:
		return "busy"
	case KindClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Error is a domain error with a typed Kind.
type Error struct {
	Kind    Kind
	Message string
	Op      string // Operation that failed (optional)
	Field   string // Offending field for MissingRequiredField / Validation (optional)
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp sets the operation and returns the error.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// MissingRequiredField creates a missing-field error for field.
func MissingRequiredField(field string) *Error {
	return &Error{Kind: KindMissingRequiredField, Message: "missing required field " + field, Field: field}
}

// Validation creates a validation error for field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Field: field}
}

// NotFound creates a not found error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Extraction wraps an extractor failure.
func Extraction(err error) *Error {
	return Wrap(KindExtraction, "intent extraction failed", err)
}

// Persistence wraps a store failure.
func Persistence(op string, err error) *Error {
	return Wrap(KindPersistence, "store rejected the record", err).WithOp(op)
}

// GetKind extracts the error kind from err or anything it wraps.
// Returns KindUnknown if no *Error is found.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err is, or wraps, an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && GetKind(err) == kind
}

// FieldOf returns the offending field recorded on err, if any.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
