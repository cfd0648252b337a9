// Package errors provides the error taxonomy shared by the dataset store,
// the aggregation functions and the HTTP dispatch layer.
//
// Every error carries a Kind so callers can branch with errors.Is against
// the predefined sentinels without string matching:
//
//	if errors.Is(err, derrors.ErrNotFound) { ... }
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	// KindInternal is any failure that is not one of the classified kinds.
	KindInternal Kind = iota
	// KindDataLoad means a dataset source was absent or malformed at startup.
	KindDataLoad
	// KindNotFound means a query referenced an entity absent from the dataset.
	KindNotFound
	// KindMissingParameter means a required request parameter was omitted.
	KindMissingParameter
	// KindInvalidParameter means a request parameter could not be parsed.
	KindInvalidParameter
)

func (k Kind) String() string {
	switch k {
	case KindDataLoad:
		return "data load"
	case KindNotFound:
		return "not found"
	case KindMissingParameter:
		return "missing parameter"
	case KindInvalidParameter:
		return "invalid parameter"
	default:
		return "internal"
	}
}

// Error is the single error type raised across the service.
type Error struct {
	Kind    Kind   // Classification used by errors.Is
	Op      string // Operation name (e.g., "LoadCSV", "CountryInfo")
	Subject string // Dataset, column, parameter or entity the error is about
	Message string // Human-readable error description
	Payload any    // Structured response body for KindNotFound
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Subject != "" {
		return fmt.Sprintf("%s %s failed on '%s': %s", e.Op, e.Kind, e.Subject, msg)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Op, e.Kind, msg)
}

// Unwrap returns the underlying cause for error wrapping support
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind. Sentinels
// declared below leave Op empty and therefore match any operation.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Op == "" || t.Op == e.Op
}

// Sentinels for errors.Is checks.
var (
	ErrDataLoad         = &Error{Kind: KindDataLoad}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrMissingParameter = &Error{Kind: KindMissingParameter}
	ErrInvalidParameter = &Error{Kind: KindInvalidParameter}
)

// NewDataLoadError creates an error for a dataset that could not be loaded.
func NewDataLoadError(op, dataset string, cause error) *Error {
	return &Error{
		Kind:    KindDataLoad,
		Op:      op,
		Subject: dataset,
		Message: "dataset could not be loaded",
		Cause:   cause,
	}
}

// NewMissingColumnError creates a load error for a required column absent from a source.
func NewMissingColumnError(op, column string) *Error {
	return &Error{
		Kind:    KindDataLoad,
		Op:      op,
		Subject: column,
		Message: "required column does not exist",
	}
}

// NewNotFoundError creates an error for an entity lookup that matched no rows.
// payload is the body the dispatch layer returns to the caller.
func NewNotFoundError(op, entity string, payload any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Op:      op,
		Subject: entity,
		Message: "no matching rows",
		Payload: payload,
	}
}

// NewMissingParameterError creates an error for an omitted required parameter.
// message is returned to the caller verbatim.
func NewMissingParameterError(param, message string) *Error {
	return &Error{
		Kind:    KindMissingParameter,
		Op:      "dispatch",
		Subject: param,
		Message: message,
	}
}

// NewInvalidParameterError creates an error for a parameter that failed to parse.
func NewInvalidParameterError(param, message string) *Error {
	return &Error{
		Kind:    KindInvalidParameter,
		Op:      "dispatch",
		Subject: param,
		Message: message,
	}
}

// PayloadOf returns the not-found payload carried by err, if any.
func PayloadOf(err error) (any, bool) {
	var e *Error
	if !stderrors.As(err, &e) {
		return nil, false
	}
	if e.Kind != KindNotFound || e.Payload == nil {
		return nil, false
	}
	return e.Payload, true
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
