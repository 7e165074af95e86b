// Package errs defines the error taxonomy shared by all explorer services.
//
// Errors carry a Kind that the transport layer maps to a status code.
// Background workers never surface these to callers directly; they record
// the message on the owning operation instead.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// Internal is an unexpected OS-level or store failure.
	Internal Kind = iota
	// NotFound covers missing paths, operations, bookmarks, and clipboard sessions.
	NotFound
	// AlreadyExists covers mkdir and rename target conflicts.
	AlreadyExists
	// Forbidden covers mutation of protected records.
	Forbidden
	// InvalidArgument covers malformed patterns and exhausted rename budgets.
	InvalidArgument
)

// String returns the kind's wire name.
func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case AlreadyExists:
		return "already_exists"
	case Forbidden:
		return "forbidden"
	case InvalidArgument:
		return "invalid_argument"
	default:
		return "internal"
	}
}

// Error is a kinded error with an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Msg != "" {
			return e.Msg + ": " + e.Err.Error()
		}
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a kinded error from a message.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates a kinded error from a format string.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether the error chain carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
