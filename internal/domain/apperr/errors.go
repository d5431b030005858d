package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindAuthorization Kind = "authorization"
	KindConflict      Kind = "conflict"
	KindInvalidState  Kind = "invalid_state"
)

// Error is a recoverable failure carrying enough context (field, reason)
// for a presentation layer to render a message.
type Error struct {
	Kind   Kind
	Field  string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Field != "" && e.Reason != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Reason)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind when target is one of the bare
// sentinels below, so errors.Is(err, apperr.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Field == "" && t.Reason == "" && t.Err == nil && e.Kind == t.Kind
}

var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrAuthorization = &Error{Kind: KindAuthorization}
	ErrConflict      = &Error{Kind: KindConflict}
	ErrInvalidState  = &Error{Kind: KindInvalidState}
)

func Validation(field, reason string) error {
	return &Error{Kind: KindValidation, Field: field, Reason: reason}
}

func NotFound(field, reason string) error {
	return &Error{Kind: KindNotFound, Field: field, Reason: reason}
}

func Authorization(reason string) error {
	return &Error{Kind: KindAuthorization, Reason: reason}
}

func Conflict(field, reason string) error {
	return &Error{Kind: KindConflict, Field: field, Reason: reason}
}

func InvalidState(reason string) error {
	return &Error{Kind: KindInvalidState, Reason: reason}
}

// KindOf returns the kind of the first *Error in err's chain, or "" when
// err is not an application error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// ReasonOf returns the human readable reason of an application error,
// falling back to err.Error().
func ReasonOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Reason != "" {
		return ae.Reason
	}
	return err.Error()
}

// FieldOf returns the offending field of an application error, or "".
func FieldOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Field
	}
	return ""
}
