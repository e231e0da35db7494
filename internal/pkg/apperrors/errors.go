package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so the HTTP boundary can map it to a
// status code without inspecting message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindBadRequest
	KindForbidden
	KindAccessDenied
	KindConflict
	KindCommentNotAllowed
)

// Error is a typed application error. All business-rule violations raised by
// the services are of this type; everything else is treated as an internal
// failure at the boundary.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is match two application errors by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// NewNotFound reports that a referenced entity does not exist.
func NewNotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewBadRequest reports an invalid request: bad temporal range, unavailable
// item, already-processed booking, unknown state filter.
func NewBadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NewForbidden reports that the caller is known but not allowed to perform
// the operation.
func NewForbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// NewAccessDenied reports a read by a caller that is neither booker nor
// owner. Kept distinct from Forbidden because the API maps it to 500, a
// long-standing contract existing clients rely on.
func NewAccessDenied(format string, args ...any) *Error {
	return &Error{Kind: KindAccessDenied, Message: fmt.Sprintf(format, args...)}
}

// NewConflict reports a uniqueness violation, e.g. a duplicate user email.
func NewConflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NewCommentNotAllowed reports a comment attempt without a qualifying
// completed booking. Callers need to tell this apart from malformed input.
func NewCommentNotAllowed(format string, args ...any) *Error {
	return &Error{Kind: KindCommentNotAllowed, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from err, or KindUnknown for non-application
// errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
