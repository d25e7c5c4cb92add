// Package apperrors classifies service failures so handlers can map them to
// transport status codes without string matching.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the failure class of a service operation.
type Kind int

const (
	// KindUpstream covers storage or upload I/O failures.
	KindUpstream Kind = iota
	// KindNotFound means a referenced entity is absent.
	KindNotFound
	// KindForbidden means an ownership or block violation.
	KindForbidden
	// KindConflict means a duplicate like/dislike/save or a not-saved unsave.
	KindConflict
	// KindBadRequest means missing or malformed required fields.
	KindBadRequest
)

// Error is a classified service failure with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Upstream(format string, args ...any) *Error {
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err, defaulting to KindUpstream for
// unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstream
}

// HTTPStatus maps a classified error to its transport status code. Both
// Conflict and BadRequest map to 400: duplicate reactions and not-saved
// unsaves surface as 400 on the wire.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict, KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
