// Package apperr holds the typed failures returned by services.
// Handlers map each Kind to a transport status.
package apperr

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindInvalidRequest
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidRequest:
		return "invalid_request"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error is a failure with a kind and a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for kind matching with errors.Is
var (
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict       = &Error{Kind: KindConflict, Message: "conflict"}
	ErrInvalidRequest = &Error{Kind: KindInvalidRequest, Message: "invalid request"}
	ErrUnauthorized   = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
)

func NotFound(msg string) error       { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) error       { return &Error{Kind: KindConflict, Message: msg} }
func InvalidRequest(msg string) error { return &Error{Kind: KindInvalidRequest, Message: msg} }
func Unauthorized(msg string) error   { return &Error{Kind: KindUnauthorized, Message: msg} }

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
