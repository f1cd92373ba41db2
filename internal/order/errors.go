package order

import (
	"errors"
	"fmt"
)

// Kind classifies an order error so callers can switch on it.
type Kind string

const (
	KindNotFound                Kind = "not_found"
	KindUnavailable             Kind = "unavailable"
	KindAddonSelectionInvalid   Kind = "addon_selection_invalid"
	KindAddonNotApplicable      Kind = "addon_not_applicable"
	KindEmptyOrder              Kind = "empty_order"
	KindInvalidRequest          Kind = "invalid_request"
	KindInvalidStatusTransition Kind = "invalid_status_transition"
	KindUnknownStatus           Kind = "unknown_status"
	KindConcurrentModification  Kind = "concurrent_modification"
	KindStorage                 Kind = "storage_error"
)

// Error is a recoverable order failure with enough context to render a
// precise message. Min and Max are set for KindAddonSelectionInvalid.
type Error struct {
	Kind     Kind
	Field    string
	EntityID string
	Min      int
	Max      int
	Msg      string
	Err      error
}

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrNotFound                = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrUnavailable             = &Error{Kind: KindUnavailable, Msg: "unavailable"}
	ErrAddonSelectionInvalid   = &Error{Kind: KindAddonSelectionInvalid, Msg: "invalid addon selection"}
	ErrAddonNotApplicable      = &Error{Kind: KindAddonNotApplicable, Msg: "addon not applicable"}
	ErrEmptyOrder              = &Error{Kind: KindEmptyOrder, Msg: "items are required"}
	ErrInvalidRequest          = &Error{Kind: KindInvalidRequest, Msg: "invalid request"}
	ErrInvalidStatusTransition = &Error{Kind: KindInvalidStatusTransition, Msg: "invalid status transition"}
	ErrUnknownStatus           = &Error{Kind: KindUnknownStatus, Msg: "unknown status"}
	ErrConcurrentModification  = &Error{Kind: KindConcurrentModification, Msg: "order was modified concurrently"}
	ErrStorage                 = &Error{Kind: KindStorage, Msg: "storage error"}
)

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil && e.Kind == KindStorage {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Field != "" {
		return e.Field + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if
// there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsValidation reports whether err is a caller-correctable failure, i.e.
// anything but a storage error.
func IsValidation(err error) bool {
	k := KindOf(err)
	return k != "" && k != KindStorage
}

// StorageError wraps a persistence failure. It is never retried here.
func StorageError(op string, err error) *Error {
	return &Error{Kind: KindStorage, Msg: op, Err: err}
}

func invalidRequest(field, msg string) *Error {
	return &Error{Kind: KindInvalidRequest, Field: field, Msg: msg}
}
