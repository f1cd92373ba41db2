package order

import (
	"fmt"

	"github.com/kiwari-pos/digimenu/internal/enum"
)

// Status is an order lifecycle state.
type Status string

const (
	StatusPending        Status = enum.OrderStatusPending
	StatusConfirmed      Status = enum.OrderStatusConfirmed
	StatusPreparing      Status = enum.OrderStatusPreparing
	StatusOutForDelivery Status = enum.OrderStatusOutForDelivery
	StatusDelivered      Status = enum.OrderStatusDelivered
	StatusCancelled      Status = enum.OrderStatusCancelled
)

// mainSequence is the forward path; each status may only advance to the
// one after it.
var mainSequence = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
}

// ParseStatus validates s against the closed set of statuses.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", &Error{Kind: KindUnknownStatus, Field: "status", Msg: fmt.Sprintf("unknown status %q", s)}
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next returns the status one step forward on the main sequence.
func (s Status) Next() (Status, bool) {
	for i, st := range mainSequence {
		if st == s && i+1 < len(mainSequence) {
			return mainSequence[i+1], true
		}
	}
	return "", false
}

// CanTransition reports whether from → to is a legal move.
func CanTransition(from, to Status) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	next, ok := from.Next()
	return ok && next == to
}

// Transition validates moving an order in status current to target. Both
// are raw strings; unknown values fail with KindUnknownStatus before the
// transition itself is checked.
func Transition(current, target string) (Status, error) {
	from, err := ParseStatus(current)
	if err != nil {
		return "", err
	}
	to, err := ParseStatus(target)
	if err != nil {
		return "", err
	}
	if !CanTransition(from, to) {
		return "", &Error{
			Kind:  KindInvalidStatusTransition,
			Field: "status",
			Msg:   fmt.Sprintf("cannot transition from %s to %s", from, to),
		}
	}
	return to, nil
}
