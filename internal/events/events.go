// Package events carries order lifecycle notifications from the service to
// live subscribers and the message bus.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Event is an order lifecycle notification. It is published after the
// change is committed.
type Event struct {
	Type           string    `json:"type"`
	OrderID        uuid.UUID `json:"order_id"`
	ClientID       uuid.UUID `json:"client_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Version        int32     `json:"version"`
	TotalAmount    string    `json:"total_amount"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Publisher delivers an Event to some sink.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi fans an event out to every publisher. All publishers are tried;
// the returned error joins the individual failures.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
