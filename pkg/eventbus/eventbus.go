// Package eventbus publishes order lifecycle events to interested
// consumers (kitchen displays, accounting exports). Publishing is best
// effort: the ledger commits first and never waits on the broker to decide
// the outcome of a request.
package eventbus

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	OrderCreated       = "order.created"
	OrderItemsReturned = "order.items_returned"
	OrderRefunded      = "order.refunded"
)

// Event is the envelope published for every ledger change.
type Event struct {
	ID          uuid.UUID   `json:"id"`
	Type        string      `json:"type"`
	TenantID    uuid.UUID   `json:"tenant_id"`
	OrderID     uuid.UUID   `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	ActorID     uuid.UUID   `json:"actor_id"`
	OccurredAt  time.Time   `json:"occurred_at"`
	Data        interface{} `json:"data,omitempty"`
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NullPublisher drops every event. Used when no broker is configured.
type NullPublisher struct{}

func NewNullPublisher() *NullPublisher {
	return &NullPublisher{}
}

func (NullPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (NullPublisher) Close() error                                   { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailWith makes subsequent Publish calls return err.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *Recorder) Publish(ctx context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
