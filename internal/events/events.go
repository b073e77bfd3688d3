package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	EventReservationCreated   = "reservation_created"
	EventReservationCancelled = "reservation_cancelled"
	EventReservationEntry     = "reservation_entry"
	EventReservationExit      = "reservation_exit"
	EventReservationCompleted = "reservation_completed"
)

// ReservationEventPayload is the snapshot pushed to consumers. Consumers
// treat it as display/telemetry data, never as an authoritative mutation.
type ReservationEventPayload struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	UserID        uuid.UUID `json:"user_id"`
	SpotID        uuid.UUID `json:"spot_id"`
	SpotName      string    `json:"spot_name,omitempty"`
	Status        string    `json:"status"`
	TotalCost     *int64    `json:"total_cost,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

type Handler func(event *Event) error

// Bus provides in-process pub/sub for reservation lifecycle events.
type Bus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// SubscribeAll registers a handler for every reservation event type.
func (b *Bus) SubscribeAll(handler Handler) {
	for _, t := range []string{
		EventReservationCreated,
		EventReservationCancelled,
		EventReservationEntry,
		EventReservationExit,
		EventReservationCompleted,
	} {
		b.Subscribe(t, handler)
	}
}

// Publish runs handlers synchronously; the caller decides the concurrency
// model. Handler errors are swallowed so telemetry can never fail a command.
func (b *Bus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		_ = handler(event)
	}
}

func (b *Bus) PublishJSON(eventType string, payload any) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
