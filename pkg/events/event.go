package events

import "time"

// Event is the contract for everything published on the NATS bus.
type Event interface {
	// EventType is the routing code, e.g. "inbox.question".
	EventType() string

	// Payload is the data carried by the event.
	Payload() map[string]interface{}

	// Timestamp is when the event occurred.
	Timestamp() time.Time
}

// Event types emitted by this service.
const (
	TypeInboxQuestion = "inbox.question"
	TypePlanChanged   = "user.plan_changed"
)

// BaseEvent is a plain implementation used by publishers and by the
// subscriber when reconstructing events off the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// New builds a BaseEvent stamped with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}
