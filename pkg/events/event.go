package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the subject suffix of the event (e.g. "conversation.cleared").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Conversation event types.
const (
	TypeTurnAppended      = "conversation.turn_appended"
	TypeAnalysisCompleted = "conversation.analysis_completed"
	TypeSessionCleared    = "conversation.cleared"
)

// BaseEvent is the generic Event carried over the bus.
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
