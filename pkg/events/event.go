package events

import (
	"context"
	"time"
)

// Event types emitted by the assistant.
const (
	TypeTurnRecorded  = "TURN_RECORDED"
	TypeUnknownQuery  = "UNKNOWN_QUERY_LOGGED"
	TypeUserCleared   = "USER_DATA_CLEARED"
	TypeIntentsTested = "INTENTS_TESTED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TURN_RECORDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher delivers events to a bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// BaseEvent is the only Event implementation; the type code decides how the
// payload is read.
type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
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

func NewTurnRecorded(userID, intent string, confidence float64, products int, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeTurnRecorded,
		Data: map[string]interface{}{
			"user_id":    userID,
			"intent":     intent,
			"confidence": confidence,
			"products":   products,
		},
		OccurredAt: at,
	}
}

func NewUnknownQuery(userID, message string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeUnknownQuery,
		Data: map[string]interface{}{
			"user_id": userID,
			"message": message,
		},
		OccurredAt: at,
	}
}

func NewUserCleared(userID string, at time.Time) BaseEvent {
	return BaseEvent{
		Type:       TypeUserCleared,
		Data:       map[string]interface{}{"user_id": userID},
		OccurredAt: at,
	}
}
