package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
)

// EventType is the action an event reports
type EventType string

const (
	EventTypeCreated    EventType = "created"
	EventTypeUpdated    EventType = "updated"
	EventTypeDeleted    EventType = "deleted"
	EventTypeGenerated  EventType = "generated"
	EventTypeCompleted  EventType = "completed"
	EventTypeExpired    EventType = "expired"
	EventTypeRecomputed EventType = "recomputed"
	EventTypeDue        EventType = "due"
)

// EntityType is what the event is about
type EntityType string

const (
	EntityTypeRecord    EntityType = "record"
	EntityTypeChallenge EntityType = "challenge"
	EntityTypeProgress  EntityType = "progress"
	EntityTypeHealth    EntityType = "health"
	EntityTypeBill      EntityType = "bill"
)

// Event is the message pushed to clients.
// Format: { type, entity, kind, payload, timestamp }
type Event struct {
	Type      string            `json:"type"`           // e.g. "record.created"
	Entity    EntityType        `json:"entity"`         // e.g. "record"
	Kind      domain.RecordKind `json:"kind,omitempty"` // record collection, for record events
	Payload   interface{}       `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RecordChanged reports a write to one of the user's record collections
func RecordChanged(eventType EventType, kind domain.RecordKind, payload interface{}) Event {
	e := NewEvent(eventType, EntityTypeRecord, payload)
	e.Kind = kind
	return e
}

// ChallengesGenerated creates a challenge.generated event
func ChallengesGenerated(payload interface{}) Event {
	return NewEvent(EventTypeGenerated, EntityTypeChallenge, payload)
}

// ChallengeCompleted creates a challenge.completed event
func ChallengeCompleted(payload interface{}) Event {
	return NewEvent(EventTypeCompleted, EntityTypeChallenge, payload)
}

// ChallengeExpired creates a challenge.expired event
func ChallengeExpired(payload interface{}) Event {
	return NewEvent(EventTypeExpired, EntityTypeChallenge, payload)
}

// ProgressUpdated creates a progress.updated event
func ProgressUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeProgress, payload)
}

// HealthRecomputed creates a health.recomputed event
func HealthRecomputed(payload interface{}) Event {
	return NewEvent(EventTypeRecomputed, EntityTypeHealth, payload)
}

// BillDue creates a bill.due event
func BillDue(payload interface{}) Event {
	return NewEvent(EventTypeDue, EntityTypeBill, payload)
}
