package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

type EventType string

const (
	EventTypeCreated     EventType = "created"
	EventTypeUpdated     EventType = "updated"
	EventTypeDeleted     EventType = "deleted"
	EventTypeImported    EventType = "imported"
	EventTypeBulkDeleted EventType = "bulk_deleted"
	EventTypeCompleted   EventType = "completed"
	EventTypeTriggered   EventType = "triggered"
)

type EntityType string

const (
	EntityTypeTransaction   EntityType = "transaction"
	EntityTypeBudget        EntityType = "budget"
	EntityTypeGoal          EntityType = "goal"
	EntityTypeSpendingAlert EntityType = "spending_alert"
)

// Event is the message pushed to browsers: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"` // "<entity>.<event>", e.g. "transaction.created"
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
}

func TransactionUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeTransaction, payload)
}

func TransactionDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTransaction, payload)
}

// TransactionsImported carries the import counts, not the rows
func TransactionsImported(payload interface{}) Event {
	return NewEvent(EventTypeImported, EntityTypeTransaction, payload)
}

func TransactionsBulkDeleted(payload interface{}) Event {
	return NewEvent(EventTypeBulkDeleted, EntityTypeTransaction, payload)
}

func BudgetCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeBudget, payload)
}

func BudgetUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeBudget, payload)
}

func BudgetDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeBudget, payload)
}

func GoalUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeGoal, payload)
}

// GoalCompleted fires once, on the update that reaches the target
func GoalCompleted(payload interface{}) Event {
	return NewEvent(EventTypeCompleted, EntityTypeGoal, payload)
}

func SpendingAlertTriggered(payload interface{}) Event {
	return NewEvent(EventTypeTriggered, EntityTypeSpendingAlert, payload)
}

// EventPublisher pushes events to every client connected to a workspace
type EventPublisher interface {
	Publish(workspaceID int32, event Event)
}

var _ EventPublisher = (*Hub)(nil)

// NoOpPublisher drops every event. Used when live updates are disabled and in tests.
type NoOpPublisher struct{}

func (n *NoOpPublisher) Publish(workspaceID int32, event Event) {}
