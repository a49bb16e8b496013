package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{"id": 1, "name": "Coffee", "amount": "4.50"}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
	after := time.Now()

	assert.Equal(t, "transaction.created", evt.Type)
	assert.Equal(t, EntityTypeTransaction, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
	assert.Equal(t, time.UTC, evt.Timestamp.Location())
}

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name string
		evt  Event
		want string
	}{
		{"transaction created", TransactionCreated(nil), "transaction.created"},
		{"transaction updated", TransactionUpdated(nil), "transaction.updated"},
		{"transaction deleted", TransactionDeleted(nil), "transaction.deleted"},
		{"transactions imported", TransactionsImported(nil), "transaction.imported"},
		{"transactions bulk deleted", TransactionsBulkDeleted(nil), "transaction.bulk_deleted"},
		{"budget created", BudgetCreated(nil), "budget.created"},
		{"budget updated", BudgetUpdated(nil), "budget.updated"},
		{"budget deleted", BudgetDeleted(nil), "budget.deleted"},
		{"goal updated", GoalUpdated(nil), "goal.updated"},
		{"goal completed", GoalCompleted(nil), "goal.completed"},
		{"spending alert", SpendingAlertTriggered(nil), "spending_alert.triggered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.evt.Type)
		})
	}
}

func TestEvent_ToJSON(t *testing.T) {
	evt := BudgetDeleted(map[string]interface{}{"id": float64(3)})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "budget.deleted", decoded["type"])
	assert.Equal(t, "budget", decoded["entity"])
	assert.Equal(t, float64(3), decoded["payload"].(map[string]interface{})["id"])
	assert.NotEmpty(t, decoded["timestamp"])
}

func TestNoOpPublisher_Publish(t *testing.T) {
	var publisher EventPublisher = &NoOpPublisher{}

	assert.NotPanics(t, func() {
		publisher.Publish(1, TransactionCreated(nil))
	})
}
