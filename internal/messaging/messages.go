package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SpendingAlertMessage is published once per alert raised by the sweep.
// Consumers (mailers, push gateways) dedupe on ID.
type SpendingAlertMessage struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID int32     `json:"workspaceId"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Severity    string    `json:"severity"`
	Category    string    `json:"category"`
	Message     string    `json:"message"`
	TriggeredAt time.Time `json:"triggeredAt"`
}

func NewSpendingAlertMessage(workspaceID int32, year, month int, severity, category, message string) *SpendingAlertMessage {
	return &SpendingAlertMessage{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Year:        year,
		Month:       month,
		Severity:    severity,
		Category:    category,
		Message:     message,
		TriggeredAt: time.Now().UTC(),
	}
}

func (m *SpendingAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SpendingAlertMessageFromJSON(data []byte) (*SpendingAlertMessage, error) {
	var msg SpendingAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
