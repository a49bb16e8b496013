// Package notify delivers spending alerts raised by the sweep worker.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/messaging"
	"github.com/receiptwise/receiptwise-backend/internal/websocket"
)

// AlertNotifier receives the alerts computed for one workspace and month
type AlertNotifier interface {
	NotifyAlerts(ctx context.Context, workspaceID int32, year, month int, alerts []domain.Alert) error
}

// AlertPayload is the websocket payload of a spending_alert.triggered event
type AlertPayload struct {
	Year   int            `json:"year"`
	Month  int            `json:"month"`
	Alerts []domain.Alert `json:"alerts"`
}

// WebSocketNotifier pushes alerts to the workspace's connected clients
type WebSocketNotifier struct {
	publisher websocket.EventPublisher
}

func NewWebSocketNotifier(publisher websocket.EventPublisher) *WebSocketNotifier {
	return &WebSocketNotifier{publisher: publisher}
}

func (n *WebSocketNotifier) NotifyAlerts(_ context.Context, workspaceID int32, year, month int, alerts []domain.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	n.publisher.Publish(workspaceID, websocket.SpendingAlertTriggered(AlertPayload{
		Year:   year,
		Month:  month,
		Alerts: alerts,
	}))
	return nil
}

// AlertPublisher is satisfied by messaging.Client
type AlertPublisher interface {
	PublishSpendingAlert(ctx context.Context, msg *messaging.SpendingAlertMessage) error
}

// AMQPNotifier publishes one message per alert
type AMQPNotifier struct {
	publisher AlertPublisher
}

func NewAMQPNotifier(publisher AlertPublisher) *AMQPNotifier {
	return &AMQPNotifier{publisher: publisher}
}

func (n *AMQPNotifier) NotifyAlerts(ctx context.Context, workspaceID int32, year, month int, alerts []domain.Alert) error {
	for _, a := range alerts {
		msg := messaging.NewSpendingAlertMessage(workspaceID, year, month, a.Severity, a.Category, a.Message)
		if err := n.publisher.PublishSpendingAlert(ctx, msg); err != nil {
			return fmt.Errorf("publish alert for %s: %w", a.Category, err)
		}
	}
	return nil
}

// Multi fans alerts out to every notifier and joins their errors
type Multi []AlertNotifier

func (m Multi) NotifyAlerts(ctx context.Context, workspaceID int32, year, month int, alerts []domain.Alert) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyAlerts(ctx, workspaceID, year, month, alerts); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
