package notifications

import (
	"context"
	"encoding/json"
	"log"

	"investkoree/internal/observability"
)

// Event type constants prevent typos in event names.
const (
	EventNotification      = "notification"
	EventNotificationsRead = "notifications-read"
)

// Dispatcher fans an event out to every live session a user has: directly
// through the local hub, and through Redis pub/sub for sockets held by other
// processes. Delivery is fire-and-forget; offline users miss the push and
// catch up from the notification list on next load.
type Dispatcher struct {
	hub      *Hub
	notifier *Notifier
}

func NewDispatcher(hub *Hub, notifier *Notifier) *Dispatcher {
	return &Dispatcher{hub: hub, notifier: notifier}
}

// Emit wraps payload in a {type, payload} envelope and pushes it to all of
// the user's connections. Errors are logged, never returned: a failed push
// must not fail the operation that triggered it.
func (d *Dispatcher) Emit(ctx context.Context, userID uint, eventType string, payload interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)
	if d.hub != nil {
		d.hub.Broadcast(userID, message)
	}
	if d.notifier != nil {
		if err := d.notifier.PublishUser(ctx, userID, message); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
	}
	observability.NotificationsPushed.WithLabelValues(eventType).Inc()
}
