package websocket

import (
	"log"
)

// EventBroadcaster handles broadcasting WebSocket events.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// BroadcastSchedulesChanged tells connected clients that an owner's
// record set mutated. action is one of created, updated, deleted,
// imported; count is how many records the mutation touched.
func (b *EventBroadcaster) BroadcastSchedulesChanged(ownerID, action string, count int) {
	msg := NewMessage(TypeSchedulesChanged, SchedulesChangedPayload{
		OwnerID: ownerID,
		Action:  action,
		Count:   count,
	})
	b.broadcast(msg)
}

// BroadcastHolidaysUpdated announces a refreshed holiday overlay.
func (b *EventBroadcaster) BroadcastHolidaysUpdated(year int, region string) {
	msg := NewMessage(TypeHolidaysUpdated, HolidaysUpdatedPayload{
		Year:   year,
		Region: region,
	})
	b.broadcast(msg)
}

// BroadcastNotification sends a notification to all connected clients.
func (b *EventBroadcaster) BroadcastNotification(level, title, message string) {
	msg := NewMessage(TypeNotification, NotificationPayload{
		Level:   level,
		Title:   title,
		Message: message,
	})
	b.broadcast(msg)
}

// broadcast sends a message to all connected clients.
func (b *EventBroadcaster) broadcast(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Error encoding WebSocket message: %v", err)
		return
	}

	b.hub.Broadcast(data)
}
