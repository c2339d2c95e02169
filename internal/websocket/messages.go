package websocket

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeSchedulesChanged MessageType = "schedules.changed"
	TypeHolidaysUpdated  MessageType = "holidays.updated"
	TypeNotification     MessageType = "notification"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// SchedulesChangedPayload is the payload for schedules.changed events.
// Clients owning the records are expected to refetch and rebuild their
// event index from the full snapshot; no record diff is included.
type SchedulesChangedPayload struct {
	OwnerID string `json:"owner_id"`
	Action  string `json:"action"` // created, updated, deleted, imported
	Count   int    `json:"count"`
}

// HolidaysUpdatedPayload is the payload for holidays.updated events.
type HolidaysUpdatedPayload struct {
	Year   int    `json:"year"`
	Region string `json:"region"`
}

// NotificationPayload is the payload for notification events.
type NotificationPayload struct {
	Level   string `json:"level"` // info, warning, error, success
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
