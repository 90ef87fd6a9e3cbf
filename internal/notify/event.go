package notify

import (
	"encoding/json"

	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/google/uuid"
)

// TopicNotification is the only outbox topic today; the payload is a
// Payload JSON document.
const TopicNotification = "notification"

type Payload struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewEvent builds an outbox row for a user notification. Callers either
// hand it to a settlement (committed with the financial write) or enqueue
// it directly.
func NewEvent(userID, title, message, typ string) models.OutboxEvent {
	b, _ := json.Marshal(Payload{UserID: userID, Title: title, Message: message, Type: typ})
	return models.OutboxEvent{
		ID:      uuid.NewString(),
		Topic:   TopicNotification,
		Payload: b,
		Status:  models.OutboxPending,
	}
}
