package models

import "time"

type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxDispatched OutboxStatus = "dispatched"
	OutboxFailed     OutboxStatus = "failed"
)

// OutboxEvent is written in the same transaction as the settlement it
// describes; a dispatcher drains pending rows after commit.
type OutboxEvent struct {
	ID           string       `json:"id"`
	Topic        string       `json:"topic"`
	Payload      []byte       `json:"payload"`
	Status       OutboxStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	DispatchedAt *time.Time   `json:"dispatched_at,omitempty"`
}
