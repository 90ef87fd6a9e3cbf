package models

import "time"

type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalAccepted  WithdrawalStatus = "accepted"
	WithdrawalRejected  WithdrawalStatus = "rejected"
	WithdrawalCompleted WithdrawalStatus = "completed"
)

type Withdrawal struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	Amount        int64            `json:"amount"` // cents
	Status        WithdrawalStatus `json:"status"`
	RoutingNumber string           `json:"routing_number,omitempty"`
	RoutingDate   *time.Time       `json:"routing_date,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CanTransition encodes the lifecycle: pending -> accepted|rejected,
// accepted -> completed. Completion straight from pending is not allowed.
func (s WithdrawalStatus) CanTransition(to WithdrawalStatus) bool {
	switch s {
	case WithdrawalPending:
		return to == WithdrawalAccepted || to == WithdrawalRejected
	case WithdrawalAccepted:
		return to == WithdrawalCompleted
	default:
		return false
	}
}
