package models

import "time"

const (
	NotifyInfo                = "info"
	NotifyNoteSold            = "note_sold"
	NotifyNotePurchased       = "note_purchased"
	NotifyWithdrawalAccepted  = "withdrawal_accepted"
	NotifyWithdrawalRejected  = "withdrawal_rejected"
	NotifyWithdrawalCompleted = "withdrawal_completed"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
