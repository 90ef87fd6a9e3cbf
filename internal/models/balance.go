package models

import "time"

// Balance is a user's accumulated seller earnings in cents. Mutations go
// through conditional UPDATEs at the storage layer, never read-then-write.
type Balance struct {
	UserID        string    `json:"user_id"`
	Amount        int64     `json:"amount"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}
