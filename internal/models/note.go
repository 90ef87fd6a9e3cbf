package models

import (
	"errors"
	"strings"
	"time"
)

type Note struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"` // cents
	CoverURL    string    `json:"cover_url"`
	FileURL     string    `json:"file_url"`
	Downloads   int64     `json:"downloads"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (n *Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("title required")
	}
	if n.Price < 0 {
		return errors.New("price must be >= 0")
	}
	return nil
}

// PurchasedNote is the buyer-side snapshot of a purchase. One row per
// (note, user); the unique pair doubles as the purchase idempotency key.
type PurchasedNote struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"note_id"`
	UserID    string    `json:"user_id"`
	SaleID    string    `json:"sale_id"`
	Title     string    `json:"title"`
	Price     int64     `json:"price"`
	CoverURL  string    `json:"cover_url"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}

type NoteReview struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"note_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
