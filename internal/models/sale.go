package models

import "time"

// Sale is the immutable record of one note purchase. Amount is the seller
// payout; Amount + Commission always equals the note price at sale time.
type Sale struct {
	ID         string    `json:"id"`
	NoteID     string    `json:"note_id"`
	SellerID   string    `json:"seller_id"`
	BuyerID    string    `json:"buyer_id"`
	Amount     int64     `json:"amount"`
	Commission int64     `json:"commission"`
	InvoiceID  string    `json:"invoice_id"`
	CreatedAt  time.Time `json:"created_at"`
}
