package models

import "time"

// CustomerRating is a peer rating of one user by another, unique per pair.
type CustomerRating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RaterID   string    `json:"rater_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
