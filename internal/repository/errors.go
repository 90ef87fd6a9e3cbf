package repository

import "errors"

// Storage-level error taxonomy. Implementations translate driver errors
// (pgx.ErrNoRows, unique violations) into these so callers never inspect
// driver codes.
var (
	ErrNotFound          = errors.New("record not found")
	ErrConflict          = errors.New("record already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidTransition = errors.New("invalid status transition")
)
