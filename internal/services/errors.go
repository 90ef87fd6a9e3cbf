package services

import (
	"errors"

	repo "github.com/edumarket/edumarket-backend/internal/repository"
)

// Domain error taxonomy. Handlers map these onto HTTP statuses; nothing
// above this layer looks at storage errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
)

// fromRepo lifts storage errors into the domain taxonomy.
func fromRepo(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repo.ErrConflict),
		errors.Is(err, repo.ErrInvalidTransition),
		errors.Is(err, repo.ErrInsufficientFunds):
		return ErrInvalidState
	default:
		return err
	}
}
