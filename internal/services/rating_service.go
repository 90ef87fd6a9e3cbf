package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/edumarket/edumarket-backend/internal/models"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
)

type RatingService struct {
	ratings repo.Ratings
	users   repo.Users
}

func NewRatingService(r repo.Ratings, u repo.Users) *RatingService {
	return &RatingService{ratings: r, users: u}
}

// Rate records a peer rating, once per (ratee, rater) pair.
func (s *RatingService) Rate(ctx context.Context, cr models.CustomerRating) (models.CustomerRating, error) {
	if cr.Rating < 1 || cr.Rating > 5 {
		return models.CustomerRating{}, fmt.Errorf("%w: rating must be 1..5", ErrValidation)
	}
	if cr.UserID == cr.RaterID {
		return models.CustomerRating{}, fmt.Errorf("%w: cannot rate yourself", ErrInvalidState)
	}
	if _, err := s.users.GetByID(ctx, cr.UserID); err != nil {
		return models.CustomerRating{}, fromRepo(err)
	}

	created, err := s.ratings.Create(ctx, cr)
	if errors.Is(err, repo.ErrConflict) {
		return models.CustomerRating{}, fmt.Errorf("%w: already rated", ErrInvalidState)
	}
	return created, fromRepo(err)
}

func (s *RatingService) ListForUser(ctx context.Context, userID string) ([]models.CustomerRating, error) {
	out, err := s.ratings.ListForUser(ctx, userID)
	return out, fromRepo(err)
}
