package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/edumarket/edumarket-backend/internal/models"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
	"github.com/edumarket/edumarket-backend/internal/storage"
)

type NoteService struct {
	notes     repo.Notes
	purchases repo.Purchases
	reviews   repo.Reviews
	uploader  storage.Uploader
}

func NewNoteService(n repo.Notes, p repo.Purchases, rv repo.Reviews, up storage.Uploader) *NoteService {
	return &NoteService{notes: n, purchases: p, reviews: rv, uploader: up}
}

func (s *NoteService) Create(ctx context.Context, n models.Note) (models.Note, error) {
	if err := n.Validate(); err != nil {
		return models.Note{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	created, err := s.notes.Create(ctx, n)
	return created, fromRepo(err)
}

func (s *NoteService) Get(ctx context.Context, id string) (models.Note, error) {
	n, err := s.notes.GetByID(ctx, id)
	return n, fromRepo(err)
}

func (s *NoteService) List(ctx context.Context, limit, offset int) ([]models.Note, error) {
	out, err := s.notes.List(ctx, limit, offset)
	return out, fromRepo(err)
}

func (s *NoteService) ListByOwner(ctx context.Context, ownerID string) ([]models.Note, error) {
	out, err := s.notes.ListByOwner(ctx, ownerID)
	return out, fromRepo(err)
}

func (s *NoteService) Update(ctx context.Context, callerID string, n models.Note) (models.Note, error) {
	existing, err := s.notes.GetByID(ctx, n.ID)
	if err != nil {
		return models.Note{}, fromRepo(err)
	}
	if existing.OwnerID != callerID {
		return models.Note{}, fmt.Errorf("%w: not the note owner", ErrUnauthorized)
	}
	if err := n.Validate(); err != nil {
		return models.Note{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	n.OwnerID = existing.OwnerID
	if err := s.notes.Update(ctx, n); err != nil {
		return models.Note{}, fromRepo(err)
	}
	return s.notes.GetByID(ctx, n.ID)
}

func (s *NoteService) Delete(ctx context.Context, callerID, id string) error {
	existing, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return fromRepo(err)
	}
	if existing.OwnerID != callerID {
		return fmt.Errorf("%w: not the note owner", ErrUnauthorized)
	}
	return fromRepo(s.notes.Delete(ctx, id))
}

// AttachFile stores the note document through the uploader contract and
// records the returned URL.
func (s *NoteService) AttachFile(ctx context.Context, callerID, noteID, filename string, r io.Reader) (models.Note, error) {
	n, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		return models.Note{}, fromRepo(err)
	}
	if n.OwnerID != callerID {
		return models.Note{}, fmt.Errorf("%w: not the note owner", ErrUnauthorized)
	}
	url, err := s.uploader.Upload(ctx, filename, r)
	if err != nil {
		return models.Note{}, err
	}
	n.FileURL = url
	if err := s.notes.Update(ctx, n); err != nil {
		return models.Note{}, fromRepo(err)
	}
	return s.notes.GetByID(ctx, noteID)
}

// AddReview lets a buyer review a note once. Non-buyers and the owner are
// turned away; the (note_id, user_id) unique key enforces one review per
// user even under concurrent submissions.
func (s *NoteService) AddReview(ctx context.Context, rv models.NoteReview) (models.NoteReview, error) {
	if rv.Rating < 1 || rv.Rating > 5 {
		return models.NoteReview{}, fmt.Errorf("%w: rating must be 1..5", ErrValidation)
	}
	if _, err := s.notes.GetByID(ctx, rv.NoteID); err != nil {
		return models.NoteReview{}, fromRepo(err)
	}
	bought, err := s.purchases.HasPurchased(ctx, rv.NoteID, rv.UserID)
	if err != nil {
		return models.NoteReview{}, fromRepo(err)
	}
	if !bought {
		return models.NoteReview{}, fmt.Errorf("%w: only buyers can review", ErrInvalidState)
	}

	created, err := s.reviews.Create(ctx, rv)
	if errors.Is(err, repo.ErrConflict) {
		return models.NoteReview{}, fmt.Errorf("%w: already reviewed", ErrInvalidState)
	}
	return created, fromRepo(err)
}

func (s *NoteService) ListReviews(ctx context.Context, noteID string) ([]models.NoteReview, error) {
	out, err := s.reviews.ListByNote(ctx, noteID)
	return out, fromRepo(err)
}
