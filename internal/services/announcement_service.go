package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edumarket/edumarket-backend/internal/models"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
)

type AnnouncementService struct {
	announcements repo.Announcements
}

func NewAnnouncementService(a repo.Announcements) *AnnouncementService {
	return &AnnouncementService{announcements: a}
}

func (s *AnnouncementService) Create(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	if strings.TrimSpace(a.Title) == "" {
		return models.Announcement{}, fmt.Errorf("%w: title required", ErrValidation)
	}
	created, err := s.announcements.Create(ctx, a)
	return created, fromRepo(err)
}

func (s *AnnouncementService) List(ctx context.Context, limit, offset int) ([]models.Announcement, error) {
	out, err := s.announcements.List(ctx, limit, offset)
	return out, fromRepo(err)
}
