package services

import (
	"context"

	"github.com/edumarket/edumarket-backend/internal/models"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
)

type NotificationService struct {
	notifications repo.Notifications
}

func NewNotificationService(n repo.Notifications) *NotificationService {
	return &NotificationService{notifications: n}
}

func (s *NotificationService) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	out, err := s.notifications.ListByUser(ctx, userID)
	return out, fromRepo(err)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return fromRepo(s.notifications.MarkRead(ctx, id, userID))
}
