package notify

import (
	"context"

	"github.com/edumarket/edumarket-backend/internal/models"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
)

// Notifier delivers one notification to a user. The default implementation
// persists a record; a live push channel would wrap it.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

type storeNotifier struct {
	notifications repo.Notifications
}

func NewStoreNotifier(n repo.Notifications) Notifier {
	return &storeNotifier{notifications: n}
}

func (s *storeNotifier) Notify(ctx context.Context, n models.Notification) error {
	_, err := s.notifications.Create(ctx, n)
	return err
}
