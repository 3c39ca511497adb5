package services

import (
	"context"

	"github.com/anjiri1684/tutoring_api/database"
	"github.com/anjiri1684/tutoring_api/models"
	"go.uber.org/zap"
)

// Publisher receives notifications once they are committed.
type Publisher interface {
	Publish(n models.Notification)
}

type NotificationService struct {
	store     *database.Store
	sim       *Simulator
	logger    *zap.Logger
	publisher Publisher
}

// NewNotificationService accepts a nil publisher.
func NewNotificationService(store *database.Store, sim *Simulator, logger *zap.Logger, publisher Publisher) *NotificationService {
	return &NotificationService{store: store, sim: sim, logger: orNop(logger), publisher: publisher}
}

func (s *NotificationService) GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return call(ctx, s.sim, "getUserNotifications", func() ([]models.Notification, error) {
		var out []models.Notification
		err := s.store.View(func(tx *database.Tx) error {
			out = tx.Notifications(func(n models.Notification) bool { return n.UserID == userID })
			return nil
		})
		return out, err
	})
}

func (s *NotificationService) CreateNotification(ctx context.Context, in models.NotificationInput) (models.Notification, error) {
	n, err := call(ctx, s.sim, "createNotification", func() (models.Notification, error) {
		var n models.Notification
		err := s.store.Update(func(tx *database.Tx) error {
			n = models.Notification{
				ID:        tx.NextID(database.KindNotification),
				UserID:    in.UserID,
				Type:      in.Type,
				Title:     in.Title,
				Message:   in.Message,
				Link:      in.Link,
				CreatedAt: tx.Now(),
			}
			return tx.InsertNotification(n)
		})
		return n, err
	})
	if err != nil {
		return models.Notification{}, err
	}
	if s.publisher != nil {
		s.publisher.Publish(n)
	}
	return n, nil
}

// MarkAsRead sets the read flag. Marking an already read notification is a
// no-op.
func (s *NotificationService) MarkAsRead(ctx context.Context, id string) (models.Notification, error) {
	return call(ctx, s.sim, "markAsRead", func() (models.Notification, error) {
		var out models.Notification
		err := s.store.Update(func(tx *database.Tx) error {
			n, ok, err := tx.UpdateNotification(id, func(n *models.Notification) { n.Read = true })
			if err != nil {
				return err
			}
			if !ok {
				return ErrNotificationNotFound
			}
			out = n
			return nil
		})
		return out, err
	})
}
