package app

import (
	"context"

	"talenthub/internal/common"
	"talenthub/internal/domain/notification"
)

type NotificationService struct {
	notifications notification.Repository
}

func NewNotificationService(notifications notification.Repository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, actor Actor, limit, offset int) ([]notification.Notification, error) {
	return s.notifications.ListByRecipient(ctx, actor.PrincipalID, limit, offset)
}

func (s *NotificationService) UnreadCount(ctx context.Context, actor Actor) (int, error) {
	return s.notifications.CountUnread(ctx, actor.PrincipalID)
}

// MarkRead only touches the caller's own rows; foreign IDs in the batch
// are silently ignored by the recipient-scoped update.
func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, ids []common.UUID) error {
	if len(ids) == 0 {
		return common.NewValidationError("invalid request", map[string]string{"ids": "at least one notification id is required"})
	}
	return s.notifications.MarkRead(ctx, actor.PrincipalID, ids)
}
