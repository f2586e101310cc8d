package notification

import (
	"context"

	"talenthub/internal/common"
)

type Repository interface {
	Create(ctx context.Context, n Notification) (*Notification, error)
	ListByRecipient(ctx context.Context, recipientID common.UUID, limit, offset int) ([]Notification, error)
	CountUnread(ctx context.Context, recipientID common.UUID) (int, error)
	// MarkRead flips the read flag on the recipient's own rows only.
	MarkRead(ctx context.Context, recipientID common.UUID, ids []common.UUID) error
}
