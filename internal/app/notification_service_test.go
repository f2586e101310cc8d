package app

import (
	"context"
	"testing"

	"talenthub/internal/common"
	"talenthub/internal/domain/notification"
)

func TestNotificationListAndUnreadCount(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()
	recipient := common.NewUUID()
	other := common.NewUUID()

	for i := 0; i < 3; i++ {
		if _, err := repo.Create(ctx, notification.Notification{RecipientID: recipient, Type: notification.TypeGeneral, Title: "t"}); err != nil {
			t.Fatalf("seed notification: %v", err)
		}
	}
	if _, err := repo.Create(ctx, notification.Notification{RecipientID: other, Type: notification.TypeGeneral, Title: "t"}); err != nil {
		t.Fatalf("seed foreign notification: %v", err)
	}

	actor := Actor{PrincipalID: recipient}
	items, err := svc.List(ctx, actor, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d notifications, want 3", len(items))
	}
	unread, err := svc.UnreadCount(ctx, actor)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if unread != 3 {
		t.Fatalf("unread %d, want 3", unread)
	}
}

func TestMarkReadIgnoresForeignIDs(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()
	recipient := common.NewUUID()
	other := common.NewUUID()

	mine, err := repo.Create(ctx, notification.Notification{RecipientID: recipient, Type: notification.TypeGeneral, Title: "mine"})
	if err != nil {
		t.Fatalf("seed notification: %v", err)
	}
	theirs, err := repo.Create(ctx, notification.Notification{RecipientID: other, Type: notification.TypeGeneral, Title: "theirs"})
	if err != nil {
		t.Fatalf("seed foreign notification: %v", err)
	}

	actor := Actor{PrincipalID: recipient}
	if err := svc.MarkRead(ctx, actor, []common.UUID{mine.ID, theirs.ID}); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	unreadMine, _ := svc.UnreadCount(ctx, actor)
	if unreadMine != 0 {
		t.Fatalf("recipient unread %d, want 0", unreadMine)
	}
	unreadTheirs, _ := svc.UnreadCount(ctx, Actor{PrincipalID: other})
	if unreadTheirs != 1 {
		t.Fatalf("foreign unread %d, want 1; foreign rows must be untouched", unreadTheirs)
	}
}

func TestMarkReadRequiresIDs(t *testing.T) {
	svc := NewNotificationService(newFakeNotificationRepo())
	if err := svc.MarkRead(context.Background(), Actor{PrincipalID: common.NewUUID()}, nil); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
