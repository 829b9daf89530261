package ports

import (
	"context"

	"github.com/teamforge/ems-api/internal/core/domain"
)

// NotificationInput is the DTO handed to the dispatcher by write paths that
// produce notifications (leave decisions, task changes, admin broadcasts).
type NotificationInput struct {
	RecipientID string
	SenderID    string
	Type        domain.NotificationType
	Message     string
	// Event, when set, is also published to the recipient's relay room
	// after the document is persisted.
	Event *Event
}

// NotificationRepository is the persistence interface for notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	MarkRead(ctx context.Context, id string) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// NotificationService defines notification read/write use cases. MarkRead
// and Delete operate on a single document, so they take the caller's
// identity and refuse actors who are neither the recipient nor an admin.
type NotificationService interface {
	Create(ctx context.Context, in NotificationInput) (*domain.Notification, error)
	ListFor(ctx context.Context, recipientID string) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, id, actorID string, actorRole domain.Role) error
}

// NotificationDispatcher enqueues notifications for asynchronous persistence
// and relay delivery. Per-recipient ordering is preserved.
type NotificationDispatcher interface {
	Enqueue(in NotificationInput)
}
