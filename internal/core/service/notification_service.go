package service

import (
	"context"
	"time"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

// NotificationService implements notification reads and synchronous writes.
// Write paths that originate inside other services go through the dispatcher
// instead; this service is what the dispatcher and the REST handlers share.
type NotificationService struct {
	repo ports.NotificationRepository
}

func NewNotificationService(repo ports.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, in ports.NotificationInput) (*domain.Notification, error) {
	typ := in.Type
	if typ == "" {
		typ = domain.NotifyGeneral
	}
	n := &domain.Notification{
		RecipientID: in.RecipientID,
		SenderID:    in.SenderID,
		Type:        typ,
		Message:     in.Message,
		CreatedAt:   time.Now().UTC(),
	}
	return s.repo.Insert(ctx, n)
}

func (s *NotificationService) ListFor(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.Notification, error) {
	if err := s.authorize(ctx, id, actorID, actorRole); err != nil {
		return nil, err
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, recipientID)
}

func (s *NotificationService) Delete(ctx context.Context, id, actorID string, actorRole domain.Role) error {
	if err := s.authorize(ctx, id, actorID, actorRole); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// authorize loads the notification and checks the actor may act on it.
// Admins may act on any notification, everyone else only on their own.
func (s *NotificationService) authorize(ctx context.Context, id, actorID string, actorRole domain.Role) error {
	if actorRole == domain.RoleAdmin {
		return nil
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n.RecipientID != actorID {
		return domain.ErrForbidden
	}
	return nil
}
