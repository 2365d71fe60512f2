package service

import (
	"context"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/events"
	"agriconnect-backend/internal/logger"
	"agriconnect-backend/internal/repository"
)

// notifier persists a notification row and pushes the matching user-scoped
// event. Failures are logged, never propagated: notification delivery is
// best-effort and must not undo a committed ledger operation.
type notifier struct {
	notes     repository.NotificationRepository
	publisher events.Publisher
}

func (n *notifier) send(ctx context.Context, accountID int64, title, message string, attrs map[string]string) {
	note := &domain.Notification{
		AccountID:  accountID,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	}
	if err := n.notes.Create(ctx, note); err != nil {
		logger.Error("Failed to persist notification", "accountID", accountID, "title", title, "error", err)
	}
	n.publisher.PublishUser(accountID, events.EventNotification, events.NotificationPayload{
		Title:   title,
		Message: message,
	})
}
