package service

import (
	"context"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) List(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Notification, int32, error) {
	return s.noteRepo.List(ctx, accountID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, accountID int64) error {
	return s.noteRepo.MarkAsRead(ctx, id, accountID)
}
