package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/logger"
	"agriconnect-backend/internal/repository"
)

type notificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	logger.EnterMethod("notificationRepository.Create", "accountID", n.AccountID, "title", n.Title)

	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "reason", "failed to marshal attributes")
		return err
	}

	query := `INSERT INTO notifications (account_id, title, message, is_read, attributes, created_on)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`
	err = r.db.QueryRowContext(ctx, query, n.AccountID, n.Title, n.Message, n.IsRead, attrs).Scan(&n.ID, &n.CreatedOn)
	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "accountID", n.AccountID)
		return fmt.Errorf("create notification: %w", err)
	}
	logger.ExitMethod("notificationRepository.Create", "notificationID", n.ID)
	return nil
}

func (r *notificationRepository) List(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Notification, int32, error) {
	query := `SELECT id, account_id, title, message, is_read, attributes, created_on
	          FROM notifications WHERE account_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.AccountID, &n.Title, &n.Message, &n.IsRead, &attrs, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, err
			}
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	err = r.db.QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}
	return notes, count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, accountID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND account_id = $2`,
		id, accountID,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
