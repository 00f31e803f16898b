package repository

import (
	"context"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

type NotificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(
	ctx context.Context,
	notification *models.Notification,
) error {
	query := `
		INSERT INTO notifications (receiver_id, content, type, ref_id, is_read)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, is_read, created_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		notification.ReceiverID,
		notification.Content,
		int(notification.Type),
		notification.RefID,
	).Scan(&notification.ID, &notification.IsRead, &notification.CreatedAt)
}

// ListByReceiver returns every notification for the user, newest first.
// A limit of 0 or less means no cap.
func (r *NotificationRepository) ListByReceiver(
	ctx context.Context,
	receiverID int64,
	limit int,
) ([]models.Notification, error) {
	query := `
		SELECT id, receiver_id, content, type, ref_id, is_read, created_at
		FROM notifications
		WHERE receiver_id = $1
		ORDER BY created_at DESC, id DESC
	`
	args := []any{receiverID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var notification models.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.ReceiverID,
			&notification.Content,
			&notification.Type,
			&notification.RefID,
			&notification.IsRead,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}

		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, receiverID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM notifications
		WHERE receiver_id = $1
		  AND is_read = FALSE
	`, receiverID).Scan(&count)
	return count, err
}

// MarkRead flags a single notification, but only when it belongs to
// receiverID. Returns false when the row is missing or owned by someone else,
// which callers surface identically to not leak existence.
func (r *NotificationRepository) MarkRead(
	ctx context.Context,
	id int64,
	receiverID int64,
) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1
		  AND receiver_id = $2
	`, id, receiverID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, receiverID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE receiver_id = $1
		  AND is_read = FALSE
	`, receiverID)
	return err
}

// Delete removes a notification owned by receiverID. Like MarkRead, a foreign
// id reads as missing.
func (r *NotificationRepository) Delete(ctx context.Context, id int64, receiverID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM notifications
		WHERE id = $1
		  AND receiver_id = $2
	`, id, receiverID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
