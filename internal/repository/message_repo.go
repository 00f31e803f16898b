package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a message. sent_at is assigned by the database so ordering
// within a chat never depends on client clocks.
func (r *MessageRepository) Create(
	ctx context.Context,
	chatID int64,
	senderID int64,
	receiverID int64,
	content string,
) (*models.Message, error) {
	query := `
		INSERT INTO messages (chat_id, sender_id, receiver_id, content, is_read)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, chat_id, sender_id, receiver_id, content, is_read, sent_at
	`

	var message models.Message
	err := r.db.QueryRow(ctx, query, chatID, senderID, receiverID, content).Scan(
		&message.ID,
		&message.ChatID,
		&message.SenderID,
		&message.ReceiverID,
		&message.Content,
		&message.IsRead,
		&message.SentAt,
	)
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// ListByChat returns the full thread oldest first.
func (r *MessageRepository) ListByChat(
	ctx context.Context,
	chatID int64,
) ([]models.Message, error) {
	query := `
		SELECT id, chat_id, sender_id, receiver_id, content, is_read, sent_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY sent_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var message models.Message
		if err := rows.Scan(
			&message.ID,
			&message.ChatID,
			&message.SenderID,
			&message.ReceiverID,
			&message.Content,
			&message.IsRead,
			&message.SentAt,
		); err != nil {
			return nil, err
		}

		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// Latest returns the most recent message in the chat, or nil when the chat is
// still empty.
func (r *MessageRepository) Latest(ctx context.Context, chatID int64) (*models.Message, error) {
	query := `
		SELECT id, chat_id, sender_id, receiver_id, content, is_read, sent_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY sent_at DESC, id DESC
		LIMIT 1
	`

	var message models.Message
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&message.ID,
		&message.ChatID,
		&message.SenderID,
		&message.ReceiverID,
		&message.Content,
		&message.IsRead,
		&message.SentAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &message, nil
}

// MarkChatRead flags every message in the chat addressed to readerID.
func (r *MessageRepository) MarkChatRead(
	ctx context.Context,
	chatID int64,
	readerID int64,
) error {
	_, err := r.db.Exec(ctx, `
		UPDATE messages
		SET is_read = TRUE
		WHERE chat_id = $1
		  AND receiver_id = $2
		  AND is_read = FALSE
	`, chatID, readerID)
	return err
}

// CountUnread counts messages in the chat addressed to readerID that have not
// been read. This counter is per chat, unlike the global notification counter.
func (r *MessageRepository) CountUnread(
	ctx context.Context,
	chatID int64,
	readerID int64,
) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM messages
		WHERE chat_id = $1
		  AND receiver_id = $2
		  AND is_read = FALSE
	`, chatID, readerID).Scan(&count)
	return count, err
}
