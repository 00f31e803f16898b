package repository

import (
	"context"
	"database/sql"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

type ChatRepository struct {
	db DBTX
}

func NewChatRepository(db DBTX) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateOrGet returns the unique chat for a (client, coach) pair, creating it
// when absent. The unique constraint on (client_id, coach_id) makes concurrent
// calls converge on the same row in a single round trip.
func (r *ChatRepository) CreateOrGet(
	ctx context.Context,
	clientID int64,
	coachID int64,
) (*models.Chat, error) {
	query := `
		INSERT INTO chats (client_id, coach_id)
		VALUES ($1, $2)
		ON CONFLICT (client_id, coach_id)
		DO UPDATE SET updated_at = chats.updated_at
		RETURNING id, client_id, coach_id, created_at, updated_at
	`

	var chat models.Chat
	err := r.db.QueryRow(ctx, query, clientID, coachID).Scan(
		&chat.ID,
		&chat.ClientID,
		&chat.CoachID,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &chat, nil
}

func (r *ChatRepository) GetByID(ctx context.Context, chatID int64) (*models.Chat, error) {
	query := `
		SELECT id, client_id, coach_id, created_at, updated_at
		FROM chats
		WHERE id = $1
	`

	var chat models.Chat
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&chat.ID,
		&chat.ClientID,
		&chat.CoachID,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &chat, nil
}

func (r *ChatRepository) GetByIDForParticipant(
	ctx context.Context,
	chatID int64,
	participantID int64,
) (*models.Chat, error) {
	query := `
		SELECT id, client_id, coach_id, created_at, updated_at
		FROM chats
		WHERE id = $1 AND (client_id = $2 OR coach_id = $2)
	`

	var chat models.Chat
	err := r.db.QueryRow(ctx, query, chatID, participantID).Scan(
		&chat.ID,
		&chat.ClientID,
		&chat.CoachID,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &chat, nil
}

// ListForParticipant returns every chat the user takes part in, together with
// the latest message and the count of unread messages addressed to that user.
func (r *ChatRepository) ListForParticipant(
	ctx context.Context,
	participantID int64,
) ([]models.ChatSummary, error) {
	query := `
		SELECT
			c.id,
			c.client_id,
			c.coach_id,
			c.created_at,
			c.updated_at,
			lm.id,
			lm.chat_id,
			lm.sender_id,
			lm.receiver_id,
			lm.content,
			lm.is_read,
			lm.sent_at,
			COALESCE(uc.unread_count, 0)
		FROM chats c
		LEFT JOIN LATERAL (
			SELECT id, chat_id, sender_id, receiver_id, content, is_read, sent_at
			FROM messages
			WHERE chat_id = c.id
			ORDER BY sent_at DESC, id DESC
			LIMIT 1
		) lm ON TRUE
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS unread_count
			FROM messages
			WHERE chat_id = c.id
			  AND receiver_id = $1
			  AND is_read = FALSE
		) uc ON TRUE
		WHERE c.client_id = $1 OR c.coach_id = $1
		ORDER BY COALESCE(lm.sent_at, c.updated_at, c.created_at) DESC, c.id DESC
	`

	rows, err := r.db.Query(ctx, query, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ChatSummary, 0)
	for rows.Next() {
		var summary models.ChatSummary
		var messageID sql.NullInt64
		var messageChatID sql.NullInt64
		var messageSenderID sql.NullInt64
		var messageReceiverID sql.NullInt64
		var messageContent sql.NullString
		var messageIsRead sql.NullBool
		var messageSentAt sql.NullTime

		if err := rows.Scan(
			&summary.ID,
			&summary.ClientID,
			&summary.CoachID,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&messageID,
			&messageChatID,
			&messageSenderID,
			&messageReceiverID,
			&messageContent,
			&messageIsRead,
			&messageSentAt,
			&summary.UnreadCount,
		); err != nil {
			return nil, err
		}

		if messageID.Valid {
			summary.LastMessage = &models.Message{
				ID:         messageID.Int64,
				ChatID:     messageChatID.Int64,
				SenderID:   messageSenderID.Int64,
				ReceiverID: messageReceiverID.Int64,
				Content:    messageContent.String,
				IsRead:     messageIsRead.Bool,
				SentAt:     messageSentAt.Time,
			}
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *ChatRepository) Touch(ctx context.Context, chatID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE chats
		SET updated_at = NOW()
		WHERE id = $1
	`, chatID)
	return err
}
