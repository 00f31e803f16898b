package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitverse-app/FitVerseBack/internal/models"
	"github.com/fitverse-app/FitVerseBack/internal/repository"
)

type messageNotifier interface {
	MessageReceived(ctx context.Context, receiverID int64, senderName string, messageID int64) error
}

type chatPusher interface {
	PushChatMessage(userID int64, message *models.Message)
}

type MessageService struct {
	db          *pgxpool.Pool
	chatRepo    *repository.ChatRepository
	messageRepo *repository.MessageRepository
	userRepo    userReader
	notifier    messageNotifier
	publisher   chatPusher
}

type MessageDelivery struct {
	Chat    *models.Chat
	Message *models.Message
}

func NewMessageService(
	db *pgxpool.Pool,
	chatRepo *repository.ChatRepository,
	messageRepo *repository.MessageRepository,
	userRepo userReader,
	notifier messageNotifier,
	publisher chatPusher,
) *MessageService {
	return &MessageService{
		db:          db,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		publisher:   publisher,
	}
}

// SendMessage persists a message addressed to the other chat participant and
// then, best effort, records a Message notification for the receiver and
// pushes the message to their live sessions. A failed notification or push
// never rolls back the message.
func (s *MessageService) SendMessage(
	ctx context.Context,
	chatID int64,
	senderID int64,
	content string,
) (*MessageDelivery, error) {
	if chatID <= 0 || senderID <= 0 {
		return nil, ErrInvalidInput
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !chat.HasParticipant(senderID) {
		return nil, ErrForbidden
	}

	receiverID := chat.OtherParticipant(senderID)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txMessageRepo := repository.NewMessageRepository(tx)
	txChatRepo := repository.NewChatRepository(tx)

	message, err := txMessageRepo.Create(ctx, chatID, senderID, receiverID, trimmed)
	if err != nil {
		return nil, err
	}

	if err := txChatRepo.Touch(ctx, chatID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notifyReceiver(ctx, message)
	if s.publisher != nil {
		s.publisher.PushChatMessage(receiverID, message)
	}

	return &MessageDelivery{Chat: chat, Message: message}, nil
}

func (s *MessageService) notifyReceiver(ctx context.Context, message *models.Message) {
	if s.notifier == nil {
		return
	}

	senderName := "Someone"
	sender, err := s.userRepo.GetByID(ctx, message.SenderID)
	if err != nil {
		log.Printf("resolve sender %d for message notification: %v", message.SenderID, err)
	} else if sender.FullName != "" {
		senderName = sender.FullName
	}

	if err := s.notifier.MessageReceived(ctx, message.ReceiverID, senderName, message.ID); err != nil {
		log.Printf("notify receiver %d of message %d: %v", message.ReceiverID, message.ID, err)
	}
}

// GetChatMessages returns the thread oldest first. The caller must be a chat
// participant.
func (s *MessageService) GetChatMessages(
	ctx context.Context,
	chatID int64,
	userID int64,
) ([]models.Message, error) {
	if chatID <= 0 || userID <= 0 {
		return nil, ErrInvalidInput
	}

	if _, err := s.chatRepo.GetByIDForParticipant(ctx, chatID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.messageRepo.ListByChat(ctx, chatID)
}

// MarkMessagesAsRead flags every message in the chat addressed to userID and
// reports how many were unread beforehand.
func (s *MessageService) MarkMessagesAsRead(
	ctx context.Context,
	chatID int64,
	userID int64,
) (int, error) {
	if chatID <= 0 || userID <= 0 {
		return 0, ErrInvalidInput
	}

	if _, err := s.chatRepo.GetByIDForParticipant(ctx, chatID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	unread, err := s.messageRepo.CountUnread(ctx, chatID, userID)
	if err != nil {
		return 0, err
	}

	if err := s.messageRepo.MarkChatRead(ctx, chatID, userID); err != nil {
		return 0, err
	}

	return unread, nil
}

func (s *MessageService) GetLatestMessageInChat(ctx context.Context, chatID int64) (*models.Message, error) {
	if chatID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.messageRepo.Latest(ctx, chatID)
}

func FormatChatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}
