package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fitverse-app/FitVerseBack/internal/models"
	"github.com/fitverse-app/FitVerseBack/internal/repository"
)

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type ChatService struct {
	chatRepo *repository.ChatRepository
	userRepo userReader
}

func NewChatService(chatRepo *repository.ChatRepository, userRepo userReader) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

// FindOrCreateChat returns the single chat for a client/coach pair, creating
// it on first use. Concurrent calls for the same pair converge on one row via
// the unique constraint behind ChatRepository.CreateOrGet.
func (s *ChatService) FindOrCreateChat(
	ctx context.Context,
	clientID int64,
	coachID int64,
) (*models.Chat, error) {
	if clientID <= 0 || coachID <= 0 || clientID == coachID {
		return nil, ErrInvalidInput
	}

	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.Role != "client" {
		return nil, ErrInvalidInput
	}

	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	if coach.Role != "coach" {
		return nil, ErrInvalidInput
	}

	return s.chatRepo.CreateOrGet(ctx, clientID, coachID)
}

// GetUserChats lists every chat the user takes part in, each with its latest
// message and the unread count of messages addressed to that user.
func (s *ChatService) GetUserChats(ctx context.Context, userID int64) ([]models.ChatSummary, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.chatRepo.ListForParticipant(ctx, userID)
}
