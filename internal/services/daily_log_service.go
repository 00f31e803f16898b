package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fitverse-app/FitVerseBack/internal/models"
	"github.com/fitverse-app/FitVerseBack/internal/repository"
)

type dailyLogNotifier interface {
	DailyLogSubmitted(ctx context.Context, coachID int64, clientName string, logID int64) error
	DailyLogReviewed(ctx context.Context, clientID int64, coachName string, logID int64) error
}

type activeCoachResolver interface {
	GetActiveCoachForClient(ctx context.Context, clientID int64) (int64, error)
}

type dailyLogStore interface {
	Create(ctx context.Context, input repository.CreateDailyLogInput) (*models.DailyLog, error)
	GetByID(ctx context.Context, id int64) (*models.DailyLog, error)
	ListByClient(ctx context.Context, clientID int64) ([]models.DailyLog, error)
	ListByCoach(ctx context.Context, coachID int64) ([]models.DailyLog, error)
	Review(ctx context.Context, logID int64, coachID int64, feedback string, rating int) (bool, error)
}

type DailyLogService struct {
	logRepo       dailyLogStore
	subscriptions activeCoachResolver
	userRepo      userReader
	notifier      dailyLogNotifier
	storage       StorageService
}

func NewDailyLogService(
	logRepo dailyLogStore,
	subscriptions activeCoachResolver,
	userRepo userReader,
	notifier dailyLogNotifier,
	storage StorageService,
) *DailyLogService {
	return &DailyLogService{
		logRepo:       logRepo,
		subscriptions: subscriptions,
		userRepo:      userRepo,
		notifier:      notifier,
		storage:       storage,
	}
}

type SubmitDailyLogInput struct {
	CurrentWeight float64
	Notes         *string
	Photo         multipart.File
	PhotoName     string
}

// SubmitLog records a daily log against the client's active coach, if any,
// and notifies that coach best effort. A client without a coach still logs.
func (s *DailyLogService) SubmitLog(
	ctx context.Context,
	clientID int64,
	input SubmitDailyLogInput,
) (*models.DailyLog, error) {
	if clientID <= 0 || input.CurrentWeight <= 0 {
		return nil, ErrInvalidInput
	}

	var coachID *int64
	id, err := s.subscriptions.GetActiveCoachForClient(ctx, clientID)
	if err == nil {
		coachID = &id
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var photoURL *string
	if input.Photo != nil && s.storage != nil {
		url, err := s.storage.UploadFile(ctx, input.Photo, photoObjectName(clientID, input.PhotoName), "daily-logs")
		if err != nil {
			return nil, fmt.Errorf("upload daily log photo: %w", err)
		}
		photoURL = &url
	}

	dailyLog, err := s.logRepo.Create(ctx, repository.CreateDailyLogInput{
		ClientID:      clientID,
		CoachID:       coachID,
		CurrentWeight: input.CurrentWeight,
		Notes:         input.Notes,
		PhotoURL:      photoURL,
	})
	if err != nil {
		return nil, err
	}

	if coachID != nil && s.notifier != nil {
		clientName := s.displayName(ctx, clientID, "A client")
		if err := s.notifier.DailyLogSubmitted(ctx, *coachID, clientName, dailyLog.ID); err != nil {
			log.Printf("notify coach %d of daily log %d: %v", *coachID, dailyLog.ID, err)
		}
	}

	return dailyLog, nil
}

// ReviewLog stores feedback and a 1-5 rating. Only the coach the log is
// assigned to may review it; a foreign log reads as not found.
func (s *DailyLogService) ReviewLog(
	ctx context.Context,
	coachID int64,
	logID int64,
	feedback string,
	rating int,
) (*models.DailyLog, error) {
	if coachID <= 0 || logID <= 0 {
		return nil, ErrInvalidInput
	}
	feedback = strings.TrimSpace(feedback)
	if feedback == "" || rating < 1 || rating > 5 {
		return nil, ErrInvalidInput
	}

	ok, err := s.logRepo.Review(ctx, logID, coachID, feedback, rating)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	dailyLog, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		coachName := s.displayName(ctx, coachID, "your coach")
		if err := s.notifier.DailyLogReviewed(ctx, dailyLog.ClientID, coachName, dailyLog.ID); err != nil {
			log.Printf("notify client %d of reviewed log %d: %v", dailyLog.ClientID, dailyLog.ID, err)
		}
	}

	return dailyLog, nil
}

func (s *DailyLogService) GetClientLogs(ctx context.Context, clientID int64) ([]models.DailyLog, error) {
	if clientID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.logRepo.ListByClient(ctx, clientID)
}

func (s *DailyLogService) GetCoachLogs(ctx context.Context, coachID int64) ([]models.DailyLog, error) {
	if coachID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.logRepo.ListByCoach(ctx, coachID)
}

func (s *DailyLogService) displayName(ctx context.Context, userID int64, fallback string) string {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user.FullName == "" {
		return fallback
	}
	return user.FullName
}

func photoObjectName(clientID int64, original string) string {
	ext := ""
	if dot := strings.LastIndex(original, "."); dot >= 0 {
		ext = original[dot:]
	}
	return fmt.Sprintf("%d-%d%s", clientID, time.Now().UTC().UnixNano(), ext)
}
