package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

type planNotifier interface {
	PlanAssigned(ctx context.Context, clientID int64, planType string, planID int64) error
	WorkoutCompleted(ctx context.Context, coachID int64, clientName string, workoutID int64) error
	FeedbackReceived(ctx context.Context, userID int64, fromName string, feedbackID int64) error
}

type planStore interface {
	Create(ctx context.Context, clientID, coachID int64, planType, title string) (*models.Plan, error)
	GetByID(ctx context.Context, id int64) (*models.Plan, error)
	ListByClient(ctx context.Context, clientID int64) ([]models.Plan, error)
	MarkCompleted(ctx context.Context, planID int64, clientID int64) (bool, error)
	SetFeedback(ctx context.Context, planID int64, clientID int64, feedback string) (bool, error)
}

type PlanService struct {
	planRepo planStore
	userRepo userReader
	notifier planNotifier
}

func NewPlanService(planRepo planStore, userRepo userReader, notifier planNotifier) *PlanService {
	return &PlanService{
		planRepo: planRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// AssignPlan creates an exercise or diet plan for a client and notifies them.
func (s *PlanService) AssignPlan(
	ctx context.Context,
	coachID int64,
	clientID int64,
	planType string,
	title string,
) (*models.Plan, error) {
	if coachID <= 0 || clientID <= 0 || strings.TrimSpace(title) == "" {
		return nil, ErrInvalidInput
	}
	if planType != models.PlanTypeExercise && planType != models.PlanTypeDiet {
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

	plan, err := s.planRepo.Create(ctx, clientID, coachID, planType, strings.TrimSpace(title))
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.PlanAssigned(ctx, clientID, planType, plan.ID); err != nil {
			log.Printf("notify client %d of plan %d: %v", clientID, plan.ID, err)
		}
	}

	return plan, nil
}

// CompleteWorkout marks an exercise plan done and tells the coach.
func (s *PlanService) CompleteWorkout(ctx context.Context, clientID int64, planID int64) (*models.Plan, error) {
	if clientID <= 0 || planID <= 0 {
		return nil, ErrInvalidInput
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if plan.PlanType != models.PlanTypeExercise {
		return nil, ErrInvalidInput
	}

	ok, err := s.planRepo.MarkCompleted(ctx, planID, clientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	if s.notifier != nil {
		clientName := s.clientName(ctx, clientID)
		if err := s.notifier.WorkoutCompleted(ctx, plan.CoachID, clientName, plan.ID); err != nil {
			log.Printf("notify coach %d of completed workout %d: %v", plan.CoachID, plan.ID, err)
		}
	}

	return s.planRepo.GetByID(ctx, planID)
}

// LeaveFeedback stores the client's feedback on their plan and notifies the
// coach who assigned it.
func (s *PlanService) LeaveFeedback(
	ctx context.Context,
	clientID int64,
	planID int64,
	feedback string,
) error {
	if clientID <= 0 || planID <= 0 {
		return ErrInvalidInput
	}
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return ErrInvalidInput
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	ok, err := s.planRepo.SetFeedback(ctx, planID, clientID, feedback)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	if s.notifier != nil {
		clientName := s.clientName(ctx, clientID)
		if err := s.notifier.FeedbackReceived(ctx, plan.CoachID, clientName, plan.ID); err != nil {
			log.Printf("notify coach %d of plan feedback %d: %v", plan.CoachID, plan.ID, err)
		}
	}

	return nil
}

func (s *PlanService) GetClientPlans(ctx context.Context, clientID int64) ([]models.Plan, error) {
	if clientID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.planRepo.ListByClient(ctx, clientID)
}

func (s *PlanService) clientName(ctx context.Context, clientID int64) string {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil || client.FullName == "" {
		return "A client"
	}
	return client.FullName
}
