package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

type stubPlanStore struct {
	createResult    *models.Plan
	createErr       error
	getResult       *models.Plan
	getErr          error
	listResult      []models.Plan
	completedResult bool
	completedErr    error
	feedbackResult  bool
	feedbackErr     error

	lastFeedback string
}

func (s *stubPlanStore) Create(_ context.Context, _, _ int64, _, _ string) (*models.Plan, error) {
	return s.createResult, s.createErr
}

func (s *stubPlanStore) GetByID(_ context.Context, _ int64) (*models.Plan, error) {
	return s.getResult, s.getErr
}

func (s *stubPlanStore) ListByClient(_ context.Context, _ int64) ([]models.Plan, error) {
	return s.listResult, nil
}

func (s *stubPlanStore) MarkCompleted(_ context.Context, _ int64, _ int64) (bool, error) {
	return s.completedResult, s.completedErr
}

func (s *stubPlanStore) SetFeedback(_ context.Context, _ int64, _ int64, feedback string) (bool, error) {
	s.lastFeedback = feedback
	return s.feedbackResult, s.feedbackErr
}

type recordingPlanNotifier struct {
	assigned  []int64
	completed []int64
	feedback  []int64
	lastName  string
}

func (n *recordingPlanNotifier) PlanAssigned(_ context.Context, clientID int64, _ string, _ int64) error {
	n.assigned = append(n.assigned, clientID)
	return nil
}

func (n *recordingPlanNotifier) WorkoutCompleted(_ context.Context, coachID int64, clientName string, _ int64) error {
	n.completed = append(n.completed, coachID)
	n.lastName = clientName
	return nil
}

func (n *recordingPlanNotifier) FeedbackReceived(_ context.Context, userID int64, fromName string, _ int64) error {
	n.feedback = append(n.feedback, userID)
	n.lastName = fromName
	return nil
}

func TestAssignPlanValidatesTypeAndClient(t *testing.T) {
	users := &stubUserReader{users: map[int64]*models.User{
		7: {ID: 7, Role: "client", FullName: "Milad"},
	}}
	service := NewPlanService(&stubPlanStore{}, users, nil)

	if _, err := service.AssignPlan(context.Background(), 9, 7, "cardio", "Week 1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown plan type, got %v", err)
	}
	if _, err := service.AssignPlan(context.Background(), 9, 7, models.PlanTypeExercise, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
	if _, err := service.AssignPlan(context.Background(), 9, 99, models.PlanTypeExercise, "Week 1"); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestAssignPlanNotifiesClient(t *testing.T) {
	users := &stubUserReader{users: map[int64]*models.User{
		7: {ID: 7, Role: "client", FullName: "Milad"},
	}}
	notifier := &recordingPlanNotifier{}
	store := &stubPlanStore{
		createResult: &models.Plan{ID: 12, ClientID: 7, CoachID: 9, PlanType: models.PlanTypeDiet, Title: "Cutting diet"},
	}
	service := NewPlanService(store, users, notifier)

	plan, err := service.AssignPlan(context.Background(), 9, 7, models.PlanTypeDiet, "Cutting diet")
	if err != nil {
		t.Fatalf("AssignPlan: %v", err)
	}
	if plan.ID != 12 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if len(notifier.assigned) != 1 || notifier.assigned[0] != 7 {
		t.Fatalf("expected client 7 notified, got %v", notifier.assigned)
	}
}

func TestCompleteWorkoutRejectsDietPlans(t *testing.T) {
	store := &stubPlanStore{
		getResult: &models.Plan{ID: 12, ClientID: 7, CoachID: 9, PlanType: models.PlanTypeDiet},
	}
	service := NewPlanService(store, &stubUserReader{}, nil)

	if _, err := service.CompleteWorkout(context.Background(), 7, 12); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for diet plan, got %v", err)
	}
}

func TestCompleteWorkoutNotifiesCoach(t *testing.T) {
	users := &stubUserReader{users: map[int64]*models.User{
		7: {ID: 7, Role: "client", FullName: "Milad"},
	}}
	notifier := &recordingPlanNotifier{}
	store := &stubPlanStore{
		getResult:       &models.Plan{ID: 12, ClientID: 7, CoachID: 9, PlanType: models.PlanTypeExercise},
		completedResult: true,
	}
	service := NewPlanService(store, users, notifier)

	if _, err := service.CompleteWorkout(context.Background(), 7, 12); err != nil {
		t.Fatalf("CompleteWorkout: %v", err)
	}
	if len(notifier.completed) != 1 || notifier.completed[0] != 9 {
		t.Fatalf("expected coach 9 notified, got %v", notifier.completed)
	}
	if notifier.lastName != "Milad" {
		t.Fatalf("expected client name in notification, got %q", notifier.lastName)
	}
}

func TestCompleteWorkoutReportsForeignPlanAsMissing(t *testing.T) {
	store := &stubPlanStore{
		getResult:       &models.Plan{ID: 12, ClientID: 8, CoachID: 9, PlanType: models.PlanTypeExercise},
		completedResult: false,
	}
	service := NewPlanService(store, &stubUserReader{}, nil)

	if _, err := service.CompleteWorkout(context.Background(), 7, 12); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeaveFeedbackNotifiesCoach(t *testing.T) {
	users := &stubUserReader{users: map[int64]*models.User{
		7: {ID: 7, Role: "client", FullName: "Milad"},
	}}
	notifier := &recordingPlanNotifier{}
	store := &stubPlanStore{
		getResult:      &models.Plan{ID: 12, ClientID: 7, CoachID: 9, PlanType: models.PlanTypeExercise},
		feedbackResult: true,
	}
	service := NewPlanService(store, users, notifier)

	if err := service.LeaveFeedback(context.Background(), 7, 12, "  too easy  "); err != nil {
		t.Fatalf("LeaveFeedback: %v", err)
	}
	if store.lastFeedback != "too easy" {
		t.Fatalf("expected trimmed feedback, got %q", store.lastFeedback)
	}
	if len(notifier.feedback) != 1 || notifier.feedback[0] != 9 {
		t.Fatalf("expected coach 9 notified, got %v", notifier.feedback)
	}
}

func TestLeaveFeedbackRejectsBlankFeedback(t *testing.T) {
	service := NewPlanService(&stubPlanStore{}, &stubUserReader{}, nil)

	if err := service.LeaveFeedback(context.Background(), 7, 12, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCompleteWorkoutReportsMissingPlan(t *testing.T) {
	service := NewPlanService(&stubPlanStore{getErr: pgx.ErrNoRows}, &stubUserReader{}, nil)

	if _, err := service.CompleteWorkout(context.Background(), 7, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
