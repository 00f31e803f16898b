package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fitverse-app/FitVerseBack/internal/models"
	"github.com/fitverse-app/FitVerseBack/internal/repository"
)

type subscriptionNotifier interface {
	NewClient(ctx context.Context, coachID int64, clientName string, clientID int64) error
	NewCoach(ctx context.Context, clientID int64, coachName string, coachID int64) error
	PaymentReceived(ctx context.Context, userID int64, amount float64, paymentID int64) error
	SubscriptionExpiring(ctx context.Context, userID int64, daysLeft int, subscriptionID int64) error
}

type SubscriptionService struct {
	subscriptionRepo *repository.SubscriptionRepository
	paymentRepo      *repository.PaymentRepository
	userRepo         userReader
	notifier         subscriptionNotifier
}

func NewSubscriptionService(
	subscriptionRepo *repository.SubscriptionRepository,
	paymentRepo *repository.PaymentRepository,
	userRepo userReader,
	notifier subscriptionNotifier,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		paymentRepo:      paymentRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

// AssignClient creates an active subscription binding a client to a coach and
// notifies both sides best effort.
func (s *SubscriptionService) AssignClient(
	ctx context.Context,
	coachID int64,
	clientID int64,
	packageName string,
	months int,
) (*models.Subscription, error) {
	if coachID <= 0 || clientID <= 0 || coachID == clientID || packageName == "" || months <= 0 {
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

	if _, err := s.subscriptionRepo.GetActiveForPair(ctx, clientID, coachID); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	now := time.Now().UTC()
	subscription, err := s.subscriptionRepo.Create(ctx, repository.CreateSubscriptionInput{
		ClientID:    clientID,
		CoachID:     coachID,
		PackageName: packageName,
		StartsAt:    now,
		ExpiresAt:   now.AddDate(0, months, 0),
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NewClient(ctx, coachID, displayNameOf(client), clientID); err != nil {
			log.Printf("notify coach %d of new client %d: %v", coachID, clientID, err)
		}
		if err := s.notifier.NewCoach(ctx, clientID, displayNameOf(coach), coachID); err != nil {
			log.Printf("notify client %d of new coach %d: %v", clientID, coachID, err)
		}
	}

	return subscription, nil
}

// RecordPayment stores a completed payment against a subscription and
// notifies the paying client.
func (s *SubscriptionService) RecordPayment(
	ctx context.Context,
	subscriptionID int64,
	amount float64,
) (*models.Payment, error) {
	if subscriptionID <= 0 || amount <= 0 {
		return nil, ErrInvalidInput
	}

	subscription, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	payment, err := s.paymentRepo.Create(ctx, repository.CreatePaymentInput{
		SubscriptionID: subscription.ID,
		ClientID:       subscription.ClientID,
		CoachID:        subscription.CoachID,
		Amount:         amount,
		Status:         "completed",
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.PaymentReceived(ctx, subscription.ClientID, amount, payment.ID); err != nil {
			log.Printf("notify client %d of payment %d: %v", subscription.ClientID, payment.ID, err)
		}
	}

	return payment, nil
}

// NotifyExpiring sweeps active subscriptions lapsing within the window and
// sends each client an expiry warning. Invoked by an admin endpoint; the
// service keeps no scheduler.
func (s *SubscriptionService) NotifyExpiring(ctx context.Context, withinDays int) (int, error) {
	if withinDays <= 0 {
		return 0, ErrInvalidInput
	}

	expiring, err := s.subscriptionRepo.ListExpiringWithin(ctx, time.Duration(withinDays)*24*time.Hour)
	if err != nil {
		return 0, err
	}

	notified := 0
	now := time.Now().UTC()
	for _, subscription := range expiring {
		daysLeft := int(subscription.ExpiresAt.Sub(now).Hours() / 24)
		if daysLeft < 1 {
			daysLeft = 1
		}
		if err := s.notifier.SubscriptionExpiring(ctx, subscription.ClientID, daysLeft, subscription.ID); err != nil {
			log.Printf("notify client %d of expiring subscription %d: %v", subscription.ClientID, subscription.ID, err)
			continue
		}
		notified++
	}

	return notified, nil
}

func displayNameOf(user *models.User) string {
	if user.FullName != "" {
		return user.FullName
	}
	return user.Email
}
