package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

type stubNotificationCreator struct {
	createErr error
	unread    int
	unreadErr error

	lastReceiver int64
	lastContent  string
	lastType     models.NotificationType
	lastRefID    int64
}

func (s *stubNotificationCreator) Create(_ context.Context, receiverID int64, content string, notificationType models.NotificationType, refID int64) (*models.Notification, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.lastReceiver = receiverID
	s.lastContent = content
	s.lastType = notificationType
	s.lastRefID = refID
	return &models.Notification{
		ID:         41,
		ReceiverID: receiverID,
		Content:    content,
		Type:       notificationType,
		RefID:      refID,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (s *stubNotificationCreator) GetUnreadCount(_ context.Context, _ int64) (int, error) {
	return s.unread, s.unreadErr
}

type stubNotificationPusher struct {
	notifications []models.NotificationView
	counts        []int
	lastUserID    int64
}

func (s *stubNotificationPusher) PushNotification(userID int64, view models.NotificationView) {
	s.lastUserID = userID
	s.notifications = append(s.notifications, view)
}

func (s *stubNotificationPusher) PushUnreadCount(userID int64, count int) {
	s.lastUserID = userID
	s.counts = append(s.counts, count)
}

func TestMessageReceivedPersistsThenPushes(t *testing.T) {
	creator := &stubNotificationCreator{unread: 3}
	pusher := &stubNotificationPusher{}
	notifier := NewNotifier(creator, pusher)

	if err := notifier.MessageReceived(context.Background(), 7, "Sara", 120); err != nil {
		t.Fatalf("MessageReceived: %v", err)
	}

	if creator.lastContent != "New message from Sara" {
		t.Fatalf("unexpected content: %q", creator.lastContent)
	}
	if creator.lastType != models.NotificationMessage || creator.lastRefID != 120 {
		t.Fatalf("unexpected type/ref: %d %d", creator.lastType, creator.lastRefID)
	}
	if len(pusher.notifications) != 1 || pusher.lastUserID != 7 {
		t.Fatalf("expected one pushed notification to user 7, got %d to %d", len(pusher.notifications), pusher.lastUserID)
	}
	if len(pusher.counts) != 1 || pusher.counts[0] != 3 {
		t.Fatalf("expected pushed unread count 3, got %v", pusher.counts)
	}
}

func TestTriggerFailsWhenPersistFails(t *testing.T) {
	creator := &stubNotificationCreator{createErr: errors.New("db down")}
	pusher := &stubNotificationPusher{}
	notifier := NewNotifier(creator, pusher)

	if err := notifier.PaymentReceived(context.Background(), 7, 49.99, 55); err == nil {
		t.Fatal("expected error when persist fails")
	}
	if len(pusher.notifications) != 0 {
		t.Fatal("nothing may be pushed when the record was not stored")
	}
}

func TestTriggerSucceedsWhenCountLookupFails(t *testing.T) {
	creator := &stubNotificationCreator{unreadErr: errors.New("redis down")}
	pusher := &stubNotificationPusher{}
	notifier := NewNotifier(creator, pusher)

	if err := notifier.DailyLogSubmitted(context.Background(), 9, "Milad", 4); err != nil {
		t.Fatalf("DailyLogSubmitted: %v", err)
	}
	if len(pusher.notifications) != 1 {
		t.Fatal("notification push must still happen")
	}
	if len(pusher.counts) != 0 {
		t.Fatal("no unread count push when the lookup failed")
	}
}

func TestTriggerContentTemplates(t *testing.T) {
	tests := []struct {
		name    string
		fire    func(n *Notifier) error
		content string
		typ     models.NotificationType
	}{
		{
			name:    "new client",
			fire:    func(n *Notifier) error { return n.NewClient(context.Background(), 9, "Milad", 7) },
			content: "New client assigned: Milad",
			typ:     models.NotificationNewClient,
		},
		{
			name:    "new coach",
			fire:    func(n *Notifier) error { return n.NewCoach(context.Background(), 7, "Sara", 9) },
			content: "You have been assigned to coach Sara",
			typ:     models.NotificationNewCoach,
		},
		{
			name:    "plan assigned",
			fire:    func(n *Notifier) error { return n.PlanAssigned(context.Background(), 7, "exercise", 12) },
			content: "New exercise plan assigned to you",
			typ:     models.NotificationPlanAssigned,
		},
		{
			name:    "payment received",
			fire:    func(n *Notifier) error { return n.PaymentReceived(context.Background(), 9, 150, 33) },
			content: "Payment of $150.00 received successfully",
			typ:     models.NotificationPaymentReceived,
		},
		{
			name:    "subscription expiring",
			fire:    func(n *Notifier) error { return n.SubscriptionExpiring(context.Background(), 7, 3, 21) },
			content: "Your subscription expires in 3 days",
			typ:     models.NotificationSubscriptionExpiring,
		},
		{
			name:    "workout completed",
			fire:    func(n *Notifier) error { return n.WorkoutCompleted(context.Background(), 9, "Milad", 12) },
			content: "Milad completed a workout",
			typ:     models.NotificationWorkoutCompleted,
		},
		{
			name:    "feedback received",
			fire:    func(n *Notifier) error { return n.FeedbackReceived(context.Background(), 9, "Milad", 12) },
			content: "New feedback from Milad",
			typ:     models.NotificationFeedbackReceived,
		},
		{
			name:    "daily log reviewed",
			fire:    func(n *Notifier) error { return n.DailyLogReviewed(context.Background(), 7, "Sara", 4) },
			content: "Your Daily Log has been reviewed by Sara",
			typ:     models.NotificationDailyLogReviewed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &stubNotificationCreator{}
			notifier := NewNotifier(creator, &stubNotificationPusher{})

			if err := tt.fire(notifier); err != nil {
				t.Fatalf("trigger: %v", err)
			}
			if creator.lastContent != tt.content {
				t.Fatalf("expected %q, got %q", tt.content, creator.lastContent)
			}
			if creator.lastType != tt.typ {
				t.Fatalf("expected type %d, got %d", tt.typ, creator.lastType)
			}
		})
	}
}
