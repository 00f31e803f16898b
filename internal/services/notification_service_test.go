package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fitverse-app/FitVerseBack/internal/models"
)

type stubNotificationStore struct {
	createErr    error
	listResult   []models.Notification
	listErr      error
	unreadCount  int
	unreadErr    error
	markResult   bool
	markErr      error
	markAllErr   error
	deleteResult bool
	deleteErr    error

	lastCreated  *models.Notification
	lastLimit    int
	lastMarkID   int64
	lastMarkUser int64
	markCalls    int
	nextID       int64
}

func (s *stubNotificationStore) Create(_ context.Context, notification *models.Notification) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	notification.ID = s.nextID
	notification.CreatedAt = time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)
	s.lastCreated = notification
	return nil
}

func (s *stubNotificationStore) ListByReceiver(_ context.Context, _ int64, limit int) ([]models.Notification, error) {
	s.lastLimit = limit
	return s.listResult, s.listErr
}

func (s *stubNotificationStore) CountUnread(_ context.Context, _ int64) (int, error) {
	return s.unreadCount, s.unreadErr
}

func (s *stubNotificationStore) MarkRead(_ context.Context, id int64, receiverID int64) (bool, error) {
	s.markCalls++
	s.lastMarkID = id
	s.lastMarkUser = receiverID
	return s.markResult, s.markErr
}

func (s *stubNotificationStore) MarkAllRead(_ context.Context, _ int64) error {
	return s.markAllErr
}

func (s *stubNotificationStore) Delete(_ context.Context, _ int64, _ int64) (bool, error) {
	return s.deleteResult, s.deleteErr
}

func TestCreateNotificationRejectsBadInput(t *testing.T) {
	service := NewNotificationService(&stubNotificationStore{}, nil)

	if _, err := service.Create(context.Background(), 0, "hello", models.NotificationGeneral, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero receiver, got %v", err)
	}
	if _, err := service.Create(context.Background(), 5, "", models.NotificationGeneral, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty content, got %v", err)
	}
}

func TestCreateNotificationPersistsUnread(t *testing.T) {
	store := &stubNotificationStore{}
	service := NewNotificationService(store, nil)

	notification, err := service.Create(context.Background(), 7, "New message from Sara", models.NotificationMessage, 31)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if notification.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if notification.IsRead {
		t.Fatal("new notification must start unread")
	}
	if store.lastCreated.ReceiverID != 7 || store.lastCreated.RefID != 31 {
		t.Fatalf("unexpected persisted notification: %+v", store.lastCreated)
	}
	if store.lastCreated.Type != models.NotificationMessage {
		t.Fatalf("unexpected type: %d", store.lastCreated.Type)
	}
}

func TestGetRecentNotificationsDefaultsCount(t *testing.T) {
	store := &stubNotificationStore{}
	service := NewNotificationService(store, nil)

	if _, err := service.GetRecentNotifications(context.Background(), 7, 0); err != nil {
		t.Fatalf("GetRecentNotifications: %v", err)
	}
	if store.lastLimit != 10 {
		t.Fatalf("expected default limit 10, got %d", store.lastLimit)
	}

	if _, err := service.GetRecentNotifications(context.Background(), 7, 3); err != nil {
		t.Fatalf("GetRecentNotifications: %v", err)
	}
	if store.lastLimit != 3 {
		t.Fatalf("expected limit 3, got %d", store.lastLimit)
	}
}

func TestGetUserNotificationsListsAll(t *testing.T) {
	store := &stubNotificationStore{listResult: []models.Notification{{ID: 1}, {ID: 2}}}
	service := NewNotificationService(store, nil)

	notifications, err := service.GetUserNotifications(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetUserNotifications: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
	if store.lastLimit != 0 {
		t.Fatalf("expected unbounded list, got limit %d", store.lastLimit)
	}
}

func TestMarkAsReadReportsMiss(t *testing.T) {
	store := &stubNotificationStore{markResult: false}
	service := NewNotificationService(store, nil)

	ok, err := service.MarkAsRead(context.Background(), 99, 7)
	if err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	if ok {
		t.Fatal("expected miss for foreign or missing notification")
	}
	if store.lastMarkID != 99 || store.lastMarkUser != 7 {
		t.Fatalf("expected ownership-scoped update, got id=%d user=%d", store.lastMarkID, store.lastMarkUser)
	}
}

func TestMarkAsReadSucceeds(t *testing.T) {
	store := &stubNotificationStore{markResult: true}
	service := NewNotificationService(store, nil)

	ok, err := service.MarkAsRead(context.Background(), 4, 7)
	if err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	if !ok {
		t.Fatal("expected success")
	}
}

func TestMarkAsReadTwiceStillReportsSuccess(t *testing.T) {
	// The store matches on id and receiver without an unread guard, so an
	// already-read notification still counts as a hit.
	store := &stubNotificationStore{markResult: true}
	service := NewNotificationService(store, nil)

	for i := 0; i < 2; i++ {
		ok, err := service.MarkAsRead(context.Background(), 4, 7)
		if err != nil {
			t.Fatalf("MarkAsRead call %d: %v", i+1, err)
		}
		if !ok {
			t.Fatalf("MarkAsRead call %d reported a miss", i+1)
		}
	}
	if store.markCalls != 2 {
		t.Fatalf("expected both calls to reach the store, got %d", store.markCalls)
	}
}

func TestDeleteReportsResult(t *testing.T) {
	service := NewNotificationService(&stubNotificationStore{deleteResult: true}, nil)
	ok, err := service.Delete(context.Background(), 4, 7)
	if err != nil || !ok {
		t.Fatalf("expected delete success, got ok=%v err=%v", ok, err)
	}

	service = NewNotificationService(&stubNotificationStore{deleteResult: false}, nil)
	ok, err = service.Delete(context.Background(), 4, 7)
	if err != nil || ok {
		t.Fatalf("expected delete miss, got ok=%v err=%v", ok, err)
	}
}

func TestGetUnreadCountFallsBackToStore(t *testing.T) {
	store := &stubNotificationStore{unreadCount: 6}
	service := NewNotificationService(store, nil)

	count, err := service.GetUnreadCount(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetUnreadCount: %v", err)
	}
	if count != 6 {
		t.Fatalf("expected 6, got %d", count)
	}
}

func TestNotificationViewOfRendersTimestamps(t *testing.T) {
	created := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)
	now := created.Add(2 * time.Hour)

	view := NotificationViewOf(&models.Notification{
		ID:         12,
		Content:    "Payment of $49.99 received successfully",
		Type:       models.NotificationPaymentReceived,
		RefID:      88,
		IsRead:     false,
		CreatedAt:  created,
		ReceiverID: 7,
	}, now)

	if view.CreatedAt != "2026-04-02 10:30" {
		t.Fatalf("unexpected createdAt: %q", view.CreatedAt)
	}
	if view.TimeAgo != "2h ago" {
		t.Fatalf("unexpected timeAgo: %q", view.TimeAgo)
	}
	if view.Type != int(models.NotificationPaymentReceived) || view.RefID != 88 {
		t.Fatalf("unexpected view: %+v", view)
	}
}
