package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitverse-app/FitVerseBack/internal/models"
	"github.com/fitverse-app/FitVerseBack/pkg/utils"
)

const (
	defaultRecentCount  = 10
	unreadCountCacheTTL = 5 * time.Minute
)

type notificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByReceiver(ctx context.Context, receiverID int64, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, receiverID int64) (int, error)
	MarkRead(ctx context.Context, id int64, receiverID int64) (bool, error)
	MarkAllRead(ctx context.Context, receiverID int64) error
	Delete(ctx context.Context, id int64, receiverID int64) (bool, error)
}

type NotificationService struct {
	store notificationStore
	cache *redis.Client
}

// NewNotificationService builds the service. cache may be nil; the database
// is always authoritative for unread counts.
func NewNotificationService(store notificationStore, cache *redis.Client) *NotificationService {
	return &NotificationService{store: store, cache: cache}
}

func (s *NotificationService) Create(
	ctx context.Context,
	receiverID int64,
	content string,
	notificationType models.NotificationType,
	refID int64,
) (*models.Notification, error) {
	if receiverID <= 0 || content == "" {
		return nil, ErrInvalidInput
	}

	notification := &models.Notification{
		ReceiverID: receiverID,
		Content:    content,
		Type:       notificationType,
		RefID:      refID,
	}
	if err := s.store.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	s.invalidateUnreadCount(ctx, receiverID)
	return notification, nil
}

func (s *NotificationService) GetUserNotifications(
	ctx context.Context,
	userID int64,
) ([]models.Notification, error) {
	return s.store.ListByReceiver(ctx, userID, 0)
}

func (s *NotificationService) GetRecentNotifications(
	ctx context.Context,
	userID int64,
	count int,
) ([]models.Notification, error) {
	if count <= 0 {
		count = defaultRecentCount
	}
	return s.store.ListByReceiver(ctx, userID, count)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, unreadCountKey(userID)).Result(); err == nil {
			if count, err := strconv.Atoi(cached); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, unreadCountKey(userID), count, unreadCountCacheTTL).Err(); err != nil {
			log.Printf("cache unread count for user %d: %v", userID, err)
		}
	}

	return count, nil
}

// MarkAsRead flags a single notification. It reports false, without error,
// when the notification does not exist or belongs to another user; marking an
// already-read notification succeeds.
func (s *NotificationService) MarkAsRead(ctx context.Context, id int64, userID int64) (bool, error) {
	ok, err := s.store.MarkRead(ctx, id, userID)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	if ok {
		s.invalidateUnreadCount(ctx, userID)
	}
	return ok, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID int64) (bool, error) {
	if err := s.store.MarkAllRead(ctx, userID); err != nil {
		return false, fmt.Errorf("mark all notifications read: %w", err)
	}
	s.invalidateUnreadCount(ctx, userID)
	return true, nil
}

func (s *NotificationService) Delete(ctx context.Context, id int64, userID int64) (bool, error) {
	ok, err := s.store.Delete(ctx, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete notification: %w", err)
	}
	if ok {
		s.invalidateUnreadCount(ctx, userID)
	}
	return ok, nil
}

func (s *NotificationService) invalidateUnreadCount(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		log.Printf("invalidate unread count for user %d: %v", userID, err)
	}
}

func unreadCountKey(userID int64) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

// NotificationViewOf renders the client-facing payload, with TimeAgo derived
// from now rather than stored.
func NotificationViewOf(notification *models.Notification, now time.Time) models.NotificationView {
	return models.NotificationView{
		ID:        notification.ID,
		Content:   notification.Content,
		CreatedAt: notification.CreatedAt.UTC().Format("2006-01-02 15:04"),
		RefID:     notification.RefID,
		Type:      int(notification.Type),
		IsRead:    notification.IsRead,
		TimeAgo:   utils.TimeAgo(notification.CreatedAt, now),
	}
}
