package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fitverse-app/FitVerseBack/internal/models"
	"github.com/fitverse-app/FitVerseBack/internal/services"
)

type notificationApplicationService interface {
	GetUserNotifications(ctx context.Context, userID int64) ([]models.Notification, error)
	GetRecentNotifications(ctx context.Context, userID int64, count int) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, userID int64) (int, error)
	MarkAsRead(ctx context.Context, id int64, userID int64) (bool, error)
	MarkAllAsRead(ctx context.Context, userID int64) (bool, error)
	Delete(ctx context.Context, id int64, userID int64) (bool, error)
}

type alertNotifier interface {
	SystemAlert(ctx context.Context, userID int64, message string, refID int64) error
	General(ctx context.Context, userID int64, message string, refID int64) error
}

type NotificationHandler struct {
	service  notificationApplicationService
	notifier alertNotifier
}

func NewNotificationHandler(service notificationApplicationService, notifier alertNotifier) *NotificationHandler {
	return &NotificationHandler{
		service:  service,
		notifier: notifier,
	}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	notifications, err := h.service.GetUserNotifications(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notifications"})
	}

	return c.JSON(fiber.Map{"data": viewsOf(notifications)})
}

func (h *NotificationHandler) Recent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	count := parsePositiveInt(c.Query("count"), defaultPageLimit)
	if count > maxPageLimit {
		count = maxPageLimit
	}
	notifications, err := h.service.GetRecentNotifications(c.Context(), userID, count)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notifications"})
	}

	return c.JSON(fiber.Map{"data": viewsOf(notifications)})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	count, err := h.service.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count notifications"})
	}

	return c.JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification id"})
	}

	ok, err := h.service.MarkAsRead(c.Context(), id, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notification"})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}

	count, err := h.service.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count notifications"})
	}

	return c.JSON(fiber.Map{"success": true, "unreadCount": count})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	ok, err := h.service.MarkAllAsRead(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notifications"})
	}

	return c.JSON(fiber.Map{"success": ok})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification id"})
	}

	ok, err := h.service.Delete(c.Context(), id, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete notification"})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}

	count, err := h.service.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count notifications"})
	}

	return c.JSON(fiber.Map{"success": true, "unreadCount": count})
}

type sendAlertRequest struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
	RefID   int64  `json:"ref_id"`
	General bool   `json:"general"`
}

// SendAlert lets an admin push a system alert or general notice to a user.
func (h *NotificationHandler) SendAlert(c *fiber.Ctx) error {
	if currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req sendAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID <= 0 || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	var err error
	if req.General {
		err = h.notifier.General(c.Context(), req.UserID, req.Message, req.RefID)
	} else {
		err = h.notifier.SystemAlert(c.Context(), req.UserID, req.Message, req.RefID)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send alert"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

func viewsOf(notifications []models.Notification) []models.NotificationView {
	now := time.Now().UTC()
	views := make([]models.NotificationView, 0, len(notifications))
	for i := range notifications {
		views = append(views, services.NotificationViewOf(&notifications[i], now))
	}
	return views
}
