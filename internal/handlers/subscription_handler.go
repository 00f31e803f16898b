package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fitverse-app/FitVerseBack/internal/models"
	"github.com/fitverse-app/FitVerseBack/internal/services"
)

type subscriptionApplicationService interface {
	AssignClient(ctx context.Context, coachID int64, clientID int64, packageName string, months int) (*models.Subscription, error)
	RecordPayment(ctx context.Context, subscriptionID int64, amount float64) (*models.Payment, error)
	NotifyExpiring(ctx context.Context, withinDays int) (int, error)
}

type SubscriptionHandler struct {
	service subscriptionApplicationService
}

func NewSubscriptionHandler(service subscriptionApplicationService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type assignClientRequest struct {
	ClientID    int64  `json:"client_id"`
	PackageName string `json:"package_name"`
	Months      int    `json:"months"`
}

func (h *SubscriptionHandler) AssignClient(c *fiber.Ctx) error {
	if currentRole(c) != "coach" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	coachID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req assignClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	subscription, err := h.service.AssignClient(c.Context(), coachID, req.ClientID, req.PackageName, req.Months)
	if err != nil {
		return mapSubscriptionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"subscription": subscription})
}

type recordPaymentRequest struct {
	Amount float64 `json:"amount"`
}

func (h *SubscriptionHandler) RecordPayment(c *fiber.Ctx) error {
	role := currentRole(c)
	if role != "client" && role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	subscriptionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subscription id"})
	}

	var req recordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	payment, err := h.service.RecordPayment(c.Context(), subscriptionID, req.Amount)
	if err != nil {
		return mapSubscriptionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payment": payment})
}

// NotifyExpiring is the admin-triggered expiry sweep; operations run it on a
// cron outside this service.
func (h *SubscriptionHandler) NotifyExpiring(c *fiber.Ctx) error {
	if currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	withinDays := parsePositiveInt(c.Query("within_days"), 7)
	notified, err := h.service.NotifyExpiring(c.Context(), withinDays)
	if err != nil {
		return mapSubscriptionError(c, err)
	}

	return c.JSON(fiber.Map{"notified": notified})
}

func mapSubscriptionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Client already subscribed to this coach"})
	case errors.Is(err, services.ErrClientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	case errors.Is(err, services.ErrCoachNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coach not found"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subscription not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process subscription request"})
	}
}
