package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fitverse-app/FitVerseBack/internal/models"
	"github.com/fitverse-app/FitVerseBack/internal/services"
)

type planApplicationService interface {
	AssignPlan(ctx context.Context, coachID int64, clientID int64, planType string, title string) (*models.Plan, error)
	CompleteWorkout(ctx context.Context, clientID int64, planID int64) (*models.Plan, error)
	LeaveFeedback(ctx context.Context, clientID int64, planID int64, feedback string) error
	GetClientPlans(ctx context.Context, clientID int64) ([]models.Plan, error)
}

type PlanHandler struct {
	service planApplicationService
}

func NewPlanHandler(service planApplicationService) *PlanHandler {
	return &PlanHandler{service: service}
}

type assignPlanRequest struct {
	ClientID int64  `json:"client_id"`
	PlanType string `json:"plan_type"`
	Title    string `json:"title"`
}

func (h *PlanHandler) Assign(c *fiber.Ctx) error {
	if currentRole(c) != "coach" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	coachID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req assignPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	plan, err := h.service.AssignPlan(c.Context(), coachID, req.ClientID, req.PlanType, req.Title)
	if err != nil {
		return mapPlanError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"plan": plan})
}

func (h *PlanHandler) ListMine(c *fiber.Ctx) error {
	if currentRole(c) != "client" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	clientID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	plans, err := h.service.GetClientPlans(c.Context(), clientID)
	if err != nil {
		return mapPlanError(c, err)
	}

	return c.JSON(fiber.Map{"plans": plans})
}

func (h *PlanHandler) CompleteWorkout(c *fiber.Ctx) error {
	if currentRole(c) != "client" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	clientID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	planID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plan id"})
	}

	plan, err := h.service.CompleteWorkout(c.Context(), clientID, planID)
	if err != nil {
		return mapPlanError(c, err)
	}

	return c.JSON(fiber.Map{"plan": plan})
}

type planFeedbackRequest struct {
	Feedback string `json:"feedback"`
}

func (h *PlanHandler) LeaveFeedback(c *fiber.Ctx) error {
	if currentRole(c) != "client" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	clientID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	planID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plan id"})
	}

	var req planFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.LeaveFeedback(c.Context(), clientID, planID, req.Feedback); err != nil {
		return mapPlanError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

func mapPlanError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrClientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plan not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process plan request"})
	}
}
