package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fitverse-app/FitVerseBack/internal/models"
	"github.com/fitverse-app/FitVerseBack/internal/services"
)

type dailyLogApplicationService interface {
	SubmitLog(ctx context.Context, clientID int64, input services.SubmitDailyLogInput) (*models.DailyLog, error)
	ReviewLog(ctx context.Context, coachID int64, logID int64, feedback string, rating int) (*models.DailyLog, error)
	GetClientLogs(ctx context.Context, clientID int64) ([]models.DailyLog, error)
	GetCoachLogs(ctx context.Context, coachID int64) ([]models.DailyLog, error)
}

type DailyLogHandler struct {
	service dailyLogApplicationService
}

func NewDailyLogHandler(service dailyLogApplicationService) *DailyLogHandler {
	return &DailyLogHandler{service: service}
}

// Submit accepts a multipart form so the log can carry a progress photo.
func (h *DailyLogHandler) Submit(c *fiber.Ctx) error {
	if currentRole(c) != "client" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	clientID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	weight, err := strconv.ParseFloat(c.FormValue("current_weight"), 64)
	if err != nil || weight <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid current weight"})
	}

	input := services.SubmitDailyLogInput{CurrentWeight: weight}
	if notes := c.FormValue("notes"); notes != "" {
		input.Notes = &notes
	}
	if header, err := c.FormFile("photo"); err == nil {
		photo, err := header.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid photo upload"})
		}
		defer photo.Close()
		input.Photo = photo
		input.PhotoName = header.Filename
	}

	dailyLog, err := h.service.SubmitLog(c.Context(), clientID, input)
	if err != nil {
		return mapDailyLogError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"log": dailyLog})
}

func (h *DailyLogHandler) ListMine(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var logs []models.DailyLog
	switch currentRole(c) {
	case "client":
		logs, err = h.service.GetClientLogs(c.Context(), userID)
	case "coach":
		logs, err = h.service.GetCoachLogs(c.Context(), userID)
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	if err != nil {
		return mapDailyLogError(c, err)
	}

	return c.JSON(fiber.Map{"logs": logs})
}

type reviewLogRequest struct {
	Feedback string `json:"feedback"`
	Rating   int    `json:"rating"`
}

func (h *DailyLogHandler) Review(c *fiber.Ctx) error {
	if currentRole(c) != "coach" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	coachID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	logID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid log id"})
	}

	var req reviewLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	dailyLog, err := h.service.ReviewLog(c.Context(), coachID, logID, req.Feedback, req.Rating)
	if err != nil {
		return mapDailyLogError(c, err)
	}

	return c.JSON(fiber.Map{"log": dailyLog})
}

func mapDailyLogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Log not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process daily log request"})
	}
}
