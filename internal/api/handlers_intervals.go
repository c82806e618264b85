package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kalender/internal/models"
	"github.com/terraincognita07/kalender/internal/services"
)

type intervalResponse struct {
	ID        string  `json:"id"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

func newIntervalResponses(intervals []models.CycleInterval) []intervalResponse {
	responses := make([]intervalResponse, 0, len(intervals))
	for _, interval := range intervals {
		responses = append(responses, intervalResponse{
			ID:        interval.ID,
			StartDate: services.FormatDay(interval.StartDate),
			EndDate:   formatDayPointer(interval.EndDate),
		})
	}
	return responses
}

func (handler *Handler) ListIntervals(c *fiber.Ctx) error {
	intervals, err := handler.periods.ListIntervals(c.UserContext())
	if err != nil {
		handler.logger.WithError(err).Error("list intervals failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load intervals")
	}
	return c.JSON(fiber.Map{"intervals": newIntervalResponses(intervals)})
}

func (handler *Handler) ToggleDay(c *fiber.Ctx) error {
	day, err := services.ParseDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	intervals, err := handler.periods.ToggleDay(c.UserContext(), day)
	if err != nil {
		handler.logger.WithError(err).Error("toggle day failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to toggle day")
	}

	overview, err := handler.periods.Overview(c.UserContext())
	if err != nil {
		handler.logger.WithError(err).Error("overview after toggle failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to calculate cycle")
	}

	return c.JSON(fiber.Map{
		"intervals":    newIntervalResponses(intervals),
		"calculations": newCalculationsResponse(overview),
	})
}
