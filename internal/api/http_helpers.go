package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kalender/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func formatDayPointer(day *time.Time) *string {
	if day == nil {
		return nil
	}
	formatted := services.FormatDay(*day)
	return &formatted
}

func formatDays(days []time.Time) []string {
	formatted := make([]string, 0, len(days))
	for _, day := range days {
		formatted = append(formatted, services.FormatDay(day))
	}
	return formatted
}
