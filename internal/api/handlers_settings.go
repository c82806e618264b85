package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kalender/internal/services"
)

type settingsRequest struct {
	AverageCycleLength  int    `json:"average_cycle_length"`
	AveragePeriodLength int    `json:"average_period_length"`
	RemindersEnabled    bool   `json:"reminders_enabled"`
	DaysBeforePeriod    int    `json:"days_before_period"`
	MidIntervalToggle   string `json:"mid_interval_toggle"`
}

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.settings.Load(c.UserContext())
	if err != nil {
		handler.logger.WithError(err).Error("load settings failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	return c.JSON(settings)
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	var request settingsRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	settings, err := handler.settings.Update(c.UserContext(), services.SettingsInput{
		AverageCycleLength:  request.AverageCycleLength,
		AveragePeriodLength: request.AveragePeriodLength,
		RemindersEnabled:    request.RemindersEnabled,
		DaysBeforePeriod:    request.DaysBeforePeriod,
		MidIntervalToggle:   request.MidIntervalToggle,
	})
	if err != nil {
		if message, ok := settingsErrorMessage(err); ok {
			return apiError(c, fiber.StatusBadRequest, message)
		}
		handler.logger.WithError(err).Error("update settings failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to update settings")
	}
	return c.JSON(settings)
}

func settingsErrorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, services.ErrSettingsCycleLengthOutOfRange):
		return "cycle length must be between 15 and 90", true
	case errors.Is(err, services.ErrSettingsPeriodLengthOutOfRange):
		return "period length must be between 1 and 14", true
	case errors.Is(err, services.ErrSettingsPeriodLengthIncompatible):
		return "period length must be shorter than cycle length", true
	case errors.Is(err, services.ErrSettingsReminderDaysOutOfRange):
		return "reminder days must be between 1 and 7", true
	case errors.Is(err, services.ErrSettingsMidIntervalPolicyInvalid):
		return "mid_interval_toggle must be remove or split", true
	default:
		return "", false
	}
}
