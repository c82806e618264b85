package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kalender/internal/services"
)

type calculationsResponse struct {
	Today                   string   `json:"today"`
	AverageCycleLength      int      `json:"average_cycle_length"`
	AveragePeriodLength     int      `json:"average_period_length"`
	PredictedNextCycleStart *string  `json:"predicted_next_cycle_start"`
	PredictedFutureDays     []string `json:"predicted_future_days"`
	OvulationDayEstimates   []string `json:"ovulation_day_estimates"`
	FertileWindow           []string `json:"fertile_window"`
	CurrentCycleDay         *int     `json:"current_cycle_day"`
	DaysUntilNextPeriod     *int     `json:"days_until_next_period"`
	CurrentPhase            string   `json:"current_phase"`
}

func newCalculationsResponse(overview services.CycleOverview) calculationsResponse {
	return calculationsResponse{
		Today:                   overview.Today,
		AverageCycleLength:      overview.AverageCycleLength,
		AveragePeriodLength:     overview.AveragePeriodLength,
		PredictedNextCycleStart: formatDayPointer(overview.PredictedNextCycleStart),
		PredictedFutureDays:     formatDays(overview.PredictedFutureDays),
		OvulationDayEstimates:   formatDays(overview.OvulationDayEstimates),
		FertileWindow:           formatDays(overview.FertileWindow),
		CurrentCycleDay:         overview.CurrentCycleDay,
		DaysUntilNextPeriod:     overview.DaysUntilNextPeriod,
		CurrentPhase:            overview.CurrentPhase,
	}
}

func (handler *Handler) GetCalculations(c *fiber.Ctx) error {
	overview, err := handler.periods.Overview(c.UserContext())
	if err != nil {
		handler.logger.WithError(err).Error("calculations failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to calculate cycle")
	}
	return c.JSON(newCalculationsResponse(overview))
}

// GetCalendar returns the month grid for ?month=YYYY-MM, defaulting to the
// current month.
func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	month := handler.periods.Today()
	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid month")
		}
		month = parsed
	}
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)

	days, err := handler.periods.CalendarMonth(c.UserContext(), monthStart)
	if err != nil {
		handler.logger.WithError(err).Error("calendar failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to build calendar")
	}
	return c.JSON(fiber.Map{
		"month": monthStart.Format("2006-01"),
		"days":  days,
	})
}
