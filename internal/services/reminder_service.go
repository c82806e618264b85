package services

import (
	"context"
	"fmt"
	"time"

	"github.com/terraincognita07/kalender/internal/models"
)

type ReminderSender interface {
	SendReminder(ctx context.Context, message string) error
}

type ReminderDeliveryRepository interface {
	WasSent(ctx context.Context, kind string, day time.Time) (bool, error)
	MarkSent(ctx context.Context, kind string, day time.Time, sentAt time.Time) error
}

// ReminderService sends at most one "period is coming" reminder per day.
type ReminderService struct {
	periods    *PeriodService
	settings   SettingsRepository
	deliveries ReminderDeliveryRepository
	sender     ReminderSender
}

func NewReminderService(periods *PeriodService, settings SettingsRepository, deliveries ReminderDeliveryRepository, sender ReminderSender) *ReminderService {
	return &ReminderService{
		periods:    periods,
		settings:   settings,
		deliveries: deliveries,
		sender:     sender,
	}
}

// ReminderDue reports whether today is exactly DaysBeforePeriod days ahead
// of the predicted next start.
func ReminderDue(calculations Calculations, settings models.Settings) bool {
	if !settings.RemindersEnabled || calculations.DaysUntilNextPeriod == nil {
		return false
	}
	return *calculations.DaysUntilNextPeriod == settings.DaysBeforePeriod
}

func ReminderMessage(calculations Calculations) string {
	if calculations.PredictedNextCycleStart == nil || calculations.DaysUntilNextPeriod == nil {
		return ""
	}
	return fmt.Sprintf("Reminder: your next period is expected in %d day(s), on %s.",
		*calculations.DaysUntilNextPeriod,
		calculations.PredictedNextCycleStart.Format("Mon 2 Jan"),
	)
}

// Run evaluates today's reminder and reports whether one was sent.
func (service *ReminderService) Run(ctx context.Context) (bool, error) {
	settings, err := service.settings.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrSettingsLoadFailed, err)
	}
	settings = NormalizeSettings(settings)
	if !settings.RemindersEnabled {
		return false, nil
	}

	overview, err := service.periods.Overview(ctx)
	if err != nil {
		return false, err
	}
	if !ReminderDue(overview.Calculations, settings) {
		return false, nil
	}

	today := service.periods.Today()
	sent, err := service.deliveries.WasSent(ctx, models.ReminderKindPeriod, today)
	if err != nil {
		return false, fmt.Errorf("check reminder delivery: %w", err)
	}
	if sent {
		return false, nil
	}

	if err := service.sender.SendReminder(ctx, ReminderMessage(overview.Calculations)); err != nil {
		return false, fmt.Errorf("send reminder: %w", err)
	}
	if err := service.deliveries.MarkSent(ctx, models.ReminderKindPeriod, today, service.periods.now()); err != nil {
		return true, fmt.Errorf("record reminder delivery: %w", err)
	}
	return true, nil
}
