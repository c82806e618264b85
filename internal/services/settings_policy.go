package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/kalender/internal/models"
)

var (
	ErrSettingsCycleLengthOutOfRange    = errors.New("settings cycle length out of range")
	ErrSettingsPeriodLengthOutOfRange   = errors.New("settings period length out of range")
	ErrSettingsPeriodLengthIncompatible = errors.New("settings period length incompatible with cycle length")
	ErrSettingsReminderDaysOutOfRange   = errors.New("settings reminder days out of range")
	ErrSettingsMidIntervalPolicyInvalid = errors.New("settings mid-interval policy invalid")
)

type SettingsInput struct {
	AverageCycleLength  int
	AveragePeriodLength int
	RemindersEnabled    bool
	DaysBeforePeriod    int
	MidIntervalToggle   string
}

func IsValidCycleLength(value int) bool {
	return value >= 15 && value <= 90
}

func IsValidPeriodLength(value int) bool {
	return value >= 1 && value <= 14
}

func IsValidReminderDays(value int) bool {
	return value >= 1 && value <= 7
}

// ValidateSettings checks an update and returns the settings to persist. An
// empty mid-interval policy keeps the compatible "remove" behavior.
func ValidateSettings(input SettingsInput) (models.Settings, error) {
	if !IsValidCycleLength(input.AverageCycleLength) {
		return models.Settings{}, ErrSettingsCycleLengthOutOfRange
	}
	if !IsValidPeriodLength(input.AveragePeriodLength) {
		return models.Settings{}, ErrSettingsPeriodLengthOutOfRange
	}
	if input.AveragePeriodLength >= input.AverageCycleLength {
		return models.Settings{}, ErrSettingsPeriodLengthIncompatible
	}

	daysBeforePeriod := input.DaysBeforePeriod
	if daysBeforePeriod == 0 && !input.RemindersEnabled {
		daysBeforePeriod = models.DefaultDaysBeforePeriod
	}
	if !IsValidReminderDays(daysBeforePeriod) {
		return models.Settings{}, ErrSettingsReminderDaysOutOfRange
	}

	policy := strings.ToLower(strings.TrimSpace(input.MidIntervalToggle))
	switch policy {
	case "":
		policy = models.MidIntervalRemove
	case models.MidIntervalRemove, models.MidIntervalSplit:
	default:
		return models.Settings{}, ErrSettingsMidIntervalPolicyInvalid
	}

	return models.Settings{
		AverageCycleLength:  input.AverageCycleLength,
		AveragePeriodLength: input.AveragePeriodLength,
		RemindersEnabled:    input.RemindersEnabled,
		DaysBeforePeriod:    daysBeforePeriod,
		MidIntervalToggle:   policy,
	}, nil
}
