package services

import (
	"time"

	"github.com/terraincognita07/kalender/internal/models"
)

const (
	PhaseUnknown    = "unknown"
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseFertile    = "fertile"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"
)

// CurrentPhase names the part of the cycle today falls in. Recorded period
// days win over every prediction.
func CurrentPhase(calculations Calculations, intervals []models.CycleInterval, today time.Time) string {
	today = CalendarDay(today)
	if findContaining(intervals, today) >= 0 {
		return PhaseMenstrual
	}
	if calculations.CurrentCycleDay == nil {
		return PhaseUnknown
	}

	switch {
	case calculations.IsOvulationDay(today):
		return PhaseOvulation
	case calculations.IsFertileDay(today):
		return PhaseFertile
	}

	cycleDay := *calculations.CurrentCycleDay
	ovulationCycleDay := calculations.AverageCycleLength - LutealPhaseDays + 1
	switch {
	case cycleDay <= calculations.AveragePeriodLength && calculations.IsPredictedDay(today):
		return PhaseMenstrual
	case cycleDay < ovulationCycleDay:
		return PhaseFollicular
	default:
		return PhaseLuteal
	}
}
