package services

import (
	"time"

	"github.com/terraincognita07/kalender/internal/models"
)

type CalendarDayState struct {
	Date        string `json:"date"`
	Day         int    `json:"day"`
	InMonth     bool   `json:"in_month"`
	IsToday     bool   `json:"is_today"`
	IsPeriod    bool   `json:"is_period"`
	IsPredicted bool   `json:"is_predicted"`
	IsFertile   bool   `json:"is_fertile"`
	IsOvulation bool   `json:"is_ovulation"`
}

// BuildCalendarDayStates lays out the Sunday-first grid covering the month of
// monthStart and flags each cell from recorded intervals and predictions.
func BuildCalendarDayStates(monthStart time.Time, intervals []models.CycleInterval, calculations Calculations, today time.Time) []CalendarDayState {
	monthStart = CalendarDay(time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, time.UTC))
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := AddDays(monthStart, -int(monthStart.Weekday()))
	gridEnd := AddDays(monthEnd, 6-int(monthEnd.Weekday()))
	today = CalendarDay(today)

	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = AddDays(day, 1) {
		isPeriod := findContaining(intervals, day) >= 0
		isOvulation := calculations.IsOvulationDay(day)
		days = append(days, CalendarDayState{
			Date:        FormatDay(day),
			Day:         day.Day(),
			InMonth:     day.Month() == monthStart.Month(),
			IsToday:     day.Equal(today),
			IsPeriod:    isPeriod,
			IsPredicted: !isPeriod && calculations.IsPredictedDay(day),
			IsFertile:   !isOvulation && calculations.IsFertileDay(day),
			IsOvulation: isOvulation,
		})
	}
	return days
}
