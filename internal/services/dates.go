package services

import (
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// CalendarDay drops the time of day and pins the date to UTC midnight so day
// arithmetic is never affected by DST transitions.
func CalendarDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateAtLocation returns the calendar day value falls on in location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return CalendarDay(value.In(location))
}

func AddDays(day time.Time, days int) time.Time {
	return CalendarDay(day).AddDate(0, 0, days)
}

// DaysBetween returns to - from in whole days.
func DaysBetween(from time.Time, to time.Time) int {
	return int(CalendarDay(to).Sub(CalendarDay(from)).Hours() / 24)
}

func SameDay(a time.Time, b time.Time) bool {
	return CalendarDay(a).Equal(CalendarDay(b))
}

func ParseDay(raw string) (time.Time, error) {
	parsed, err := time.Parse(DayLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return CalendarDay(parsed), nil
}

func FormatDay(day time.Time) string {
	return CalendarDay(day).Format(DayLayout)
}

func betweenDaysInclusive(day time.Time, start time.Time, end time.Time) bool {
	day = CalendarDay(day)
	return !day.Before(CalendarDay(start)) && !day.After(CalendarDay(end))
}
