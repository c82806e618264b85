package services

import (
	"math"
	"sort"
	"time"

	"github.com/terraincognita07/kalender/internal/models"
)

const (
	MinPlausibleCycleLength = 21
	MaxPlausibleCycleLength = 45
	LutealPhaseDays         = 14

	DefaultPredictionHorizon = 6
	DefaultPastOvulations    = 6
	DefaultFutureOvulations  = 12

	fertileDaysBeforeOvulation = 5
	fertileDaysAfterOvulation  = 1
)

// Calculations bundles every value derived from the interval list. Nil
// pointers mean there is not enough data yet.
type Calculations struct {
	AverageCycleLength      int         `json:"average_cycle_length"`
	AveragePeriodLength     int         `json:"average_period_length"`
	PredictedNextCycleStart *time.Time  `json:"predicted_next_cycle_start"`
	PredictedFutureDays     []time.Time `json:"predicted_future_days"`
	OvulationDayEstimates   []time.Time `json:"ovulation_day_estimates"`
	FertileWindow           []time.Time `json:"fertile_window"`
	CurrentCycleDay         *int        `json:"current_cycle_day"`
	DaysUntilNextPeriod     *int        `json:"days_until_next_period"`
}

// BuildCalculations derives all statistics and predictions for today. Lengths
// are computed first because every prediction depends on them.
func BuildCalculations(intervals []models.CycleInterval, settings models.Settings, today time.Time) Calculations {
	settings = NormalizeSettings(settings)
	today = CalendarDay(today)

	averageCycleLength := AverageCycleLength(intervals, settings.AverageCycleLength)
	averagePeriodLength := AveragePeriodLength(intervals, settings.AveragePeriodLength)

	predictedStart := PredictNextCycleStart(intervals, averageCycleLength, today)
	ovulations := OvulationDayEstimates(intervals, averageCycleLength, DefaultPastOvulations, DefaultFutureOvulations)

	return Calculations{
		AverageCycleLength:      averageCycleLength,
		AveragePeriodLength:     averagePeriodLength,
		PredictedNextCycleStart: predictedStart,
		PredictedFutureDays:     PredictedFutureDays(intervals, averageCycleLength, averagePeriodLength, DefaultPredictionHorizon),
		OvulationDayEstimates:   ovulations,
		FertileWindow:           FertileWindow(ovulations),
		CurrentCycleDay:         CurrentCycleDay(intervals, averageCycleLength, today),
		DaysUntilNextPeriod:     DaysUntilNextPeriod(predictedStart, today),
	}
}

// AverageCycleLength averages the gaps between consecutive starts, ignoring
// gaps outside the plausible range. With fewer than two intervals the
// fallback is returned.
func AverageCycleLength(intervals []models.CycleInterval, fallback int) int {
	if len(intervals) < 2 {
		return fallback
	}

	starts := sortedStarts(intervals)
	lengths := make([]int, 0, len(starts)-1)
	for index := 1; index < len(starts); index++ {
		length := DaysBetween(starts[index-1], starts[index])
		if length < MinPlausibleCycleLength || length > MaxPlausibleCycleLength {
			continue
		}
		lengths = append(lengths, length)
	}
	if len(lengths) == 0 {
		return models.DefaultCycleLength
	}
	return roundHalfUp(averageInts(lengths))
}

// AveragePeriodLength averages the inclusive length of intervals that have an
// explicit end date.
func AveragePeriodLength(intervals []models.CycleInterval, fallback int) int {
	lengths := make([]int, 0, len(intervals))
	for _, interval := range intervals {
		if !interval.HasEnd() {
			continue
		}
		lengths = append(lengths, DaysBetween(interval.StartDate, *interval.EndDate)+1)
	}
	if len(lengths) == 0 {
		return fallback
	}
	return roundHalfUp(averageInts(lengths))
}

// PredictNextCycleStart steps forward from the latest recorded start in
// whole cycles until it reaches today or later.
func PredictNextCycleStart(intervals []models.CycleInterval, averageCycleLength int, today time.Time) *time.Time {
	latest, ok := latestStart(intervals)
	if !ok || averageCycleLength <= 0 {
		return nil
	}

	today = CalendarDay(today)
	next := AddDays(latest, averageCycleLength)
	if next.Before(today) {
		behind := DaysBetween(next, today)
		steps := (behind + averageCycleLength - 1) / averageCycleLength
		next = AddDays(next, steps*averageCycleLength)
	}
	return &next
}

func PredictedFutureDays(intervals []models.CycleInterval, averageCycleLength int, averagePeriodLength int, horizonCycles int) []time.Time {
	latest, ok := latestStart(intervals)
	if !ok {
		return nil
	}

	days := make([]time.Time, 0, horizonCycles*max(averagePeriodLength, 0))
	for cycle := 1; cycle <= horizonCycles; cycle++ {
		cycleStart := AddDays(latest, averageCycleLength*cycle)
		for offset := 0; offset < averagePeriodLength; offset++ {
			days = append(days, AddDays(cycleStart, offset))
		}
	}
	return uniqueSortedDays(days)
}

// OvulationDayEstimates places one estimate per cycle, a fixed luteal phase
// before the following cycle start.
func OvulationDayEstimates(intervals []models.CycleInterval, averageCycleLength int, pastCycles int, futureCycles int) []time.Time {
	latest, ok := latestStart(intervals)
	if !ok {
		return nil
	}

	estimates := make([]time.Time, 0, pastCycles+futureCycles+1)
	for cycle := -pastCycles; cycle <= futureCycles; cycle++ {
		cycleStart := AddDays(latest, averageCycleLength*cycle)
		estimates = append(estimates, AddDays(cycleStart, averageCycleLength-LutealPhaseDays))
	}
	return uniqueSortedDays(estimates)
}

func FertileWindow(ovulationDates []time.Time) []time.Time {
	days := make([]time.Time, 0, len(ovulationDates)*(fertileDaysBeforeOvulation+fertileDaysAfterOvulation))
	for _, ovulation := range ovulationDates {
		for offset := fertileDaysBeforeOvulation; offset > 0; offset-- {
			days = append(days, AddDays(ovulation, -offset))
		}
		for offset := 1; offset <= fertileDaysAfterOvulation; offset++ {
			days = append(days, AddDays(ovulation, offset))
		}
	}
	return uniqueSortedDays(days)
}

// CurrentCycleDay returns the 1-based position of today in the active cycle,
// wrapping when whole cycles passed without a new recorded start.
func CurrentCycleDay(intervals []models.CycleInterval, averageCycleLength int, today time.Time) *int {
	latest, ok := latestStart(intervals)
	if !ok || averageCycleLength <= 0 {
		return nil
	}

	daysSince := DaysBetween(latest, today)
	if daysSince < 0 {
		return nil
	}
	cycleDay := daysSince%averageCycleLength + 1
	return &cycleDay
}

// DaysUntilNextPeriod is zero or negative when the predicted start is today
// or already passed.
func DaysUntilNextPeriod(predictedStart *time.Time, today time.Time) *int {
	if predictedStart == nil {
		return nil
	}
	days := DaysBetween(today, *predictedStart)
	return &days
}

// NormalizeSettings replaces unusable fallback lengths with defaults so the
// calculator never divides by or steps with a non-positive length.
func NormalizeSettings(settings models.Settings) models.Settings {
	if settings.AverageCycleLength <= 0 {
		settings.AverageCycleLength = models.DefaultCycleLength
	}
	if settings.AveragePeriodLength <= 0 {
		settings.AveragePeriodLength = models.DefaultPeriodLength
	}
	if settings.DaysBeforePeriod <= 0 {
		settings.DaysBeforePeriod = models.DefaultDaysBeforePeriod
	}
	if settings.MidIntervalToggle != models.MidIntervalSplit {
		settings.MidIntervalToggle = models.MidIntervalRemove
	}
	return settings
}

func (calculations Calculations) IsPredictedDay(day time.Time) bool {
	return containsDay(calculations.PredictedFutureDays, day)
}

func (calculations Calculations) IsOvulationDay(day time.Time) bool {
	return containsDay(calculations.OvulationDayEstimates, day)
}

func (calculations Calculations) IsFertileDay(day time.Time) bool {
	return containsDay(calculations.FertileWindow, day)
}

func latestStart(intervals []models.CycleInterval) (time.Time, bool) {
	if len(intervals) == 0 {
		return time.Time{}, false
	}
	latest := CalendarDay(intervals[0].StartDate)
	for _, interval := range intervals[1:] {
		if start := CalendarDay(interval.StartDate); start.After(latest) {
			latest = start
		}
	}
	return latest, true
}

func sortedStarts(intervals []models.CycleInterval) []time.Time {
	starts := make([]time.Time, 0, len(intervals))
	for _, interval := range intervals {
		starts = append(starts, CalendarDay(interval.StartDate))
	}
	sort.Slice(starts, func(i, j int) bool {
		return starts[i].Before(starts[j])
	})
	return starts
}

func uniqueSortedDays(days []time.Time) []time.Time {
	if len(days) == 0 {
		return []time.Time{}
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	unique := days[:1]
	for _, day := range days[1:] {
		if !day.Equal(unique[len(unique)-1]) {
			unique = append(unique, day)
		}
	}
	return unique
}

func containsDay(days []time.Time, day time.Time) bool {
	day = CalendarDay(day)
	index := sort.Search(len(days), func(i int) bool {
		return !days[i].Before(day)
	})
	return index < len(days) && days[index].Equal(day)
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}
