package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/kalender/internal/models"
)

var (
	ErrIntervalEndBeforeStart = errors.New("interval ends before it starts")
	ErrIntervalsOverlap       = errors.New("intervals overlap")
	ErrIntervalsAdjacent      = errors.New("intervals are adjacent but not merged")
)

// IntervalIDFunc generates identifiers for newly created intervals.
type IntervalIDFunc func() string

// IntervalStore is an immutable view over a sorted, non-overlapping,
// non-adjacent interval list. Toggle returns a new store and leaves the
// receiver untouched.
type IntervalStore struct {
	intervals   []models.CycleInterval
	midInterval string
	newID       IntervalIDFunc
}

type IntervalStoreOption func(*IntervalStore)

// WithMidIntervalPolicy selects what toggling a day strictly inside a
// multi-day interval does: models.MidIntervalRemove (default) or
// models.MidIntervalSplit.
func WithMidIntervalPolicy(policy string) IntervalStoreOption {
	return func(store *IntervalStore) {
		store.midInterval = policy
	}
}

func WithIntervalIDFunc(newID IntervalIDFunc) IntervalStoreOption {
	return func(store *IntervalStore) {
		if newID != nil {
			store.newID = newID
		}
	}
}

func NewIntervalStore(intervals []models.CycleInterval, options ...IntervalStoreOption) IntervalStore {
	store := IntervalStore{
		intervals:   sortIntervals(cloneIntervals(intervals)),
		midInterval: models.MidIntervalRemove,
		newID:       uuid.NewString,
	}
	for _, option := range options {
		option(&store)
	}
	return store
}

func (store IntervalStore) Toggle(day time.Time) IntervalStore {
	next := store
	next.intervals = ToggleDay(store.intervals, day, store.midInterval, store.newID)
	return next
}

func (store IntervalStore) Intervals() []models.CycleInterval {
	return cloneIntervals(store.intervals)
}

func (store IntervalStore) Len() int {
	return len(store.intervals)
}

// ToggleDay flips day in or out of the recorded intervals and returns the
// updated list sorted by start date. The input slice is not modified.
func ToggleDay(intervals []models.CycleInterval, day time.Time, midInterval string, newID IntervalIDFunc) []models.CycleInterval {
	if newID == nil {
		newID = uuid.NewString
	}
	day = CalendarDay(day)
	next := cloneIntervals(intervals)

	if index := findContaining(next, day); index >= 0 {
		return sortIntervals(shrinkOrRemove(next, index, day, midInterval, newID))
	}
	return sortIntervals(extendOrInsert(next, day, newID))
}

func shrinkOrRemove(intervals []models.CycleInterval, index int, day time.Time, midInterval string, newID IntervalIDFunc) []models.CycleInterval {
	start := intervals[index].StartDate
	end := intervals[index].EffectiveEnd()

	switch {
	case start.Equal(day) && end.Equal(day):
		return removeInterval(intervals, index)
	case start.Equal(day):
		intervals[index].StartDate = AddDays(day, 1)
		intervals[index].EndDate = dayPointer(end)
		return intervals
	case end.Equal(day):
		intervals[index].EndDate = dayPointer(AddDays(day, -1))
		return intervals
	case midInterval == models.MidIntervalSplit:
		intervals[index].EndDate = dayPointer(AddDays(day, -1))
		return append(intervals, models.CycleInterval{
			ID:        newID(),
			StartDate: AddDays(day, 1),
			EndDate:   dayPointer(end),
		})
	default:
		// Toggling a day strictly inside an interval drops the whole interval.
		return removeInterval(intervals, index)
	}
}

func extendOrInsert(intervals []models.CycleInterval, day time.Time, newID IntervalIDFunc) []models.CycleInterval {
	before := findEndingBefore(intervals, day)
	after := findStartingAfter(intervals, day)

	switch {
	case before >= 0 && after >= 0:
		merged := intervals[before]
		merged.EndDate = dayPointer(intervals[after].EffectiveEnd())
		remaining := make([]models.CycleInterval, 0, len(intervals)-1)
		for index, interval := range intervals {
			if index == before || index == after {
				continue
			}
			remaining = append(remaining, interval)
		}
		return append(remaining, merged)
	case before >= 0:
		intervals[before].EndDate = dayPointer(day)
		return intervals
	case after >= 0:
		intervals[after].EndDate = dayPointer(intervals[after].EffectiveEnd())
		intervals[after].StartDate = day
		return intervals
	default:
		return append(intervals, models.CycleInterval{
			ID:        newID(),
			StartDate: day,
			EndDate:   dayPointer(day),
		})
	}
}

func findContaining(intervals []models.CycleInterval, day time.Time) int {
	for index, interval := range intervals {
		if betweenDaysInclusive(day, interval.StartDate, interval.EffectiveEnd()) {
			return index
		}
	}
	return -1
}

func findEndingBefore(intervals []models.CycleInterval, day time.Time) int {
	previous := AddDays(day, -1)
	for index, interval := range intervals {
		if interval.EffectiveEnd().Equal(previous) {
			return index
		}
	}
	return -1
}

func findStartingAfter(intervals []models.CycleInterval, day time.Time) int {
	next := AddDays(day, 1)
	for index, interval := range intervals {
		if interval.StartDate.Equal(next) {
			return index
		}
	}
	return -1
}

// CheckIntervalInvariants reports the first violation of the ordering,
// overlap and adjacency rules in intervals. The slice may be unsorted.
func CheckIntervalInvariants(intervals []models.CycleInterval) error {
	sorted := sortIntervals(cloneIntervals(intervals))
	for index, interval := range sorted {
		if interval.EffectiveEnd().Before(interval.StartDate) {
			return fmt.Errorf("%w: %s", ErrIntervalEndBeforeStart, interval.ID)
		}
		if index == 0 {
			continue
		}
		previous := sorted[index-1]
		gap := DaysBetween(previous.EffectiveEnd(), interval.StartDate)
		switch {
		case gap <= 0:
			return fmt.Errorf("%w: %s and %s", ErrIntervalsOverlap, previous.ID, interval.ID)
		case gap == 1:
			return fmt.Errorf("%w: %s and %s", ErrIntervalsAdjacent, previous.ID, interval.ID)
		}
	}
	return nil
}

func removeInterval(intervals []models.CycleInterval, index int) []models.CycleInterval {
	return append(intervals[:index], intervals[index+1:]...)
}

func cloneIntervals(intervals []models.CycleInterval) []models.CycleInterval {
	cloned := make([]models.CycleInterval, 0, len(intervals))
	for _, interval := range intervals {
		copied := interval
		copied.StartDate = CalendarDay(interval.StartDate)
		if interval.EndDate != nil {
			copied.EndDate = dayPointer(*interval.EndDate)
		}
		cloned = append(cloned, copied)
	}
	return cloned
}

func sortIntervals(intervals []models.CycleInterval) []models.CycleInterval {
	sort.SliceStable(intervals, func(i, j int) bool {
		if intervals[i].StartDate.Equal(intervals[j].StartDate) {
			return intervals[i].ID < intervals[j].ID
		}
		return intervals[i].StartDate.Before(intervals[j].StartDate)
	})
	return intervals
}

func dayPointer(day time.Time) *time.Time {
	normalized := CalendarDay(day)
	return &normalized
}
