package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/kalender/internal/models"
)

var (
	ErrIntervalsLoadFailed = errors.New("load intervals failed")
	ErrIntervalsSaveFailed = errors.New("save intervals failed")
)

type IntervalRepository interface {
	List(ctx context.Context) ([]models.CycleInterval, error)
	ReplaceAll(ctx context.Context, intervals []models.CycleInterval) error
}

// CycleOverview is the read bundle handed to calendar and summary views.
type CycleOverview struct {
	Calculations
	CurrentPhase string `json:"current_phase"`
	Today        string `json:"today"`
}

// PeriodService loads the interval list, applies toggles and persists the
// resulting snapshot on the same call. Toggles are serialized; each save
// replaces the whole list.
type PeriodService struct {
	intervals IntervalRepository
	settings  SettingsRepository
	location  *time.Location
	now       func() time.Time
	newID     IntervalIDFunc
	logger    logrus.FieldLogger
	mu        sync.Mutex
}

type PeriodServiceOption func(*PeriodService)

func WithClock(now func() time.Time) PeriodServiceOption {
	return func(service *PeriodService) {
		if now != nil {
			service.now = now
		}
	}
}

func WithIDFunc(newID IntervalIDFunc) PeriodServiceOption {
	return func(service *PeriodService) {
		service.newID = newID
	}
}

func WithLogger(logger logrus.FieldLogger) PeriodServiceOption {
	return func(service *PeriodService) {
		if logger != nil {
			service.logger = logger
		}
	}
}

func NewPeriodService(intervals IntervalRepository, settings SettingsRepository, location *time.Location, options ...PeriodServiceOption) *PeriodService {
	if location == nil {
		location = time.UTC
	}
	service := &PeriodService{
		intervals: intervals,
		settings:  settings,
		location:  location,
		now:       time.Now,
		logger:    logrus.StandardLogger(),
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// Today is the current calendar day in the configured location.
func (service *PeriodService) Today() time.Time {
	return DateAtLocation(service.now(), service.location)
}

func (service *PeriodService) ListIntervals(ctx context.Context) ([]models.CycleInterval, error) {
	intervals, err := service.intervals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntervalsLoadFailed, err)
	}
	if err := CheckIntervalInvariants(intervals); err != nil {
		service.logger.WithError(err).Warn("stored intervals violate invariants")
	}
	return sortIntervals(cloneIntervals(intervals)), nil
}

func (service *PeriodService) ToggleDay(ctx context.Context, day time.Time) ([]models.CycleInterval, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	settings, err := service.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	current, err := service.ListIntervals(ctx)
	if err != nil {
		return nil, err
	}

	store := NewIntervalStore(
		current,
		WithMidIntervalPolicy(settings.MidIntervalToggle),
		WithIntervalIDFunc(service.newID),
	).Toggle(day)

	next := store.Intervals()
	if err := service.intervals.ReplaceAll(ctx, next); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntervalsSaveFailed, err)
	}

	service.logger.WithFields(logrus.Fields{
		"day":       FormatDay(day),
		"intervals": len(next),
	}).Debug("toggled period day")
	return next, nil
}

func (service *PeriodService) Overview(ctx context.Context) (CycleOverview, error) {
	intervals, settings, err := service.snapshot(ctx)
	if err != nil {
		return CycleOverview{}, err
	}

	today := service.Today()
	calculations := BuildCalculations(intervals, settings, today)
	return CycleOverview{
		Calculations: calculations,
		CurrentPhase: CurrentPhase(calculations, intervals, today),
		Today:        FormatDay(today),
	}, nil
}

func (service *PeriodService) CalendarMonth(ctx context.Context, month time.Time) ([]CalendarDayState, error) {
	intervals, settings, err := service.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	today := service.Today()
	calculations := BuildCalculations(intervals, settings, today)
	return BuildCalendarDayStates(month, intervals, calculations, today), nil
}

func (service *PeriodService) snapshot(ctx context.Context) ([]models.CycleInterval, models.Settings, error) {
	settings, err := service.loadSettings(ctx)
	if err != nil {
		return nil, models.Settings{}, err
	}
	intervals, err := service.ListIntervals(ctx)
	if err != nil {
		return nil, models.Settings{}, err
	}
	return intervals, settings, nil
}

func (service *PeriodService) loadSettings(ctx context.Context) (models.Settings, error) {
	settings, err := service.settings.Load(ctx)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrSettingsLoadFailed, err)
	}
	return NormalizeSettings(settings), nil
}
