package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderRunner is the daily reminder job.
type ReminderRunner interface {
	Run(ctx context.Context) (bool, error)
}

// ReminderScheduler runs the reminder job on a cron spec in the configured
// location.
type ReminderScheduler struct {
	cronEngine *cron.Cron
	reminders  ReminderRunner
	logger     logrus.FieldLogger
	spec       string
	timeout    time.Duration
}

func NewReminderScheduler(reminders ReminderRunner, spec string, location *time.Location, logger logrus.FieldLogger) *ReminderScheduler {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ReminderScheduler{
		cronEngine: cron.New(cron.WithLocation(location)),
		reminders:  reminders,
		logger:     logger.WithField("component", "scheduler"),
		spec:       spec,
		timeout:    time.Minute,
	}
}

func (s *ReminderScheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.spec, s.runOnce); err != nil {
		return fmt.Errorf("add reminder job %q: %w", s.spec, err)
	}
	s.cronEngine.Start()
	s.logger.WithField("spec", s.spec).Info("reminder scheduler started")
	return nil
}

func (s *ReminderScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	sent, err := s.reminders.Run(ctx)
	if err != nil {
		s.logger.WithError(err).Error("reminder job failed")
		return
	}
	s.logger.WithField("sent", sent).Debug("reminder job finished")
}

// Stop waits for a running job to finish or ctx to expire.
func (s *ReminderScheduler) Stop(ctx context.Context) {
	stopped := s.cronEngine.Stop()
	select {
	case <-stopped.Done():
		s.logger.Info("reminder scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("reminder scheduler stop timed out")
	}
}
