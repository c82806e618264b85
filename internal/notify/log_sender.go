package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogSender writes reminders to the log when no chat transport is configured.
type LogSender struct {
	logger logrus.FieldLogger
}

func NewLogSender(logger logrus.FieldLogger) *LogSender {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogSender{logger: logger}
}

func (sender *LogSender) SendReminder(_ context.Context, message string) error {
	sender.logger.WithField("channel", "log").Info(message)
	return nil
}
