package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger.
var Log = logrus.New()

// Init configures Log: JSON output for production and staging, text output
// otherwise. An unknown level falls back to info.
func Init(level string, environment string) *logrus.Logger {
	return Configure(Log, os.Stdout, level, environment)
}

func Configure(log *logrus.Logger, output io.Writer, level string, environment string) *logrus.Logger {
	log.SetOutput(output)

	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.Warnf("invalid log level %q, defaulting to info", level)
	} else {
		log.SetLevel(parsed)
	}

	switch strings.ToLower(environment) {
	case "production", "staging":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.Debugf("log level %s, environment %s", log.GetLevel(), environment)
	return log
}
