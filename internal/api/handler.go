package api

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/kalender/internal/services"
)

const (
	authTokenTTL       = 7 * 24 * time.Hour
	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

const contextOwnerKey = "owner"

// Services are the collaborators the API exposes.
type Services struct {
	Periods  *services.PeriodService
	Settings *services.SettingsService
	Auth     *services.AuthService
}

type Handler struct {
	periods      *services.PeriodService
	settings     *services.SettingsService
	auth         *services.AuthService
	secretKey    []byte
	loginLimiter *attemptLimiter
	now          func() time.Time
	logger       logrus.FieldLogger
}

func NewHandler(deps Services, secretKey string, logger logrus.FieldLogger) (*Handler, error) {
	if secretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if deps.Periods == nil || deps.Settings == nil || deps.Auth == nil {
		return nil, errors.New("api services are required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		periods:      deps.Periods,
		settings:     deps.Settings,
		auth:         deps.Auth,
		secretKey:    []byte(secretKey),
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		now:          time.Now,
		logger:       logger.WithField("component", "api"),
	}, nil
}
