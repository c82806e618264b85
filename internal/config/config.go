package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	DefaultPort         = "8080"
	DefaultReminderCron = "0 8 * * *"
	minSecretKeyLength  = 32
)

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is not set")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY uses an example placeholder")
	ErrSecretKeyTooShort    = errors.New("SECRET_KEY must be at least 32 characters")
)

var placeholderSecrets = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

// Config is the process configuration resolved from the environment.
type Config struct {
	Port             string
	DBPath           string
	SecretKey        string
	Location         *time.Location
	LogLevel         string
	Environment      string
	ReminderCron     string
	TelegramBotToken string
	TelegramChatID   int64
}

// Load reads .env (when present, without overriding the environment) and
// resolves every setting. SECRET_KEY is only required when requireSecret is
// set, so command line tools can run without it.
func Load(requireSecret bool) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:      getEnv("DB_PATH", filepath.Join("data", "kalender.db")),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Environment: strings.ToLower(getEnv("ENVIRONMENT", "development")),
	}

	port, err := ResolvePort()
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if requireSecret {
		secret, err := ResolveSecretKey()
		if err != nil {
			return nil, err
		}
		cfg.SecretKey = secret
	}

	location, err := time.LoadLocation(getEnv("TZ", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TZ: %w", err)
	}
	cfg.Location = location

	cfg.ReminderCron, err = ResolveReminderCron()
	if err != nil {
		return nil, err
	}

	cfg.TelegramBotToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	if rawChatID := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); rawChatID != "" {
		cfg.TelegramChatID, err = strconv.ParseInt(rawChatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID == 0 {
		return nil, errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}

	return cfg, nil
}

func (cfg *Config) IsProduction() bool {
	return cfg.Environment == "production" || cfg.Environment == "staging"
}

func (cfg *Config) TelegramEnabled() bool {
	return cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0
}

func ResolvePort() (string, error) {
	raw := strings.TrimSpace(os.Getenv("PORT"))
	if raw == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q: must be between 1 and 65535", raw)
	}
	return strconv.Itoa(port), nil
}

func ResolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", ErrSecretKeyMissing
	}
	if _, placeholder := placeholderSecrets[strings.ToLower(secret)]; placeholder {
		return "", ErrSecretKeyPlaceholder
	}
	if len(secret) < minSecretKeyLength {
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

// ResolveReminderCron validates REMINDER_CRON as a standard five-field spec.
func ResolveReminderCron() (string, error) {
	spec := getEnv("REMINDER_CRON", DefaultReminderCron)
	if _, err := cron.ParseStandard(spec); err != nil {
		return "", fmt.Errorf("invalid REMINDER_CRON %q: %w", spec, err)
	}
	return spec, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
