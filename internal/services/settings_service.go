package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/kalender/internal/models"
)

var (
	ErrSettingsLoadFailed = errors.New("load settings failed")
	ErrSettingsSaveFailed = errors.New("save settings failed")
)

type SettingsRepository interface {
	Load(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, settings models.Settings) error
}

type SettingsService struct {
	settings SettingsRepository
}

func NewSettingsService(settings SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

func (service *SettingsService) Load(ctx context.Context) (models.Settings, error) {
	settings, err := service.settings.Load(ctx)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrSettingsLoadFailed, err)
	}
	return NormalizeSettings(settings), nil
}

func (service *SettingsService) Update(ctx context.Context, input SettingsInput) (models.Settings, error) {
	settings, err := ValidateSettings(input)
	if err != nil {
		return models.Settings{}, err
	}
	if err := service.settings.Save(ctx, settings); err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrSettingsSaveFailed, err)
	}
	return settings, nil
}
