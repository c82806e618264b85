package db

import (
	"context"
	"errors"

	"github.com/terraincognita07/kalender/internal/models"
	"gorm.io/gorm"
)

// settingsRowID is the only row of the settings table.
const settingsRowID = 1

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

func (repo *SettingsRepository) Load(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := repo.database.WithContext(ctx).First(&settings, settingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := models.DefaultSettings()
		defaults.ID = settingsRowID
		return defaults, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (repo *SettingsRepository) Save(ctx context.Context, settings models.Settings) error {
	settings.ID = settingsRowID
	return repo.database.WithContext(ctx).Save(&settings).Error
}
