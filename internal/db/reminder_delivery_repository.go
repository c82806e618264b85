package db

import (
	"context"
	"time"

	"github.com/terraincognita07/kalender/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReminderDeliveryRepository struct {
	database *gorm.DB
}

func NewReminderDeliveryRepository(database *gorm.DB) *ReminderDeliveryRepository {
	return &ReminderDeliveryRepository{database: database}
}

func (repo *ReminderDeliveryRepository) WasSent(ctx context.Context, kind string, day time.Time) (bool, error) {
	dayStart := utcDay(day)
	var count int64
	if err := repo.database.WithContext(ctx).
		Model(&models.ReminderDelivery{}).
		Where("kind = ? AND for_date >= ? AND for_date < ?", kind, dayStart, dayStart.AddDate(0, 0, 1)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkSent is idempotent per kind and day.
func (repo *ReminderDeliveryRepository) MarkSent(ctx context.Context, kind string, day time.Time, sentAt time.Time) error {
	delivery := models.ReminderDelivery{
		Kind:    kind,
		ForDate: utcDay(day),
		SentAt:  sentAt.UTC(),
	}
	return repo.database.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&delivery).Error
}

func utcDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
