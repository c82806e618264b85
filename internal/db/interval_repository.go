package db

import (
	"context"

	"github.com/terraincognita07/kalender/internal/models"
	"gorm.io/gorm"
)

type IntervalRepository struct {
	database *gorm.DB
}

func NewIntervalRepository(database *gorm.DB) *IntervalRepository {
	return &IntervalRepository{database: database}
}

func (repo *IntervalRepository) List(ctx context.Context) ([]models.CycleInterval, error) {
	intervals := make([]models.CycleInterval, 0)
	if err := repo.database.WithContext(ctx).
		Order("start_date ASC, id ASC").
		Find(&intervals).Error; err != nil {
		return nil, err
	}
	for index := range intervals {
		intervals[index].StartDate = intervals[index].StartDate.UTC()
		if intervals[index].EndDate != nil {
			end := intervals[index].EndDate.UTC()
			intervals[index].EndDate = &end
		}
	}
	return intervals, nil
}

// ReplaceAll swaps the stored list for intervals in one transaction.
func (repo *IntervalRepository) ReplaceAll(ctx context.Context, intervals []models.CycleInterval) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CycleInterval{}).Error; err != nil {
			return err
		}
		if len(intervals) == 0 {
			return nil
		}
		rows := make([]models.CycleInterval, len(intervals))
		copy(rows, intervals)
		return tx.Create(&rows).Error
	})
}
