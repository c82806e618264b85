package db

import (
	"context"
	"errors"

	"github.com/terraincognita07/kalender/internal/models"
	"gorm.io/gorm"
)

type OwnerRepository struct {
	database *gorm.DB
}

func NewOwnerRepository(database *gorm.DB) *OwnerRepository {
	return &OwnerRepository{database: database}
}

func (repo *OwnerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.database.WithContext(ctx).Model(&models.Owner{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *OwnerRepository) Find(ctx context.Context) (models.Owner, bool, error) {
	var owner models.Owner
	err := repo.database.WithContext(ctx).Order("id ASC").First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Owner{}, false, nil
	}
	if err != nil {
		return models.Owner{}, false, err
	}
	return owner, true, nil
}

func (repo *OwnerRepository) Create(ctx context.Context, owner *models.Owner) error {
	return repo.database.WithContext(ctx).Create(owner).Error
}

func (repo *OwnerRepository) UpdatePassword(ctx context.Context, ownerID uint, passwordHash string, mustChangePassword bool) error {
	result := repo.database.WithContext(ctx).
		Model(&models.Owner{}).
		Where("id = ?", ownerID).
		Updates(map[string]any{
			"password_hash":        passwordHash,
			"must_change_password": mustChangePassword,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
