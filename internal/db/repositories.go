package db

import "gorm.io/gorm"

type Repositories struct {
	Intervals  *IntervalRepository
	Settings   *SettingsRepository
	Owners     *OwnerRepository
	Deliveries *ReminderDeliveryRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Intervals:  NewIntervalRepository(database),
		Settings:   NewSettingsRepository(database),
		Owners:     NewOwnerRepository(database),
		Deliveries: NewReminderDeliveryRepository(database),
	}
}
