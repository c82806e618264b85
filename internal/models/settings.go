package models

const (
	DefaultCycleLength      = 28
	DefaultPeriodLength     = 5
	DefaultDaysBeforePeriod = 2
)

const (
	MidIntervalRemove = "remove"
	MidIntervalSplit  = "split"
)

type Settings struct {
	ID                  uint   `gorm:"primaryKey" json:"-"`
	AverageCycleLength  int    `gorm:"not null;default:28" json:"average_cycle_length"`
	AveragePeriodLength int    `gorm:"not null;default:5" json:"average_period_length"`
	RemindersEnabled    bool   `gorm:"not null;default:false" json:"reminders_enabled"`
	DaysBeforePeriod    int    `gorm:"not null;default:2" json:"days_before_period"`
	MidIntervalToggle   string `gorm:"not null;default:remove" json:"mid_interval_toggle"`
}

func DefaultSettings() Settings {
	return Settings{
		AverageCycleLength:  DefaultCycleLength,
		AveragePeriodLength: DefaultPeriodLength,
		RemindersEnabled:    false,
		DaysBeforePeriod:    DefaultDaysBeforePeriod,
		MidIntervalToggle:   MidIntervalRemove,
	}
}
