package models

import "time"

// CycleInterval is one recorded cycle occurrence. A nil EndDate means the
// interval covers StartDate only.
type CycleInterval struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	StartDate time.Time  `gorm:"type:date;not null;index" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// EffectiveEnd treats a missing end date as a single-day interval.
func (interval CycleInterval) EffectiveEnd() time.Time {
	if interval.EndDate == nil {
		return interval.StartDate
	}
	return *interval.EndDate
}

func (interval CycleInterval) HasEnd() bool {
	return interval.EndDate != nil
}
