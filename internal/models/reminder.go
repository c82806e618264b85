package models

import "time"

const ReminderKindPeriod = "period"

// ReminderDelivery records that a reminder for ForDate was already sent.
type ReminderDelivery struct {
	ID      uint      `gorm:"primaryKey"`
	Kind    string    `gorm:"not null;uniqueIndex:uidx_reminder_kind_date"`
	ForDate time.Time `gorm:"type:date;not null;uniqueIndex:uidx_reminder_kind_date"`
	SentAt  time.Time `gorm:"not null"`
}
