package models

import "time"

type Owner struct {
	ID                 uint      `gorm:"primaryKey"`
	PasswordHash       string    `gorm:"not null"`
	MustChangePassword bool      `gorm:"not null;default:false"`
	CreatedAt          time.Time `gorm:"not null"`
}
