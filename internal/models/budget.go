package models

import "time"

// Budget is a spending ceiling for one reduction category on a saving.
type Budget struct {
	ID         uint      `gorm:"primaryKey"`
	SavingID   uint      `gorm:"index;not null"`
	Category   string    `gorm:"size:32;not null"`
	AmountCent int64     `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Saving Saving `gorm:"constraint:OnDelete:CASCADE"`
}
