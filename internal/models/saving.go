package models

import "time"

// Saving is the single running-balance account owned by a user.
// Amounts are stored in cents to avoid float errors, e.g. 12.34 = 1234.
type Saving struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"uniqueIndex;not null"`
	AmountCent int64     `gorm:"not null;default:0"` // running balance; only the reduce operation guards against overdraw
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
