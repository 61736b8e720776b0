package models

import "time"

// Goal statuses. Status is derived from the balance at goal create/update
// time only; it is not refreshed when the balance changes elsewhere.
const (
	GoalOnProgress = "On-Progress"
	GoalCompleted  = "Completed"
)

// Goal is a target balance attached to a saving.
type Goal struct {
	ID               uint      `gorm:"primaryKey"`
	SavingID         uint      `gorm:"index;not null"`
	Title            string    `gorm:"size:128;not null"`
	TargetAmountCent int64     `gorm:"not null"`
	Status           string    `gorm:"size:16;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Saving Saving `gorm:"constraint:OnDelete:CASCADE"`
}
