package models

import "time"

// Transaction kinds. A single table with an explicit kind tag replaces
// separate addition/reduction record sets.
const (
	KindAddition  = "addition"
	KindReduction = "reduction"
)

// Transaction is one signed ledger movement on a saving.
type Transaction struct {
	ID          uint      `gorm:"primaryKey"`
	SavingID    uint      `gorm:"index;not null"`
	Kind        string    `gorm:"size:16;index;not null"` // addition / reduction
	AmountCent  int64     `gorm:"not null"`               // always positive, sign comes from Kind
	Description string    `gorm:"size:255;not null"`
	Category    string    `gorm:"size:32;index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Saving Saving `gorm:"constraint:OnDelete:CASCADE"`
}
