package models

import "time"

// AuditLog records important operations for auditing.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    *uint     `gorm:"index"`
	Path      string    `gorm:"size:255"`
	Method    string    `gorm:"size:16"`
	Action    string    `gorm:"size:2048"` // method + path + truncated request body
	IP        string    `gorm:"size:64"`
	UserAgent string    `gorm:"size:255"`
	CreatedAt time.Time
}
