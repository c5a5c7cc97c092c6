package models

import "time"

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID uint
	User   User

	Entity   string `gorm:"size:50;not null"` // "rocnik", "vino", "user"
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "create", "activate", "delete", ...
	Details  string `gorm:"type:text"`
}

func (AuditLog) TableName() string { return "AUDITLOG" }
