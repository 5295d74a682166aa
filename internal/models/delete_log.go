package models

import "time"

// DeleteLog records the physical deletion of a long-deactivated listing so
// admins can audit what the cleanup job removed.
type DeleteLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID string    `gorm:"type:varchar(36);not null;index" json:"property_id"`
	Title      string    `gorm:"type:text" json:"title"`
	City       string    `gorm:"type:varchar(100)" json:"city"`
	Reason     string    `gorm:"type:varchar(50);not null" json:"reason"`
	DeletedAt  time.Time `gorm:"type:datetime;not null;autoCreateTime;index" json:"deleted_at"`
}

const (
	DeleteReasonRetention = "retention_expired"
	DeleteReasonManual    = "manual"
)

func (DeleteLog) TableName() string {
	return "delete_logs"
}
