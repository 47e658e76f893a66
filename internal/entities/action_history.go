package entities

import "time"

const (
	EntityTypeJob        = "Job"
	EntityTypeAppliedJob = "AppliedJob"

	ActionAdded   = "Added"
	ActionDeleted = "Deleted"
)

type ActionHistory struct {
	ID         uint   `gorm:"primaryKey"`
	EntityType string `gorm:"size:50;not null"`
	EntityID   uint   `gorm:"not null;index"`
	Action     string `gorm:"size:50;not null"`
	Details    string `gorm:"type:text"`
	CreatedAt  time.Time
}
