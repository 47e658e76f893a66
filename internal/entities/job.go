package entities

import "time"

// DeadlineLayout is the format of the deadline field posted by the admin form.
const DeadlineLayout = "2006-01-02T15:04"

type Job struct {
	ID           uint       `gorm:"primaryKey"`
	Title        string     `gorm:"size:100;not null"`
	Description  string     `gorm:"size:500;not null"`
	Requirements string     `gorm:"size:500;not null"`
	Deadline     *time.Time
	IsActive     bool `gorm:"not null;index"`
}

// NewJob builds a posting whose IsActive flag is fixed against now.
// The flag is not recomputed afterwards.
func NewJob(title, description, requirements string, deadline *time.Time, now time.Time) Job {
	return Job{
		Title:        title,
		Description:  description,
		Requirements: requirements,
		Deadline:     deadline,
		IsActive:     deadline == nil || !deadline.Before(now),
	}
}

// DeadlinePassed reports whether applications are closed at the given moment.
// Unlike IsActive it reflects the current time.
func (j Job) DeadlinePassed(at time.Time) bool {
	return j.Deadline != nil && j.Deadline.Before(at)
}
