package entities

type AppliedJob struct {
	ID             uint   `gorm:"primaryKey"`
	JobID          uint   `gorm:"not null;index"`
	FirstName      string `gorm:"size:100;not null"`
	FatherName     string `gorm:"size:100;not null"`
	ApplicantEmail string `gorm:"size:100;not null"`
	Gender         string `gorm:"size:10"`
	Age            int
	CVPath         string `gorm:"size:100"`
}
