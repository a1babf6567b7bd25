package model

import "time"

// Report job states. A job starts Running and transitions exactly once.
const (
	ReportStatusRunning  = "Running"
	ReportStatusComplete = "Complete"
	ReportStatusFailed   = "Failed"
)

// Report is the registry row for one report job.
// FilePath is set only on Complete, Error only on Failed.
type Report struct {
	ReportID  string `gorm:"primaryKey;size:64"`
	Status    string `gorm:"size:20;not null"`
	FilePath  string `gorm:"size:256"`
	Error     string `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
