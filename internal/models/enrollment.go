package models

import "time"

// Enrollment statuses.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentSuspended = "suspended"
)

// Enrollment links one Client to one HealthProgram.
type Enrollment struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ClientID       uint      `json:"client_id" gorm:"not null;index"`
	ProgramID      uint      `json:"program_id" gorm:"not null;index"`
	EnrollmentDate time.Time `json:"enrollment_date" gorm:"autoCreateTime"`
	Status         string    `json:"status" gorm:"size:20;not null;default:active;index"`
	Notes          *string   `json:"notes" gorm:"type:text"`
	EnrolledBy     *uint     `json:"enrolled_by" gorm:"index"` // soft reference to User.ID
}

// EnrollmentDetail enriches Enrollment with the program name.
type EnrollmentDetail struct {
	Enrollment
	ProgramName string `json:"program_name"`
}
