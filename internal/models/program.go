package models

import "time"

// HealthProgram defines the structure for health programs clients enroll in.
type HealthProgram struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description *string   `json:"description" gorm:"type:text"`
	CreatedDate time.Time `json:"created_date" gorm:"autoCreateTime"`
	CreatedBy   *uint     `json:"created_by" gorm:"index"` // soft reference to User.ID

	Enrollments []Enrollment `json:"-" gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE"`
}

// ProgramWithCount is a HealthProgram annotated with its number of active enrollments.
type ProgramWithCount struct {
	HealthProgram
	ClientCount int64 `json:"client_count"`
}
