package models

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Client defines the structure for patient records.
type Client struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	FirstName     string         `json:"first_name" gorm:"size:50;not null;index"`
	LastName      string         `json:"last_name" gorm:"size:50;not null;index"`
	DateOfBirth   datatypes.Date `json:"date_of_birth" gorm:"not null"`
	Gender        string         `json:"gender" gorm:"size:20;not null"`
	ContactNumber *string        `json:"contact_number" gorm:"size:20"`
	Email         *string        `json:"email" gorm:"size:100"`
	Address       *string        `json:"address" gorm:"type:text"`
	RegisteredAt  time.Time      `json:"registered_at" gorm:"autoCreateTime"`
	RegisteredBy  *uint          `json:"registered_by" gorm:"index"` // soft reference to User.ID

	Enrollments []Enrollment `json:"-" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

// BirthDate returns DateOfBirth as YYYY-MM-DD.
func (c Client) BirthDate() string {
	return time.Time(c.DateOfBirth).Format(DateLayout)
}

// Age in whole years at the given instant.
func (c Client) Age(at time.Time) int {
	dob := time.Time(c.DateOfBirth)
	years := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		years--
	}
	return years
}
