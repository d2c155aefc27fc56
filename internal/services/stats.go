package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/JoyChela/Epidemiology/internal/models"
	"github.com/JoyChela/Epidemiology/internal/utils"
)

// Summary backs the dashboard.
type Summary struct {
	ClientCount           int64   `json:"client_count"`
	ProgramCount          int64   `json:"program_count"`
	EnrollmentCount       int64   `json:"enrollment_count"`
	ActiveEnrollmentCount int64   `json:"active_enrollment_count"`
	AgeMean               float64 `json:"age_mean"`
	AgeStdDev             float64 `json:"age_stddev"`
}

type StatsService struct {
	db  *gorm.DB
	now func() time.Time
}

func (s *StatsService) Summary(ctx context.Context) (*Summary, error) {
	db := s.db.WithContext(ctx)
	var sum Summary

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&sum.ClientCount, db.Model(&models.Client{})},
		{&sum.ProgramCount, db.Model(&models.HealthProgram{})},
		{&sum.EnrollmentCount, db.Model(&models.Enrollment{})},
		{&sum.ActiveEnrollmentCount, db.Model(&models.Enrollment{}).Where("status = ?", models.EnrollmentActive)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
	}

	var births []datatypes.Date
	if err := db.Model(&models.Client{}).Pluck("date_of_birth", &births).Error; err != nil {
		return nil, fmt.Errorf("load birth dates: %w", err)
	}
	now := s.now()
	ages := make([]float64, 0, len(births))
	for _, b := range births {
		ages = append(ages, float64(models.Client{DateOfBirth: b}.Age(now)))
	}
	sum.AgeMean, sum.AgeStdDev = utils.MeanStdDev(ages)
	return &sum, nil
}
