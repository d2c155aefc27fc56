package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/JoyChela/Epidemiology/internal/config"
	"github.com/JoyChela/Epidemiology/internal/errs"
	"github.com/JoyChela/Epidemiology/internal/models"
)

const enrollmentConflict = "Client is already enrolled in this program"

// EnrollInput is shared by the client-scoped and flat enrollment routes.
type EnrollInput struct {
	ClientID   uint
	ProgramID  uint
	Notes      *string
	EnrolledBy *uint
}

// EnrollmentService owns enrollment creation. policy is config.UniqueActive
// or config.UniquePair.
type EnrollmentService struct {
	db     *gorm.DB
	policy string
}

// details lists enrollments joined with their program name.
func (s *EnrollmentService) details(ctx context.Context, where string, args ...interface{}) ([]models.EnrollmentDetail, error) {
	out := []models.EnrollmentDetail{}
	q := s.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Select("enrollments.*, health_programs.name AS program_name").
		Joins("JOIN health_programs ON health_programs.id = enrollments.program_id")
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Order("enrollments.id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return out, nil
}

// duplicate reports whether the policy forbids another enrollment of the pair.
func (s *EnrollmentService) duplicate(ctx context.Context, clientID, programID uint) (bool, error) {
	q := s.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("client_id = ? AND program_id = ?", clientID, programID)
	if s.policy != config.UniquePair {
		q = q.Where("status = ?", models.EnrollmentActive)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return n > 0, nil
}

// Enroll creates an active enrollment of a client in a program.
func (s *EnrollmentService) Enroll(ctx context.Context, in EnrollInput) (*models.EnrollmentDetail, error) {
	db := s.db.WithContext(ctx)

	var client models.Client
	if err := db.Select("id").First(&client, in.ClientID).Error; err != nil {
		return nil, lookupError(err, "Client", "find client")
	}
	var program models.HealthProgram
	if err := db.Select("id", "name").First(&program, in.ProgramID).Error; err != nil {
		return nil, lookupError(err, "Program", "find program")
	}

	dup, err := s.duplicate(ctx, in.ClientID, in.ProgramID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, errs.NewConflictError(enrollmentConflict)
	}

	enrollment := models.Enrollment{
		ClientID:   in.ClientID,
		ProgramID:  in.ProgramID,
		Status:     models.EnrollmentActive,
		Notes:      in.Notes,
		EnrolledBy: in.EnrolledBy,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return nil, writeError(err, enrollmentConflict, "create enrollment")
	}
	return &models.EnrollmentDetail{Enrollment: enrollment, ProgramName: program.Name}, nil
}

// ListByClient returns every enrollment of the client, whatever its status.
func (s *EnrollmentService) ListByClient(ctx context.Context, clientID uint) ([]models.EnrollmentDetail, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).Select("id").First(&client, clientID).Error; err != nil {
		return nil, lookupError(err, "Client", "find client")
	}
	return s.details(ctx, "enrollments.client_id = ?", clientID)
}

func (s *EnrollmentService) List(ctx context.Context) ([]models.EnrollmentDetail, error) {
	return s.details(ctx, "")
}

func (s *EnrollmentService) Get(ctx context.Context, id uint) (*models.EnrollmentDetail, error) {
	found, err := s.details(ctx, "enrollments.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, errs.NewNotFoundError("Enrollment not found")
	}
	return &found[0], nil
}

func (s *EnrollmentService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Enrollment{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete enrollment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError("Enrollment not found")
	}
	return nil
}
