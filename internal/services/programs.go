package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/JoyChela/Epidemiology/internal/errs"
	"github.com/JoyChela/Epidemiology/internal/models"
)

const programConflict = "Program with this name already exists"

// ProgramInput carries the fields of a new program.
type ProgramInput struct {
	Name        string
	Description *string
	CreatedBy   *uint
}

// ProgramPatch is a partial update; nil fields keep their stored value.
type ProgramPatch struct {
	Name        *string
	Description *string
}

type ProgramService struct {
	db *gorm.DB
}

// withClientCount selects programs together with their active enrollment count.
func (s *ProgramService) withClientCount(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.HealthProgram{}).
		Select("health_programs.*, (SELECT COUNT(*) FROM enrollments WHERE enrollments.program_id = health_programs.id AND enrollments.status = ?) AS client_count",
			models.EnrollmentActive)
}

func (s *ProgramService) nameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(&models.HealthProgram{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check program name: %w", err)
	}
	return n > 0, nil
}

func (s *ProgramService) Create(ctx context.Context, in ProgramInput) (*models.ProgramWithCount, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errs.NewBadRequestError("Program name is required", errs.FieldError{Field: "name", Error: "is required"})
	}

	taken, err := s.nameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewConflictError(programConflict)
	}

	program := models.HealthProgram{Name: name, Description: in.Description, CreatedBy: in.CreatedBy}
	if err := s.db.WithContext(ctx).Create(&program).Error; err != nil {
		return nil, writeError(err, programConflict, "create program")
	}
	return &models.ProgramWithCount{HealthProgram: program}, nil
}

func (s *ProgramService) List(ctx context.Context) ([]models.ProgramWithCount, error) {
	programs := []models.ProgramWithCount{}
	if err := s.withClientCount(ctx).Order("health_programs.id").Find(&programs).Error; err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return programs, nil
}

func (s *ProgramService) Get(ctx context.Context, id uint) (*models.ProgramWithCount, error) {
	var program models.ProgramWithCount
	if err := s.withClientCount(ctx).Where("health_programs.id = ?", id).Take(&program).Error; err != nil {
		return nil, lookupError(err, "Program", "get program")
	}
	return &program, nil
}

func (s *ProgramService) Update(ctx context.Context, id uint, patch ProgramPatch) (*models.ProgramWithCount, error) {
	var program models.HealthProgram
	if err := s.db.WithContext(ctx).First(&program, id).Error; err != nil {
		return nil, lookupError(err, "Program", "find program")
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, errs.NewBadRequestError("Program name cannot be empty", errs.FieldError{Field: "name", Error: "is required"})
		}
		if name != program.Name {
			taken, err := s.nameTaken(ctx, name, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, errs.NewConflictError(programConflict)
			}
			updates["name"] = name
		}
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&program).Updates(updates).Error; err != nil {
			return nil, writeError(err, programConflict, "update program")
		}
	}
	return s.Get(ctx, id)
}

// Delete removes the program and every enrollment in it.
func (s *ProgramService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var program models.HealthProgram
		if err := tx.First(&program, id).Error; err != nil {
			return lookupError(err, "Program", "find program")
		}
		if err := tx.Where("program_id = ?", id).Delete(&models.Enrollment{}).Error; err != nil {
			return fmt.Errorf("delete program enrollments: %w", err)
		}
		if err := tx.Delete(&program).Error; err != nil {
			return fmt.Errorf("delete program: %w", err)
		}
		return nil
	})
}
