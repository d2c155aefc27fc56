// Package services holds the request-independent operations behind every
// route: pre-checks, the mutation, and mapping of constraint violations.
//
// Expected failures are returned as *errs.HTTPError; anything else is a
// wrapped driver error the caller should treat as internal.
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/JoyChela/Epidemiology/internal/config"
	"github.com/JoyChela/Epidemiology/internal/errs"
	"github.com/JoyChela/Epidemiology/internal/sqlerr"
)

// Services groups the domain services sharing one database handle.
type Services struct {
	Programs    *ProgramService
	Clients     *ClientService
	Enrollments *EnrollmentService
	Users       *UserService
	Stats       *StatsService
}

// New wires the services against db.
func New(db *gorm.DB, cfg *config.Config) *Services {
	enrollments := &EnrollmentService{db: db, policy: cfg.Enrollment.Uniqueness}
	return &Services{
		Programs:    &ProgramService{db: db},
		Clients:     &ClientService{db: db, enrollments: enrollments},
		Enrollments: enrollments,
		Users:       &UserService{db: db, defaultRole: cfg.Users.DefaultRole, now: time.Now},
		Stats:       &StatsService{db: db, now: time.Now},
	}
}

// lookupError turns gorm.ErrRecordNotFound into a 404 for entity.
func lookupError(err error, entity, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFoundError(entity + " not found")
	}
	return fmt.Errorf("%s: %w", op, err)
}

// writeError maps constraint violations raised by a mutation.
func writeError(err error, conflict string, op string) error {
	switch {
	case sqlerr.IsUniqueViolation(err):
		return errs.NewConflictError(conflict)
	case sqlerr.IsForeignKeyViolation(err):
		return errs.NewNotFoundError("Referenced record not found")
	}
	return fmt.Errorf("%s: %w", op, err)
}
