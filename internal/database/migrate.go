package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/JoyChela/Epidemiology/internal/config"
	"github.com/JoyChela/Epidemiology/internal/models"
)

const (
	activePairIndex = "idx_enrollments_active_pair"
	pairIndex       = "idx_enrollments_pair"
)

// Migrate creates or updates the schema and installs the enrollment unique
// index matching policy, dropping the index of the other policy.
func Migrate(db *gorm.DB, policy string) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.HealthProgram{},
		&models.Enrollment{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var create, drop string
	switch policy {
	case config.UniqueActive:
		create = fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s ON enrollments (client_id, program_id) WHERE status = '%s'",
			activePairIndex, models.EnrollmentActive)
		drop = pairIndex
	case config.UniquePair:
		create = fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s ON enrollments (client_id, program_id)", pairIndex)
		drop = activePairIndex
	default:
		return fmt.Errorf("unknown enrollment uniqueness policy %q", policy)
	}

	if err := db.Exec("DROP INDEX IF EXISTS " + drop).Error; err != nil {
		return fmt.Errorf("drop index %s: %w", drop, err)
	}
	if err := db.Exec(create).Error; err != nil {
		return fmt.Errorf("create enrollment index: %w", err)
	}
	return nil
}
