package database

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/JoyChela/Epidemiology/internal/auth"
	"github.com/JoyChela/Epidemiology/internal/models"
)

type seedUser struct {
	username, email, password, firstName, lastName, role string
}

var (
	seedUsers = []seedUser{
		{"admin", "admin@healthsystem.com", "admin123", "Admin", "User", models.RoleAdmin},
		{"doctor1", "doctor1@healthsystem.com", "doctor123", "John", "Doe", models.RoleDoctor},
		{"doctor2", "doctor2@healthsystem.com", "doctor123", "Jane", "Smith", models.RoleDoctor},
	}
	seedPrograms = [][2]string{
		{"Tuberculosis Control", "Comprehensive TB prevention and treatment program"},
		{"Malaria Prevention", "Program focused on malaria prevention and early treatment"},
		{"HIV/AIDS Care", "HIV testing, treatment, and support services"},
		{"Diabetes Management", "Monitoring and management services for diabetes patients"},
		{"Maternal Health", "Prenatal and postnatal care for expectant mothers"},
	}
	seedFirstNames = []string{"John", "Jane", "Michael", "Sarah", "David", "Lisa", "Robert", "Emily", "James", "Maria"}
	seedLastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	seedGenders    = []string{"Male", "Female"}
)

// SeedClients is the number of sample clients Seed creates.
const SeedClients = 20

// pickStatus draws an enrollment status: 70% active, 20% completed, 10% suspended.
func pickStatus(r *rand.Rand) string {
	switch n := r.Intn(10); {
	case n < 7:
		return models.EnrollmentActive
	case n < 9:
		return models.EnrollmentCompleted
	default:
		return models.EnrollmentSuspended
	}
}

// Seed fills an empty database with sample users, programs, clients and
// enrollments. It does nothing when users already exist.
func Seed(db *gorm.DB, r *rand.Rand, log zerolog.Logger) error {
	var existing int64
	if err := db.Model(&models.User{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if existing > 0 {
		log.Info().Int64("users", existing).Msg("database already seeded, skipping")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := make([]models.User, 0, len(seedUsers))
		for _, u := range seedUsers {
			hash, err := auth.HashPassword(u.password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.username, err)
			}
			users = append(users, models.User{
				Username: u.username, Email: u.email, PasswordHash: hash,
				FirstName: u.firstName, LastName: u.lastName, Role: u.role, IsActive: true,
			})
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		admin, doctor := users[0].ID, users[1].ID
		log.Info().Int("count", len(users)).Msg("added users")

		programs := make([]models.HealthProgram, 0, len(seedPrograms))
		for _, p := range seedPrograms {
			desc := p[1]
			programs = append(programs, models.HealthProgram{Name: p[0], Description: &desc, CreatedBy: &admin})
		}
		if err := tx.Create(&programs).Error; err != nil {
			return fmt.Errorf("seed programs: %w", err)
		}
		log.Info().Int("count", len(programs)).Msg("added health programs")

		today := time.Now().UTC().Truncate(24 * time.Hour)
		clients := make([]models.Client, 0, SeedClients)
		for i := 0; i < SeedClients; i++ {
			daysAgo := 20*365 + r.Intn(60*365)
			phone := fmt.Sprintf("+1-555-%d-%d", 100+r.Intn(900), 1000+r.Intn(9000))
			email := fmt.Sprintf("client%d@example.com", i+1)
			address := fmt.Sprintf("%d Main St, Anytown, ST %d", 100+r.Intn(900), 10000+r.Intn(90000))
			clients = append(clients, models.Client{
				FirstName:     seedFirstNames[r.Intn(len(seedFirstNames))],
				LastName:      seedLastNames[r.Intn(len(seedLastNames))],
				DateOfBirth:   datatypes.Date(today.AddDate(0, 0, -daysAgo)),
				Gender:        seedGenders[r.Intn(len(seedGenders))],
				ContactNumber: &phone,
				Email:         &email,
				Address:       &address,
				RegisteredBy:  &doctor,
			})
		}
		if err := tx.Create(&clients).Error; err != nil {
			return fmt.Errorf("seed clients: %w", err)
		}
		log.Info().Int("count", len(clients)).Msg("added sample clients")

		var enrollments []models.Enrollment
		for _, c := range clients {
			seen := map[uint]bool{}
			for n := 1 + r.Intn(3); n > 0; n-- {
				p := programs[r.Intn(len(programs))]
				if seen[p.ID] {
					continue
				}
				seen[p.ID] = true
				notes := fmt.Sprintf("Sample enrollment notes for %s in %s", c.FirstName, p.Name)
				enrollments = append(enrollments, models.Enrollment{
					ClientID:       c.ID,
					ProgramID:      p.ID,
					EnrollmentDate: time.Now().UTC().AddDate(0, 0, -(1 + r.Intn(365))),
					Status:         pickStatus(r),
					Notes:          &notes,
					EnrolledBy:     &doctor,
				})
			}
		}
		if err := tx.Create(&enrollments).Error; err != nil {
			return fmt.Errorf("seed enrollments: %w", err)
		}
		log.Info().Int("count", len(enrollments)).Msg("enrolled clients in health programs")
		return nil
	})
}
