package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/JoyChela/Epidemiology/internal/errs"
	"github.com/JoyChela/Epidemiology/internal/models"
)

// ClientInput carries a registration. DateOfBirth is an ISO calendar date.
type ClientInput struct {
	FirstName     string
	LastName      string
	DateOfBirth   string
	Gender        string
	ContactNumber *string
	Email         *string
	Address       *string
	RegisteredBy  *uint
}

// ClientFilter narrows Search. Empty fields are ignored; Search matches
// either name.
type ClientFilter struct {
	FirstName string
	LastName  string
	Search    string
}

// ClientDetail is a client with all of its enrollments.
type ClientDetail struct {
	models.Client
	Programs []models.EnrollmentDetail
}

type ClientService struct {
	db          *gorm.DB
	enrollments *EnrollmentService
}

// ParseDate parses an ISO YYYY-MM-DD date.
func ParseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, errs.NewBadRequestError("Invalid date format for "+field+", expected YYYY-MM-DD",
			errs.FieldError{Field: field, Error: "must be a date formatted as YYYY-MM-DD"})
	}
	return d, nil
}

func (s *ClientService) Register(ctx context.Context, in ClientInput) (*models.Client, error) {
	var missing []errs.FieldError
	for _, f := range [...]struct{ name, value string }{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"date_of_birth", in.DateOfBirth},
		{"gender", in.Gender},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, errs.FieldError{Field: f.name, Error: "is required"})
		}
	}
	if len(missing) > 0 {
		return nil, errs.NewBadRequestError("Missing required fields", missing...)
	}

	dob, err := ParseDate("date_of_birth", in.DateOfBirth)
	if err != nil {
		return nil, err
	}

	client := models.Client{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		DateOfBirth:   datatypes.Date(dob),
		Gender:        strings.TrimSpace(in.Gender),
		ContactNumber: in.ContactNumber,
		Email:         in.Email,
		Address:       in.Address,
		RegisteredBy:  in.RegisteredBy,
	}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, writeError(err, "Client already exists", "create client")
	}
	return &client, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likePattern builds a substring pattern matching term literally. Use it
// with ESCAPE '\'.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// Search matches names case-insensitively by substring.
func (s *ClientService) Search(ctx context.Context, f ClientFilter) ([]models.Client, error) {
	q := s.db.WithContext(ctx).Model(&models.Client{})
	if strings.TrimSpace(f.FirstName) != "" {
		q = q.Where(`LOWER(first_name) LIKE ? ESCAPE '\'`, likePattern(f.FirstName))
	}
	if strings.TrimSpace(f.LastName) != "" {
		q = q.Where(`LOWER(last_name) LIKE ? ESCAPE '\'`, likePattern(f.LastName))
	}
	if strings.TrimSpace(f.Search) != "" {
		p := likePattern(f.Search)
		q = q.Where(`LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\'`, p, p)
	}

	clients := []models.Client{}
	if err := q.Order("id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) Get(ctx context.Context, id uint) (*ClientDetail, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, lookupError(err, "Client", "get client")
	}
	programs, err := s.enrollments.details(ctx, "enrollments.client_id = ?", id)
	if err != nil {
		return nil, err
	}
	return &ClientDetail{Client: client, Programs: programs}, nil
}

// Delete removes the client and all of its enrollments.
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, id).Error; err != nil {
			return lookupError(err, "Client", "find client")
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Enrollment{}).Error; err != nil {
			return fmt.Errorf("delete client enrollments: %w", err)
		}
		if err := tx.Delete(&client).Error; err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
		return nil
	})
}
