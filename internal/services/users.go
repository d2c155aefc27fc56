package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/JoyChela/Epidemiology/internal/auth"
	"github.com/JoyChela/Epidemiology/internal/errs"
	"github.com/JoyChela/Epidemiology/internal/models"
)

// UserInput carries a new staff account. An empty Role takes the configured default.
type UserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

type UserService struct {
	db          *gorm.DB
	defaultRole string
	now         func() time.Time
}

// ValidRole reports whether role is one of the staff roles.
func ValidRole(role string) bool {
	switch role {
	case models.RoleDoctor, models.RoleAdmin, models.RoleUser:
		return true
	}
	return false
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" {
		return nil, errs.NewBadRequestError("Username and email are required")
	}
	if len(in.Password) < auth.MinPasswordLength {
		return nil, errs.NewBadRequestError(fmt.Sprintf("Password must be at least %d characters", auth.MinPasswordLength),
			errs.FieldError{Field: "password", Error: "is too short"})
	}
	role := in.Role
	if role == "" {
		role = s.defaultRole
	}
	if !ValidRole(role) {
		return nil, errs.NewBadRequestError("Invalid role "+role, errs.FieldError{Field: "role", Error: "must be one of: doctor admin user"})
	}

	var existing models.User
	err := s.db.WithContext(ctx).Select("username", "email").
		Where("username = ? OR email = ?", username, email).
		Take(&existing).Error
	switch {
	case err == nil && existing.Username == username:
		return nil, errs.NewConflictError("Username already exists")
	case err == nil:
		return nil, errs.NewConflictError("Email already exists")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("check user: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, writeError(err, "Username or email already exists", "create user")
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, lookupError(err, "User", "get user")
	}
	return &user, nil
}

// Delete removes the account. Records it registered keep their soft reference.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError("User not found")
	}
	return nil
}

// Authenticate verifies a credential and stamps last_login.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	invalid := errs.NewUnauthorizedError("Invalid username or password")

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("check password: %w", err)
	}
	if !ok {
		return nil, invalid
	}
	if !user.IsActive {
		return nil, errs.NewForbiddenError("User account is inactive")
	}

	now := s.now().UTC()
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login", now).Error; err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now
	return &user, nil
}
