package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSnake(t *testing.T) {
	tests := map[string]string{
		"Name":          "name",
		"DateOfBirth":   "date_of_birth",
		"ClientID":      "client_id",
		"ID":            "id",
		"HTTPStatus":    "http_status",
		"program_id":    "program_id",
		"ContactNumber": "contact_number",
	}
	for in, want := range tests {
		assert.Equal(t, want, toSnake(in), in)
	}
}

func TestHTTPError_Is(t *testing.T) {
	err := fmt.Errorf("enroll: %w", NewConflictError("Client is already enrolled in this program"))
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "CONFLICT", httpErr.Code)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
}

func TestNewInternalServerError(t *testing.T) {
	e := NewInternalServerError()
	assert.Equal(t, "INTERNAL_SERVER_ERROR", e.Code)
	assert.Equal(t, "Internal Server Error", e.Message)
}

func TestValidationError(t *testing.T) {
	type request struct {
		ClientID    uint   `validate:"required"`
		DateOfBirth string `validate:"required,datetime=2006-01-02"`
		Email       string `validate:"omitempty,email"`
		Role        string `validate:"omitempty,oneof=doctor admin"`
	}
	err := validator.New().Struct(request{DateOfBirth: "05/17/1990", Email: "nope", Role: "nurse"})
	require.Error(t, err)

	e := ValidationError(err)
	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Equal(t, []FieldError{
		{Field: "client_id", Error: "is required"},
		{Field: "date_of_birth", Error: "must be a date formatted as YYYY-MM-DD"},
		{Field: "email", Error: "must be a valid email address"},
		{Field: "role", Error: "must be one of: doctor admin"},
	}, e.Errors)

	e = ValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, "Invalid request body: unexpected EOF", e.Message)
	assert.Empty(t, e.Errors)
}
