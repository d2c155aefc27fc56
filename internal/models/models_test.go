package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestClientJSON_HidesEnrollments(t *testing.T) {
	c := Client{
		ID:          7,
		FirstName:   "Grace",
		LastName:    "Achieng",
		DateOfBirth: datatypes.Date(time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)),
		Gender:      "Female",
		Enrollments: []Enrollment{{ID: 1, ClientID: 7, ProgramID: 2, Status: EnrollmentActive}},
	}
	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "Enrollments")
	assert.NotContains(t, fields, "enrollments")
	assert.Equal(t, "Grace", fields["first_name"])
	assert.Contains(t, fields, "date_of_birth")
	assert.Contains(t, fields, "registered_by")
}

func TestUserJSON_HidesPasswordHash(t *testing.T) {
	raw, err := json.Marshal(User{Username: "doctor1", PasswordHash: "$2a$10$secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), `"username":"doctor1"`)
}

func TestClientAge(t *testing.T) {
	c := Client{DateOfBirth: datatypes.Date(time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC))}
	assert.Equal(t, 23, c.Age(time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, c.Age(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2000-02-29", c.BirthDate())
}
