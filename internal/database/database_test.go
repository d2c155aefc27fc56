package database_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/JoyChela/Epidemiology/internal/config"
	"github.com/JoyChela/Epidemiology/internal/database"
	"github.com/JoyChela/Epidemiology/internal/models"
	"github.com/JoyChela/Epidemiology/internal/sqlerr"
	"github.com/JoyChela/Epidemiology/internal/testutil"
)

func indexNames(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var names []string
	require.NoError(t, db.Raw(`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = 'enrollments'`).
		Scan(&names).Error)
	return names
}

func pair(t *testing.T, db *gorm.DB) (clientID, programID uint) {
	t.Helper()
	client := models.Client{
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: datatypes.Date(time.Date(1980, 1, 2, 0, 0, 0, 0, time.UTC)),
		Gender:      "Female",
	}
	require.NoError(t, db.Create(&client).Error)
	program := models.HealthProgram{Name: "Tuberculosis Control"}
	require.NoError(t, db.Create(&program).Error)
	return client.ID, program.ID
}

func TestMigrate_ActivePolicyIndex(t *testing.T) {
	db := testutil.NewDB(t, config.UniqueActive)
	assert.Contains(t, indexNames(t, db), "idx_enrollments_active_pair")
	assert.NotContains(t, indexNames(t, db), "idx_enrollments_pair")

	c, p := pair(t, db)
	require.NoError(t, db.Create(&models.Enrollment{ClientID: c, ProgramID: p, Status: models.EnrollmentCompleted}).Error)
	require.NoError(t, db.Create(&models.Enrollment{ClientID: c, ProgramID: p, Status: models.EnrollmentActive}).Error)

	err := db.Create(&models.Enrollment{ClientID: c, ProgramID: p, Status: models.EnrollmentActive}).Error
	assert.True(t, sqlerr.IsUniqueViolation(err), "got %v", err)
}

func TestMigrate_SwitchToPairPolicy(t *testing.T) {
	db := testutil.NewDB(t, config.UniqueActive)
	require.NoError(t, database.Migrate(db, config.UniquePair))

	names := indexNames(t, db)
	assert.Contains(t, names, "idx_enrollments_pair")
	assert.NotContains(t, names, "idx_enrollments_active_pair")

	c, p := pair(t, db)
	require.NoError(t, db.Create(&models.Enrollment{ClientID: c, ProgramID: p, Status: models.EnrollmentCompleted}).Error)
	err := db.Create(&models.Enrollment{ClientID: c, ProgramID: p, Status: models.EnrollmentActive}).Error
	assert.True(t, sqlerr.IsUniqueViolation(err), "got %v", err)

	// Re-running is a no-op.
	require.NoError(t, database.Migrate(db, config.UniquePair))
}

func TestMigrate_UnknownPolicy(t *testing.T) {
	db := testutil.NewDB(t, config.UniqueActive)
	assert.Error(t, database.Migrate(db, "sometimes"))
}

func TestForeignKeysEnforced(t *testing.T) {
	db := testutil.NewDB(t, config.UniqueActive)
	err := db.Create(&models.Enrollment{ClientID: 404, ProgramID: 404, Status: models.EnrollmentActive}).Error
	assert.True(t, sqlerr.IsForeignKeyViolation(err), "got %v", err)
}

func TestInitDB_UnsupportedDriver(t *testing.T) {
	_, err := database.InitDB(config.DatabaseConfig{Driver: "mysql"}, zerolog.Nop())
	assert.Error(t, err)
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeed(t *testing.T) {
	db := testutil.NewDB(t, config.UniqueActive)
	require.NoError(t, database.Seed(db, rand.New(rand.NewSource(1)), zerolog.Nop()))

	assert.Equal(t, int64(3), count(t, db, &models.User{}))
	assert.Equal(t, int64(5), count(t, db, &models.HealthProgram{}))
	assert.Equal(t, int64(database.SeedClients), count(t, db, &models.Client{}))
	enrollments := count(t, db, &models.Enrollment{})
	assert.GreaterOrEqual(t, enrollments, int64(database.SeedClients))
	assert.LessOrEqual(t, enrollments, int64(3*database.SeedClients))

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").Take(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	var orphaned int64
	require.NoError(t, db.Model(&models.HealthProgram{}).Where("created_by IS NULL OR created_by <> ?", admin.ID).
		Count(&orphaned).Error)
	assert.Zero(t, orphaned)

	require.NoError(t, database.Seed(db, rand.New(rand.NewSource(2)), zerolog.Nop()))
	assert.Equal(t, int64(3), count(t, db, &models.User{}))
	assert.Equal(t, int64(database.SeedClients), count(t, db, &models.Client{}))
	assert.Equal(t, enrollments, count(t, db, &models.Enrollment{}))
}
