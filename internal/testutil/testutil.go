// Package testutil builds isolated in-memory stores for tests.
package testutil

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JoyChela/Epidemiology/internal/config"
	"github.com/JoyChela/Epidemiology/internal/database"
)

// Config returns the default configuration pointed at an in-memory SQLite
// store with the given enrollment uniqueness policy.
func Config(policy string) *config.Config {
	cfg := config.Default()
	cfg.Database = config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}
	cfg.Enrollment.Uniqueness = policy
	return cfg
}

// NewDB opens a fresh, migrated in-memory database closed at test cleanup.
func NewDB(t *testing.T, policy string) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(Config(policy).Database, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db, policy))
	return db
}
