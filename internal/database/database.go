package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the pure-Go "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/JoyChela/Epidemiology/internal/config"
	"github.com/JoyChela/Epidemiology/internal/logger"
)

// InitDB opens the configured store and tunes its connection pool.
func InitDB(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Gorm(log)}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.PostgresURI), gormCfg)
	case "sqlite":
		var conn *sql.DB
		conn, err = OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		db, err = gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", Conn: conn}), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}

// OpenSQLite opens a modernc SQLite database with foreign keys enforced.
// path may be ":memory:", in which case the pool is pinned to a single
// connection so every query sees the same database.
func OpenSQLite(path string) (*sql.DB, error) {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	memory := path == ":memory:" || strings.Contains(path, "mode=memory")

	var dsn string
	switch {
	case path == ":memory:":
		dsn = "file::memory:?" + pragmas
	case strings.Contains(path, "?"):
		dsn = path + "&" + pragmas
	default:
		dsn = "file:" + path + "?" + pragmas + "&_pragma=journal_mode(WAL)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	if memory {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	return conn, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
