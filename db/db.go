package db

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DefaultPath is where the client keeps its local database unless overridden
// through configuration.
var DefaultPath = filepath.Join(os.Getenv("HOME"), ".binsavvy/binsavvy.db")

// Open initializes the local database at the given path and migrates the
// tables if they don't exist. It returns the database handle.
func Open(path string) (*gorm.DB, error) {
	if path == "" {
		path = DefaultPath
	}

	if err := createDBDirectory(path); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize database")
		return nil, err
	}

	if err := migrateTables(gdb); err != nil {
		return nil, err
	}

	configureLogger(gdb)

	log.Info().Str("path", path).Msg("Database initialized successfully")
	return gdb, nil
}

// createDBDirectory checks if the database directory exists and creates it if it doesn't.
func createDBDirectory(path string) error {
	if _, err := os.Stat(filepath.Dir(path)); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			log.Error().Err(err).Msg("Failed to create database directory")
			return err
		}
	}
	return nil
}

// migrateTables creates the tables if they don't exist.
func migrateTables(gdb *gorm.DB) error {
	for _, model := range []any{&Token{}, &User{}, &Upload{}} {
		if err := gdb.AutoMigrate(model); err != nil {
			log.Error().Err(err).Msg("Failed to auto-migrate database")
			return err
		}
	}
	return nil
}

// configureLogger silences the GORM logger unless debug logging is on.
func configureLogger(gdb *gorm.DB) {
	if zerolog.GlobalLevel() == zerolog.Disabled {
		gdb.Logger = gdb.Logger.LogMode(0) // Silent mode
	} else {
		gdb.Logger = gdb.Logger.LogMode(4) // Debug mode
	}
}

// Close closes the underlying database connection.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get raw database connection")
		return err
	}
	return sqlDB.Close()
}
