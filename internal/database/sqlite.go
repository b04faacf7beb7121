package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yourusername/results-collector/internal/models"
)

// AllModels lists every table the collector writes.
func AllModels() []interface{} {
	return []interface{}{
		&models.Car{},
		&models.CarClass{},
		&models.Track{},
		&models.Series{},
		&models.Team{},
		&models.Event{},
		&models.EventResult{},
		&models.SeriesResult{},
	}
}

// OpenSQLite opens (creating if needed) a SQLite database file and migrates
// every table. Use ":memory:" for a throwaway store.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	// SQLite allows a single writer; one connection also keeps ":memory:"
	// databases alive across calls.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}

	return db, nil
}
