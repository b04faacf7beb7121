// Package repository persists collected results.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/results-collector/internal/config"
	"github.com/yourusername/results-collector/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Event        EventRepository
	EventResult  EventResultRepository
	Team         TeamRepository
	Series       SeriesRepository
	SeriesResult SeriesResultRepository
	Car          CarRepository
	CarClass     CarClassRepository
	Track        TrackRepository

	ping  func(ctx context.Context) error
	close func() error
}

// NewRepositories creates the postgres-backed repositories
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Event:        NewPostgresEventRepository(db),
		EventResult:  NewPostgresEventResultRepository(db),
		Team:         NewPostgresTeamRepository(db),
		Series:       NewPostgresSeriesRepository(db),
		SeriesResult: NewPostgresSeriesResultRepository(db),
		Car:          NewPostgresCarRepository(db),
		CarClass:     NewPostgresCarClassRepository(db),
		Track:        NewPostgresTrackRepository(db),
		ping:         db.Ping,
		close:        db.Close,
	}, nil
}

// NewGormRepositories creates the gorm-backed repositories
func NewGormRepositories(db *gorm.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	return &Repositories{
		Event:        NewGormEventRepository(db),
		EventResult:  NewGormEventResultRepository(db),
		Team:         NewGormTeamRepository(db),
		Series:       NewGormSeriesRepository(db),
		SeriesResult: NewGormSeriesResultRepository(db),
		Car:          NewGormCarRepository(db),
		CarClass:     NewGormCarClassRepository(db),
		Track:        NewGormTrackRepository(db),
		ping:         sqlDB.PingContext,
		close:        sqlDB.Close,
	}, nil
}

// Open connects to the configured store and prepares its schema.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewRepositories(db)
	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		return NewGormRepositories(db)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// Ping verifies store connectivity.
func (r *Repositories) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

// Close releases the underlying connections.
func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}
