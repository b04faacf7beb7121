package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/results-collector/internal/models"
)

const gormBatchSize = 100

func gormExists(ctx context.Context, db *gorm.DB, model interface{}, column string, id int) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(model).
		Where(column+" = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormCarRepository implements CarRepository with GORM
type GormCarRepository struct {
	db *gorm.DB
}

// NewGormCarRepository creates a new GORM-based car repository
func NewGormCarRepository(db *gorm.DB) CarRepository {
	return &GormCarRepository{db: db}
}

// Exists reports whether the car is stored
func (r *GormCarRepository) Exists(ctx context.Context, carID int) (bool, error) {
	ok, err := gormExists(ctx, r.db, &models.Car{}, "carid", carID)
	if err != nil {
		return false, fmt.Errorf("failed to check car %d: %w", carID, err)
	}
	return ok, nil
}

// InsertBatch inserts cars in batches
func (r *GormCarRepository) InsertBatch(ctx context.Context, cars []models.Car) error {
	if len(cars) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(cars, gormBatchSize).Error; err != nil {
		return fmt.Errorf("failed to batch insert cars: %w", err)
	}
	return nil
}

// GormCarClassRepository implements CarClassRepository with GORM
type GormCarClassRepository struct {
	db *gorm.DB
}

// NewGormCarClassRepository creates a new GORM-based car class repository
func NewGormCarClassRepository(db *gorm.DB) CarClassRepository {
	return &GormCarClassRepository{db: db}
}

// Exists reports whether the car class is stored
func (r *GormCarClassRepository) Exists(ctx context.Context, carClassID int) (bool, error) {
	ok, err := gormExists(ctx, r.db, &models.CarClass{}, "carclassid", carClassID)
	if err != nil {
		return false, fmt.Errorf("failed to check car class %d: %w", carClassID, err)
	}
	return ok, nil
}

// InsertBatch inserts car classes in batches
func (r *GormCarClassRepository) InsertBatch(ctx context.Context, classes []models.CarClass) error {
	if len(classes) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(classes, gormBatchSize).Error; err != nil {
		return fmt.Errorf("failed to batch insert car classes: %w", err)
	}
	return nil
}

// GormTrackRepository implements TrackRepository with GORM
type GormTrackRepository struct {
	db *gorm.DB
}

// NewGormTrackRepository creates a new GORM-based track repository
func NewGormTrackRepository(db *gorm.DB) TrackRepository {
	return &GormTrackRepository{db: db}
}

// Exists reports whether the track is stored
func (r *GormTrackRepository) Exists(ctx context.Context, trackID int) (bool, error) {
	ok, err := gormExists(ctx, r.db, &models.Track{}, "trackid", trackID)
	if err != nil {
		return false, fmt.Errorf("failed to check track %d: %w", trackID, err)
	}
	return ok, nil
}

// InsertBatch inserts tracks in batches
func (r *GormTrackRepository) InsertBatch(ctx context.Context, tracks []models.Track) error {
	if len(tracks) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(tracks, gormBatchSize).Error; err != nil {
		return fmt.Errorf("failed to batch insert tracks: %w", err)
	}
	return nil
}
