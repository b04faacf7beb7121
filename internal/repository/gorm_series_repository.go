package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/results-collector/internal/models"
)

// GormTeamRepository implements TeamRepository with GORM
type GormTeamRepository struct {
	db *gorm.DB
}

// NewGormTeamRepository creates a new GORM-based team repository
func NewGormTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Upsert inserts the team or replaces its name
func (r *GormTeamRepository) Upsert(ctx context.Context, team *models.Team) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(team).Error
	if err != nil {
		return fmt.Errorf("failed to upsert team %d: %w", team.ID, err)
	}
	return nil
}

// GormSeriesRepository implements SeriesRepository with GORM
type GormSeriesRepository struct {
	db *gorm.DB
}

// NewGormSeriesRepository creates a new GORM-based series repository
func NewGormSeriesRepository(db *gorm.DB) SeriesRepository {
	return &GormSeriesRepository{db: db}
}

// Upsert inserts or replaces a series season
func (r *GormSeriesRepository) Upsert(ctx context.Context, s *models.Series) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "seasonid"}},
			UpdateAll: true,
		}).
		Create(s).Error
	if err != nil {
		return fmt.Errorf("failed to upsert series season %d: %w", s.SeasonID, err)
	}
	return nil
}

// List returns every stored series season ordered by season id
func (r *GormSeriesRepository) List(ctx context.Context) ([]*models.Series, error) {
	var list []*models.Series
	if err := r.db.WithContext(ctx).Order("seasonid").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	return list, nil
}

// GormSeriesResultRepository implements SeriesResultRepository with GORM
type GormSeriesResultRepository struct {
	db *gorm.DB
}

// NewGormSeriesResultRepository creates a new GORM-based series result repository
func NewGormSeriesResultRepository(db *gorm.DB) SeriesResultRepository {
	return &GormSeriesResultRepository{db: db}
}

// Upsert inserts or replaces a per-class session summary
func (r *GormSeriesResultRepository) Upsert(ctx context.Context, s *models.SeriesResult) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subsessionid"}, {Name: "carclassid"}},
			UpdateAll: true,
		}).
		Create(s).Error
	if err != nil {
		return fmt.Errorf("failed to upsert series result %s: %w", s.Key(), err)
	}
	return nil
}
