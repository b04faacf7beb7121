package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/results-collector/internal/models"
)

// GormEventRepository implements EventRepository with GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM-based event repository
func NewGormEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// InsertIgnore inserts an archive row unless it is already stored
func (r *GormEventRepository) InsertIgnore(ctx context.Context, event *models.Event) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)
	if res.Error != nil {
		return false, fmt.Errorf("failed to insert event %s: %w", event.Key(), res.Error)
	}
	return res.RowsAffected == 1, nil
}

// DistinctSubsessionIDs lists the stored subsessions of a season
func (r *GormEventRepository) DistinctSubsessionIDs(ctx context.Context, season models.Season) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("season_year = ? AND season_quarter = ?", season.Year, season.Quarter).
		Distinct("subsessionid").
		Order("subsessionid").
		Pluck("subsessionid", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query subsessions: %w", err)
	}
	return ids, nil
}

// SessionSummary returns the session-level fields of a stored subsession
func (r *GormEventRepository) SessionSummary(ctx context.Context, subsessionID int64) (*models.SessionSummary, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Where("subsessionid = ?", subsessionID).
		Order("custid").
		Take(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query session summary: %w", err)
	}

	return &models.SessionSummary{
		SubsessionID:    event.SubsessionID,
		SessionID:       event.SessionID,
		SeasonID:        event.SeasonID,
		SeriesID:        event.SeriesID,
		CatID:           event.CatID,
		SeasonYear:      event.SeasonYear,
		SeasonQuarter:   event.SeasonQuarter,
		RaceWeekNum:     event.RaceWeekNum,
		RawStartTime:    event.RawStartTime,
		TrackID:         event.TrackID,
		OfficialSession: event.OfficialSession,
		StrengthOfField: event.StrengthOfField,
	}, nil
}

// GormEventResultRepository implements EventResultRepository with GORM
type GormEventResultRepository struct {
	db *gorm.DB
}

// NewGormEventResultRepository creates a new GORM-based event result repository
func NewGormEventResultRepository(db *gorm.DB) EventResultRepository {
	return &GormEventResultRepository{db: db}
}

// InsertIgnore inserts a participant result unless it is already stored
func (r *GormEventResultRepository) InsertIgnore(ctx context.Context, result *models.EventResult) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(result)
	if res.Error != nil {
		return false, fmt.Errorf("failed to insert event result %s: %w", result.Key(), res.Error)
	}
	return res.RowsAffected == 1, nil
}

// ExistsForSubsession reports whether any result is stored for the subsession
func (r *GormEventResultRepository) ExistsForSubsession(ctx context.Context, subsessionID int64) (bool, error) {
	var found []int64
	err := r.db.WithContext(ctx).
		Model(&models.EventResult{}).
		Where("subsessionid = ?", subsessionID).
		Limit(1).
		Pluck("custid", &found).Error
	if err != nil {
		return false, fmt.Errorf("failed to check results for subsession %d: %w", subsessionID, err)
	}
	return len(found) > 0, nil
}

// CountBySubsession counts the stored results of a subsession
func (r *GormEventResultRepository) CountBySubsession(ctx context.Context, subsessionID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EventResult{}).
		Where("subsessionid = ?", subsessionID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count results for subsession %d: %w", subsessionID, err)
	}
	return count, nil
}
