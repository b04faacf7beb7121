package repository

import (
	"context"

	"github.com/yourusername/results-collector/internal/models"
)

// EventRepository defines data access for results archive rows
type EventRepository interface {
	// InsertIgnore stores the row unless its key already exists and reports
	// whether a row was written.
	InsertIgnore(ctx context.Context, event *models.Event) (bool, error)
	// DistinctSubsessionIDs lists the subsessions stored for a season in
	// ascending order.
	DistinctSubsessionIDs(ctx context.Context, season models.Season) ([]int64, error)
	// SessionSummary describes a stored subsession, or returns
	// models.ErrNotFound.
	SessionSummary(ctx context.Context, subsessionID int64) (*models.SessionSummary, error)
}

// EventResultRepository defines data access for participant results
type EventResultRepository interface {
	InsertIgnore(ctx context.Context, result *models.EventResult) (bool, error)
	ExistsForSubsession(ctx context.Context, subsessionID int64) (bool, error)
	CountBySubsession(ctx context.Context, subsessionID int64) (int64, error)
}

// TeamRepository defines data access for teams
type TeamRepository interface {
	Upsert(ctx context.Context, team *models.Team) error
}

// SeriesRepository defines data access for series seasons
type SeriesRepository interface {
	Upsert(ctx context.Context, series *models.Series) error
	List(ctx context.Context) ([]*models.Series, error)
}

// SeriesResultRepository defines data access for per-class session summaries
type SeriesResultRepository interface {
	Upsert(ctx context.Context, result *models.SeriesResult) error
}

// CarRepository defines data access for the car catalog
type CarRepository interface {
	Exists(ctx context.Context, carID int) (bool, error)
	InsertBatch(ctx context.Context, cars []models.Car) error
}

// CarClassRepository defines data access for the car class catalog
type CarClassRepository interface {
	Exists(ctx context.Context, carClassID int) (bool, error)
	InsertBatch(ctx context.Context, classes []models.CarClass) error
}

// TrackRepository defines data access for the track catalog
type TrackRepository interface {
	Exists(ctx context.Context, trackID int) (bool, error)
	InsertBatch(ctx context.Context, tracks []models.Track) error
}
