package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/results-collector/internal/database"
	"github.com/yourusername/results-collector/internal/models"
)

var eventResultColumns = []string{
	"subsessionid", "finpos", "carid", "car", "carclassid", "carclass", "teamid", "custid", "name",
	"startpos", "outid", "out", "interval", "lapsled", "qualifytime", "averagelaptime", "fastestlaptime",
	"fastlap", "lapscomp", "inc", "pts", "clubpts", "div", "clubid", "club", "oldirating", "newirating",
	"oldlicenselevel", "oldlicensesublevel", "newlicenselevel", "newlicensesublevel", "seriesname",
	"maxfuelfill", "weightpenaltykg", "aggpts",
}

var insertEventResultSQL = insertIgnoreSQL("event_result", eventResultColumns)

func eventResultValues(r *models.EventResult) []interface{} {
	return []interface{}{
		r.SubsessionID, r.FinPos, r.CarID, r.Car, r.CarClassID, r.CarClass, r.TeamID, r.CustID, r.Name,
		r.StartPos, r.OutID, r.Out, r.Interval, r.LapsLed, r.QualifyTime, r.AverageLapTime, r.FastestLapTime,
		r.FastLap, r.LapsComp, r.Inc, r.Pts, r.ClubPts, r.Div, r.ClubID, r.Club, r.OldIRating, r.NewIRating,
		r.OldLicenseLevel, r.OldLicenseSubLevel, r.NewLicenseLevel, r.NewLicenseSubLevel, r.SeriesName,
		r.MaxFuelFill, r.WeightPenaltyKG, r.AggPts,
	}
}

// PostgresEventResultRepository implements EventResultRepository for PostgreSQL
type PostgresEventResultRepository struct {
	db *database.DB
}

// NewPostgresEventResultRepository creates a new event result repository
func NewPostgresEventResultRepository(db *database.DB) EventResultRepository {
	return &PostgresEventResultRepository{db: db}
}

// InsertIgnore inserts a participant result unless it is already stored
func (r *PostgresEventResultRepository) InsertIgnore(ctx context.Context, result *models.EventResult) (bool, error) {
	tag, err := r.db.Exec(ctx, insertEventResultSQL, eventResultValues(result)...)
	if err != nil {
		return false, fmt.Errorf("failed to insert event result %s: %w", result.Key(), err)
	}
	return tag.RowsAffected() == 1, nil
}

// ExistsForSubsession reports whether any result is stored for the subsession
func (r *PostgresEventResultRepository) ExistsForSubsession(ctx context.Context, subsessionID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM event_result WHERE subsessionid = $1)", subsessionID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check results for subsession %d: %w", subsessionID, err)
	}
	return exists, nil
}

// CountBySubsession counts the stored results of a subsession
func (r *PostgresEventResultRepository) CountBySubsession(ctx context.Context, subsessionID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM event_result WHERE subsessionid = $1", subsessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count results for subsession %d: %w", subsessionID, err)
	}
	return count, nil
}
