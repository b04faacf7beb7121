package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/results-collector/internal/database"
	"github.com/yourusername/results-collector/internal/models"
)

var eventColumns = []string{
	"subsessionid", "sessionid", "evttype", "seasonid", "seriesid", "season_year", "season_quarter",
	"officialsession", "race_week_num", "start_date", "start_time", "raw_start_time", "finishedat",
	"strengthoffield", "custid", "displayname", "carclassid", "carid", "trackid", "catid",
	"starting_position", "finishing_position", "incidents", "bestquallaptime", "bestlaptime",
	"champpoints", "clubpointssort", "helm_licenselevel", "helm_pattern", "helm_color1", "helm_color2",
	"helm_color3", "rn", "sesrank", "licensegroup", "clubpoints", "dropracepoints", "groupname",
	"winnerdisplayname", "winnerlicenselevel", "winnerhelmpattern", "winnerhelmcolor1",
	"winnerhelmcolor2", "winnerhelmcolor3", "winnersgroupid", "subsession_bestlaptime", "champpointssort",
}

var insertEventSQL = insertIgnoreSQL("events", eventColumns)

func eventValues(e *models.Event) []interface{} {
	return []interface{}{
		e.SubsessionID, e.SessionID, e.EventType, e.SeasonID, e.SeriesID, e.SeasonYear, e.SeasonQuarter,
		e.OfficialSession, e.RaceWeekNum, e.StartDate, e.StartTime, e.RawStartTime, e.FinishedAt,
		e.StrengthOfField, e.CustID, e.DisplayName, e.CarClassID, e.CarID, e.TrackID, e.CatID,
		e.StartingPosition, e.FinishingPosition, e.Incidents, e.BestQualLapTime, e.BestLapTime,
		e.ChampPoints, e.ClubPointsSort, e.HelmLicenseLevel, e.HelmPattern, e.HelmColor1, e.HelmColor2,
		e.HelmColor3, e.RowNumber, e.SessionRank, e.LicenseGroup, e.ClubPoints, e.DropRacePoints, e.GroupName,
		e.WinnerDisplayName, e.WinnerLicenseLevel, e.WinnerHelmPattern, e.WinnerHelmColor1,
		e.WinnerHelmColor2, e.WinnerHelmColor3, e.WinnersGroupID, e.SubsessionBestLap, e.ChampPointsSort,
	}
}

// PostgresEventRepository implements EventRepository for PostgreSQL
type PostgresEventRepository struct {
	db *database.DB
}

// NewPostgresEventRepository creates a new event repository
func NewPostgresEventRepository(db *database.DB) EventRepository {
	return &PostgresEventRepository{db: db}
}

// InsertIgnore inserts an archive row unless it is already stored
func (r *PostgresEventRepository) InsertIgnore(ctx context.Context, event *models.Event) (bool, error) {
	tag, err := r.db.Exec(ctx, insertEventSQL, eventValues(event)...)
	if err != nil {
		return false, fmt.Errorf("failed to insert event %s: %w", event.Key(), err)
	}
	return tag.RowsAffected() == 1, nil
}

// DistinctSubsessionIDs lists the stored subsessions of a season
func (r *PostgresEventRepository) DistinctSubsessionIDs(ctx context.Context, season models.Season) ([]int64, error) {
	query := `
		SELECT DISTINCT subsessionid
		FROM events
		WHERE season_year = $1 AND season_quarter = $2
		ORDER BY subsessionid
	`

	rows, err := r.db.Query(ctx, query, season.Year, season.Quarter)
	if err != nil {
		return nil, fmt.Errorf("failed to query subsessions: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan subsessions: %w", err)
	}
	return ids, nil
}

// SessionSummary returns the session-level fields of a stored subsession
func (r *PostgresEventRepository) SessionSummary(ctx context.Context, subsessionID int64) (*models.SessionSummary, error) {
	query := `
		SELECT subsessionid, sessionid, seasonid, seriesid, catid, season_year, season_quarter,
		       race_week_num, raw_start_time, trackid, officialsession, strengthoffield
		FROM events
		WHERE subsessionid = $1
		ORDER BY custid
		LIMIT 1
	`

	s := &models.SessionSummary{}
	err := r.db.QueryRow(ctx, query, subsessionID).Scan(
		&s.SubsessionID, &s.SessionID, &s.SeasonID, &s.SeriesID, &s.CatID, &s.SeasonYear, &s.SeasonQuarter,
		&s.RaceWeekNum, &s.RawStartTime, &s.TrackID, &s.OfficialSession, &s.StrengthOfField,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query session summary: %w", err)
	}
	return s, nil
}
