package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/results-collector/internal/database"
	"github.com/yourusername/results-collector/internal/models"
)

var (
	upsertTeamSQL = upsertSQL("teams", []string{"id", "name"}, []string{"id"})

	seriesColumns = []string{
		"seasonid", "seriesid", "catid", "seriesname", "seriesshortname", "multiclass", "year", "quarter", "image",
	}
	upsertSeriesSQL = upsertSQL("series", seriesColumns, []string{"seasonid"})

	seriesResultColumns = []string{
		"seasonid", "week_num", "start_time", "carclassid", "trackid", "sessionid", "subsessionid",
		"officialsession", "sizeoffield", "strengthoffield",
	}
	upsertSeriesResultSQL = upsertSQL("series_result", seriesResultColumns, []string{"subsessionid", "carclassid"})
)

// PostgresTeamRepository implements TeamRepository for PostgreSQL
type PostgresTeamRepository struct {
	db *database.DB
}

// NewPostgresTeamRepository creates a new team repository
func NewPostgresTeamRepository(db *database.DB) TeamRepository {
	return &PostgresTeamRepository{db: db}
}

// Upsert inserts the team or replaces its name
func (r *PostgresTeamRepository) Upsert(ctx context.Context, team *models.Team) error {
	if _, err := r.db.Exec(ctx, upsertTeamSQL, team.ID, team.Name); err != nil {
		return fmt.Errorf("failed to upsert team %d: %w", team.ID, err)
	}
	return nil
}

// PostgresSeriesRepository implements SeriesRepository for PostgreSQL
type PostgresSeriesRepository struct {
	db *database.DB
}

// NewPostgresSeriesRepository creates a new series repository
func NewPostgresSeriesRepository(db *database.DB) SeriesRepository {
	return &PostgresSeriesRepository{db: db}
}

// Upsert inserts or replaces a series season
func (r *PostgresSeriesRepository) Upsert(ctx context.Context, s *models.Series) error {
	_, err := r.db.Exec(ctx, upsertSeriesSQL,
		s.SeasonID, s.SeriesID, s.CatID, s.SeriesName, s.SeriesShortName, s.Multiclass, s.Year, s.Quarter, s.Image,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert series season %d: %w", s.SeasonID, err)
	}
	return nil
}

// List returns every stored series season ordered by season id
func (r *PostgresSeriesRepository) List(ctx context.Context) ([]*models.Series, error) {
	query := `
		SELECT seasonid, seriesid, catid, seriesname, seriesshortname, multiclass, year, quarter, image
		FROM series
		ORDER BY seasonid
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	var list []*models.Series
	for rows.Next() {
		s := &models.Series{}
		if err := rows.Scan(
			&s.SeasonID, &s.SeriesID, &s.CatID, &s.SeriesName, &s.SeriesShortName, &s.Multiclass, &s.Year, &s.Quarter, &s.Image,
		); err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		list = append(list, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating series: %w", err)
	}

	return list, nil
}

// PostgresSeriesResultRepository implements SeriesResultRepository for PostgreSQL
type PostgresSeriesResultRepository struct {
	db *database.DB
}

// NewPostgresSeriesResultRepository creates a new series result repository
func NewPostgresSeriesResultRepository(db *database.DB) SeriesResultRepository {
	return &PostgresSeriesResultRepository{db: db}
}

// Upsert inserts or replaces a per-class session summary
func (r *PostgresSeriesResultRepository) Upsert(ctx context.Context, s *models.SeriesResult) error {
	_, err := r.db.Exec(ctx, upsertSeriesResultSQL,
		s.SeasonID, s.WeekNum, s.StartTime, s.CarClassID, s.TrackID, s.SessionID, s.SubsessionID,
		s.OfficialSession, s.SizeOfField, s.StrengthOfField,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert series result %s: %w", s.Key(), err)
	}
	return nil
}
