package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/results-collector/internal/database"
	"github.com/yourusername/results-collector/internal/models"
)

// copyRows bulk loads rows with COPY and checks the row count.
func copyRows(ctx context.Context, db *database.DB, table string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	copyCount, err := db.GetPool().CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert %s: %w", table, err)
	}
	if copyCount != int64(len(rows)) {
		return fmt.Errorf("inserted %d %s rows, expected %d", copyCount, table, len(rows))
	}
	return nil
}

func existsByID(ctx context.Context, db *database.DB, table, column string, id int) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		pgx.Identifier{table}.Sanitize(), pgx.Identifier{column}.Sanitize())

	var exists bool
	if err := db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s %d: %w", table, id, err)
	}
	return exists, nil
}

// PostgresCarRepository implements CarRepository for PostgreSQL
type PostgresCarRepository struct {
	db *database.DB
}

// NewPostgresCarRepository creates a new car repository
func NewPostgresCarRepository(db *database.DB) CarRepository {
	return &PostgresCarRepository{db: db}
}

// Exists reports whether the car is stored
func (r *PostgresCarRepository) Exists(ctx context.Context, carID int) (bool, error) {
	return existsByID(ctx, r.db, "cars", "carid", carID)
}

// InsertBatch inserts cars using COPY
func (r *PostgresCarRepository) InsertBatch(ctx context.Context, cars []models.Car) error {
	rows := make([][]interface{}, len(cars))
	for i, c := range cars {
		rows[i] = []interface{}{c.CarID, c.AbbrevName, c.Name, c.DirPath}
	}
	return copyRows(ctx, r.db, "cars", []string{"carid", "abbrevname", "name", "dirpath"}, rows)
}

// PostgresCarClassRepository implements CarClassRepository for PostgreSQL
type PostgresCarClassRepository struct {
	db *database.DB
}

// NewPostgresCarClassRepository creates a new car class repository
func NewPostgresCarClassRepository(db *database.DB) CarClassRepository {
	return &PostgresCarClassRepository{db: db}
}

// Exists reports whether the car class is stored
func (r *PostgresCarClassRepository) Exists(ctx context.Context, carClassID int) (bool, error) {
	return existsByID(ctx, r.db, "carclasses", "carclassid", carClassID)
}

// InsertBatch inserts car classes using COPY
func (r *PostgresCarClassRepository) InsertBatch(ctx context.Context, classes []models.CarClass) error {
	rows := make([][]interface{}, len(classes))
	for i, c := range classes {
		rows[i] = []interface{}{c.CarClassID, c.Name, c.ShortName}
	}
	return copyRows(ctx, r.db, "carclasses", []string{"carclassid", "name", "shortname"}, rows)
}

// PostgresTrackRepository implements TrackRepository for PostgreSQL
type PostgresTrackRepository struct {
	db *database.DB
}

// NewPostgresTrackRepository creates a new track repository
func NewPostgresTrackRepository(db *database.DB) TrackRepository {
	return &PostgresTrackRepository{db: db}
}

// Exists reports whether the track is stored
func (r *PostgresTrackRepository) Exists(ctx context.Context, trackID int) (bool, error) {
	return existsByID(ctx, r.db, "tracks", "trackid", trackID)
}

// InsertBatch inserts tracks using COPY
func (r *PostgresTrackRepository) InsertBatch(ctx context.Context, tracks []models.Track) error {
	rows := make([][]interface{}, len(tracks))
	for i, t := range tracks {
		rows[i] = []interface{}{t.TrackID, t.Name, t.Config, t.LowerNameAndConfig, t.CatID, t.FreeWithSubscription}
	}
	return copyRows(ctx, r.db, "tracks",
		[]string{"trackid", "name", "config", "lowernameandconfig", "catid", "freewithsubscription"}, rows)
}
