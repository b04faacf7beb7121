package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/results-collector/internal/iracing"
	"github.com/yourusername/results-collector/internal/logger"
	"github.com/yourusername/results-collector/internal/metrics"
	"github.com/yourusername/results-collector/internal/models"
	"github.com/yourusername/results-collector/internal/repository"
)

// ReferenceReport counts catalog rows written per entity.
type ReferenceReport struct {
	CarsInserted       int
	CarClassesInserted int
	TracksInserted     int
}

// Total returns the number of rows inserted across all entities.
func (r *ReferenceReport) Total() int {
	return r.CarsInserted + r.CarClassesInserted + r.TracksInserted
}

// ReferenceSync brings the stored catalog up to date with the remote one.
// Stored rows are never updated or removed.
type ReferenceSync struct {
	cars    repository.CarRepository
	classes repository.CarClassRepository
	tracks  repository.TrackRepository
	logger  *logger.IngestLogger
}

// NewReferenceSync creates a new reference synchronizer
func NewReferenceSync(repos *repository.Repositories, log *logger.IngestLogger) *ReferenceSync {
	if log == nil {
		log = logger.NewIngestLogger(logrus.StandardLogger())
	}

	return &ReferenceSync{
		cars:    repos.Car,
		classes: repos.CarClass,
		tracks:  repos.Track,
		logger:  log,
	}
}

// Sync inserts every catalog entry missing from the store, one bulk insert
// per entity.
func (s *ReferenceSync) Sync(ctx context.Context, catalog iracing.Catalog) (*ReferenceReport, error) {
	report := &ReferenceReport{}

	missingCars, err := missing(ctx, catalog.Cars, func(c models.Car) int { return c.CarID }, s.cars.Exists)
	if err != nil {
		return report, fmt.Errorf("failed to check cars: %w", err)
	}
	if len(missingCars) > 0 {
		if err := s.cars.InsertBatch(ctx, missingCars); err != nil {
			return report, err
		}
	}
	report.CarsInserted = len(missingCars)
	s.record("cars", len(catalog.Cars), report.CarsInserted)

	missingClasses, err := missing(ctx, catalog.CarClasses, func(c models.CarClass) int { return c.CarClassID }, s.classes.Exists)
	if err != nil {
		return report, fmt.Errorf("failed to check car classes: %w", err)
	}
	if len(missingClasses) > 0 {
		if err := s.classes.InsertBatch(ctx, missingClasses); err != nil {
			return report, err
		}
	}
	report.CarClassesInserted = len(missingClasses)
	s.record("carclasses", len(catalog.CarClasses), report.CarClassesInserted)

	missingTracks, err := missing(ctx, catalog.Tracks, func(t models.Track) int { return t.TrackID }, s.tracks.Exists)
	if err != nil {
		return report, fmt.Errorf("failed to check tracks: %w", err)
	}
	if len(missingTracks) > 0 {
		if err := s.tracks.InsertBatch(ctx, missingTracks); err != nil {
			return report, err
		}
	}
	report.TracksInserted = len(missingTracks)
	s.record("tracks", len(catalog.Tracks), report.TracksInserted)

	return report, nil
}

func (s *ReferenceSync) record(entity string, catalogSize, inserted int) {
	metrics.RecordReferenceInserted(entity, inserted)
	s.logger.LogReferenceSynced(entity, catalogSize, inserted)
}

// missing returns the entries whose id is not yet stored, keeping catalog
// order and dropping repeated ids.
func missing[T any](ctx context.Context, entries []T, id func(T) int, exists func(context.Context, int) (bool, error)) ([]T, error) {
	var out []T
	seen := make(map[int]struct{}, len(entries))
	for _, entry := range entries {
		key := id(entry)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		ok, err := exists(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			out = append(out, entry)
		}
	}
	return out, nil
}
