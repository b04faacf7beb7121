package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/results-collector/internal/database"
	"github.com/yourusername/results-collector/internal/models"
)

func setupSQLite(t *testing.T) *Repositories {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)

	repos, err := NewGormRepositories(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	return repos
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func sampleEvent(subsessionID, custID int64, carClassID int) *models.Event {
	return &models.Event{
		SubsessionID:    subsessionID,
		SessionID:       subsessionID * 10,
		SeasonID:        2389,
		SeriesID:        116,
		SeasonYear:      2019,
		SeasonQuarter:   2,
		RaceWeekNum:     3,
		RawStartTime:    1556668800000,
		StrengthOfField: 1850,
		CustID:          custID,
		DisplayName:     "Test Driver",
		CarClassID:      carClassID,
		TrackID:         47,
		CatID:           2,
		OfficialSession: 1,
	}
}

func TestEventRepositoryInsertIgnore(t *testing.T) {
	repos := setupSQLite(t)
	ctx := testContext(t)

	inserted, err := repos.Event.InsertIgnore(ctx, sampleEvent(100, 1, 74))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repos.Event.InsertIgnore(ctx, sampleEvent(100, 1, 74))
	require.NoError(t, err)
	assert.False(t, inserted, "duplicate key must be ignored")

	inserted, err = repos.Event.InsertIgnore(ctx, sampleEvent(100, 1, 75))
	require.NoError(t, err)
	assert.True(t, inserted, "car class is part of the key")
}

func TestEventRepositoryDistinctSubsessionIDs(t *testing.T) {
	repos := setupSQLite(t)
	ctx := testContext(t)

	for _, e := range []*models.Event{
		sampleEvent(300, 1, 74),
		sampleEvent(100, 1, 74),
		sampleEvent(100, 2, 74),
		sampleEvent(200, 3, 74),
	} {
		_, err := repos.Event.InsertIgnore(ctx, e)
		require.NoError(t, err)
	}

	other := sampleEvent(400, 1, 74)
	other.SeasonQuarter = 3
	_, err := repos.Event.InsertIgnore(ctx, other)
	require.NoError(t, err)

	ids, err := repos.Event.DistinctSubsessionIDs(ctx, models.Season{Year: 2019, Quarter: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200, 300}, ids)

	ids, err = repos.Event.DistinctSubsessionIDs(ctx, models.Season{Year: 2020, Quarter: 1})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEventRepositorySessionSummary(t *testing.T) {
	repos := setupSQLite(t)
	ctx := testContext(t)

	_, err := repos.Event.SessionSummary(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = repos.Event.InsertIgnore(ctx, sampleEvent(100, 5, 74))
	require.NoError(t, err)

	summary, err := repos.Event.SessionSummary(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), summary.SubsessionID)
	assert.Equal(t, int64(1000), summary.SessionID)
	assert.Equal(t, 2389, summary.SeasonID)
	assert.Equal(t, 116, summary.SeriesID)
	assert.Equal(t, 1850, summary.StrengthOfField)
	assert.Equal(t, 3, summary.RaceWeekNum)
}

func TestEventResultRepository(t *testing.T) {
	repos := setupSQLite(t)
	ctx := testContext(t)

	exists, err := repos.EventResult.ExistsForSubsession(ctx, 100)
	require.NoError(t, err)
	assert.False(t, exists)

	fast := 92.5
	result := &models.EventResult{SubsessionID: 100, CustID: 101, Name: "A Driver", FastestLapTime: &fast}

	inserted, err := repos.EventResult.InsertIgnore(ctx, result)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repos.EventResult.InsertIgnore(ctx, result)
	require.NoError(t, err)
	assert.False(t, inserted)

	_, err = repos.EventResult.InsertIgnore(ctx, &models.EventResult{SubsessionID: 100, CustID: 102})
	require.NoError(t, err)

	exists, err = repos.EventResult.ExistsForSubsession(ctx, 100)
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repos.EventResult.CountBySubsession(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTeamRepositoryUpsertReplacesName(t *testing.T) {
	repos := setupSQLite(t)
	ctx := testContext(t)

	require.NoError(t, repos.Team.Upsert(ctx, &models.Team{ID: 9, Name: "Old Name"}))
	require.NoError(t, repos.Team.Upsert(ctx, &models.Team{ID: 9, Name: "New Name"}))

	var teams []models.Team
	gormRepo := repos.Team.(*GormTeamRepository)
	require.NoError(t, gormRepo.db.Find(&teams).Error)
	require.Len(t, teams, 1)
	assert.Equal(t, "New Name", teams[0].Name)
}

func TestSeriesRepositoryUpsertAndList(t *testing.T) {
	repos := setupSQLite(t)
	ctx := testContext(t)

	require.NoError(t, repos.Series.Upsert(ctx, &models.Series{SeasonID: 2390, SeriesName: "B Series"}))
	require.NoError(t, repos.Series.Upsert(ctx, &models.Series{SeasonID: 2389, SeriesName: "A Series"}))
	require.NoError(t, repos.Series.Upsert(ctx, &models.Series{SeasonID: 2390, SeriesName: "B Series Renamed"}))

	list, err := repos.Series.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2389, list[0].SeasonID)
	assert.Equal(t, "B Series Renamed", list[1].SeriesName)
}

func TestSeriesResultRepositoryUpsert(t *testing.T) {
	repos := setupSQLite(t)
	ctx := testContext(t)

	row := &models.SeriesResult{SubsessionID: 100, CarClassID: 74, SizeOfField: 10}
	require.NoError(t, repos.SeriesResult.Upsert(ctx, row))

	row.SizeOfField = 12
	require.NoError(t, repos.SeriesResult.Upsert(ctx, row))

	var stored []models.SeriesResult
	gormRepo := repos.SeriesResult.(*GormSeriesResultRepository)
	require.NoError(t, gormRepo.db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, 12, stored[0].SizeOfField)
}

func TestReferenceRepositories(t *testing.T) {
	repos := setupSQLite(t)
	ctx := testContext(t)

	tests := []struct {
		name   string
		insert func() error
		exists func(id int) (bool, error)
		id     int
	}{
		{
			name:   "cars",
			insert: func() error { return repos.Car.InsertBatch(ctx, []models.Car{{CarID: 1, Name: "Skip Barber"}}) },
			exists: func(id int) (bool, error) { return repos.Car.Exists(ctx, id) },
			id:     1,
		},
		{
			name: "car classes",
			insert: func() error {
				return repos.CarClass.InsertBatch(ctx, []models.CarClass{{CarClassID: 74, Name: "GT3"}})
			},
			exists: func(id int) (bool, error) { return repos.CarClass.Exists(ctx, id) },
			id:     74,
		},
		{
			name:   "tracks",
			insert: func() error { return repos.Track.InsertBatch(ctx, []models.Track{{TrackID: 47, Name: "Spa"}}) },
			exists: func(id int) (bool, error) { return repos.Track.Exists(ctx, id) },
			id:     47,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := tt.exists(tt.id)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, tt.insert())

			ok, err = tt.exists(tt.id)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = tt.exists(tt.id + 1000)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}

	require.NoError(t, repos.Car.InsertBatch(ctx, nil))
}

func TestRepositoriesPing(t *testing.T) {
	repos := setupSQLite(t)
	assert.NoError(t, repos.Ping(testContext(t)))
}

func TestPostgresRepositoriesIntegration(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	require.NoError(t, err)
	ctx := testContext(t)

	inserted, err := repos.Event.InsertIgnore(ctx, sampleEvent(100, 1, 74))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repos.Event.InsertIgnore(ctx, sampleEvent(100, 1, 74))
	require.NoError(t, err)
	assert.False(t, inserted)

	ids, err := repos.Event.DistinctSubsessionIDs(ctx, models.Season{Year: 2019, Quarter: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{100}, ids)

	require.NoError(t, repos.Car.InsertBatch(ctx, []models.Car{{CarID: 1, Name: "Skip Barber"}}))
	ok, err := repos.Car.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repos.Team.Upsert(ctx, &models.Team{ID: 9, Name: "Old"}))
	require.NoError(t, repos.Team.Upsert(ctx, &models.Team{ID: 9, Name: "New"}))
}
