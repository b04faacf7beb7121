package service

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/results-collector/internal/database"
	"github.com/yourusername/results-collector/internal/iracing"
	"github.com/yourusername/results-collector/internal/logger"
	"github.com/yourusername/results-collector/internal/models"
	"github.com/yourusername/results-collector/internal/repository"
)

// fakeStats serves archives and results sheets from memory.
type fakeStats struct {
	mu            sync.Mutex
	authenticated bool
	catalog       iracing.Catalog
	archives      map[models.Season][]models.Event
	archiveErrs   map[models.Season]error
	sheets        map[int64]*iracing.EventResults
	sheetErrs     map[int64]error
	archiveCalls  map[models.Season]int
	sheetCalls    map[int64]int
}

func newFakeStats() *fakeStats {
	return &fakeStats{
		authenticated: true,
		archives:      make(map[models.Season][]models.Event),
		archiveErrs:   make(map[models.Season]error),
		sheets:        make(map[int64]*iracing.EventResults),
		sheetErrs:     make(map[int64]error),
		archiveCalls:  make(map[models.Season]int),
		sheetCalls:    make(map[int64]int),
	}
}

func (f *fakeStats) Login(context.Context) error { return nil }

func (f *fakeStats) IsAuthenticated() bool { return f.authenticated }

func (f *fakeStats) Catalog() iracing.Catalog { return f.catalog }

func (f *fakeStats) ResultsArchive(_ context.Context, q iracing.ArchiveQuery) (*iracing.ArchivePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.archiveCalls[q.Season]++
	if err := f.archiveErrs[q.Season]; err != nil {
		return nil, err
	}

	all := f.archives[q.Season]
	lower, upper := q.Bounds()
	page := &iracing.ArchivePage{Total: len(all)}
	if lower-1 < len(all) {
		if upper > len(all) {
			upper = len(all)
		}
		page.Events = append([]models.Event(nil), all[lower-1:upper]...)
	}
	return page, nil
}

func (f *fakeStats) EventResults(_ context.Context, subsessionID int64) (*iracing.EventResults, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sheetCalls[subsessionID]++
	if err := f.sheetErrs[subsessionID]; err != nil {
		return nil, err
	}
	if sheet, ok := f.sheets[subsessionID]; ok {
		return sheet, nil
	}
	return iracing.Unavailable(subsessionID, "no results sheet"), nil
}

func (f *fakeStats) totalArchiveCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.archiveCalls {
		n += c
	}
	return n
}

func archiveEvent(season models.Season, subsessionID, custID int64, carClassID int) models.Event {
	return models.Event{
		SubsessionID:    subsessionID,
		SessionID:       subsessionID * 10,
		SeasonID:        2000 + season.Quarter,
		SeriesID:        116,
		SeasonYear:      season.Year,
		SeasonQuarter:   season.Quarter,
		RaceWeekNum:     2,
		RawStartTime:    1556668800000,
		StrengthOfField: 1700,
		CustID:          custID,
		CarClassID:      carClassID,
		TrackID:         47,
		CatID:           iracing.CategoryRoad,
		OfficialSession: 1,
	}
}

func resultRow(custID, teamID string, carClassID, name, fastest string) map[string]string {
	return map[string]string{
		"finpos":         "1",
		"carid":          "1",
		"carclassid":     carClassID,
		"teamid":         teamID,
		"custid":         custID,
		"name":           name,
		"qualifytime":    "00.000",
		"averagelaptime": "1:01.250",
		"fastestlaptime": fastest,
		"interval":       "",
		"oldirating":     "",
		"seriesname":     "Skip Barber Race Series",
	}
}

func foundSheet(subsessionID int64, rows ...map[string]string) *iracing.EventResults {
	return &iracing.EventResults{
		SubsessionID: subsessionID,
		Status:       iracing.ResultsFound,
		Rows:         rows,
	}
}

type testStore struct {
	db    *gorm.DB
	repos *repository.Repositories
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)

	repos, err := repository.NewGormRepositories(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	return &testStore{db: db, repos: repos}
}

func newTestLogger() *logger.IngestLogger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	return logger.NewIngestLogger(base)
}
