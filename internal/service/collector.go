package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/results-collector/internal/iracing"
	"github.com/yourusername/results-collector/internal/logger"
	"github.com/yourusername/results-collector/internal/metrics"
	"github.com/yourusername/results-collector/internal/models"
	"github.com/yourusername/results-collector/internal/repository"
)

// DefaultUnavailableTTL is how long a subsession without a results sheet is
// left alone before it is fetched again.
const DefaultUnavailableTTL = 6 * time.Hour

// lapTimeColumns are the results sheet columns holding lap times.
var lapTimeColumns = []string{"qualifytime", "averagelaptime", "fastestlaptime"}

// CollectReport summarizes one Collect call.
type CollectReport struct {
	Sessions        int
	Collected       int
	SkippedExisting int
	Unavailable     int
	// Rows is every participant row processed, teams included.
	Rows            int
	ResultsInserted int
	Duplicates      int
	TeamsUpserted   int
	Rejected        int
}

// Collector fetches the per-participant results of harvested subsessions.
type Collector struct {
	client        iracing.StatsService
	events        repository.EventRepository
	results       repository.EventResultRepository
	teams         repository.TeamRepository
	series        repository.SeriesRepository
	seriesResults repository.SeriesResultRepository
	unavailable   *cache.Cache
	validator     *DataValidator
	progress      ProgressReporter
	logger        *logger.IngestLogger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithUnavailableTTL sets how long unavailable sessions are remembered.
func WithUnavailableTTL(ttl time.Duration) CollectorOption {
	return func(c *Collector) {
		c.unavailable = cache.New(ttl, 2*ttl)
	}
}

// WithCollectorProgress sets the progress reporter.
func WithCollectorProgress(p ProgressReporter) CollectorOption {
	return func(c *Collector) {
		c.progress = p
	}
}

// NewCollector creates a new result collector
func NewCollector(client iracing.StatsService, repos *repository.Repositories, log *logger.IngestLogger, opts ...CollectorOption) *Collector {
	if log == nil {
		log = logger.NewIngestLogger(logrus.StandardLogger())
	}

	c := &Collector{
		client:        client,
		events:        repos.Event,
		results:       repos.EventResult,
		teams:         repos.Team,
		series:        repos.Series,
		seriesResults: repos.SeriesResult,
		unavailable:   cache.New(DefaultUnavailableTTL, 2*DefaultUnavailableTTL),
		validator:     NewDataValidator(),
		progress:      NoProgress{},
		logger:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect stores the results of every listed subsession that has none yet.
// A transport error aborts the batch; malformed lap times are returned as
// *LapTimeFormatError.
func (c *Collector) Collect(ctx context.Context, subsessionIDs []int64) (*CollectReport, error) {
	report := &CollectReport{}

	bar := c.progress.Start("Results", len(subsessionIDs))
	defer bar.Finish()

	for _, id := range subsessionIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Sessions++
		err := c.collectSession(ctx, id, report)
		bar.Increment()
		if err != nil {
			return report, err
		}
	}

	c.logger.WithFields(logrus.Fields{
		"sessions": report.Sessions,
		"results":  report.Rows,
		"inserted": report.ResultsInserted,
		"teams":    report.TeamsUpserted,
		"rejected": report.Rejected,
	}).Infof("Race results for %d drivers saved to database", report.Rows)

	return report, nil
}

func (c *Collector) collectSession(ctx context.Context, subsessionID int64, report *CollectReport) error {
	cacheKey := strconv.FormatInt(subsessionID, 10)
	if _, found := c.unavailable.Get(cacheKey); found {
		report.Unavailable++
		metrics.RecordSession(metrics.SessionUnavailable)
		c.logger.LogSessionSkipped(subsessionID, "results recently unavailable")
		return nil
	}

	exists, err := c.results.ExistsForSubsession(ctx, subsessionID)
	if err != nil {
		return fmt.Errorf("failed to check results for subsession %d: %w", subsessionID, err)
	}
	if exists {
		report.SkippedExisting++
		metrics.RecordSession(metrics.SessionSkippedExisting)
		c.logger.LogSessionSkipped(subsessionID, "results already stored")
		return nil
	}

	sheet, err := c.client.EventResults(ctx, subsessionID)
	if err != nil {
		return fmt.Errorf("failed to fetch results for subsession %d: %w", subsessionID, err)
	}
	if sheet.Status == iracing.ResultsUnavailable {
		c.unavailable.SetDefault(cacheKey, sheet.Reason)
		report.Unavailable++
		metrics.RecordSession(metrics.SessionUnavailable)
		c.logger.LogSessionSkipped(subsessionID, sheet.Reason)
		return nil
	}

	fieldSizes := make(map[int]int)
	seriesName := ""
	for _, row := range sheet.Rows {
		result, err := iracing.DecodeResultRow(subsessionID, row)
		if err != nil {
			report.Rejected++
			metrics.RecordResult("rejected")
			c.logger.LogResultRejected(subsessionID, 0, row, err)
			continue
		}
		if err := normalizeLapTimes(result, row); err != nil {
			return err
		}
		if errs := c.validator.ValidateResult(result); len(errs) > 0 {
			report.Rejected++
			metrics.RecordResult("rejected")
			c.logger.LogResultRejected(subsessionID, result.CustID, row, invalidRecord(errs))
			continue
		}

		fieldSizes[result.CarClassID]++
		report.Rows++
		if seriesName == "" {
			seriesName = result.SeriesName
		}

		c.store(ctx, result, row, report)
	}

	report.Collected++
	metrics.RecordSession(metrics.SessionCollected)

	return c.storeSummary(ctx, subsessionID, seriesName, fieldSizes)
}

// store routes a participant row to the team or result table. Store errors
// are logged with the row and do not stop the session.
func (c *Collector) store(ctx context.Context, result *models.EventResult, row map[string]string, report *CollectReport) {
	if result.IsTeam() {
		if err := c.teams.Upsert(ctx, result.Team()); err != nil {
			report.Rejected++
			metrics.RecordResult("rejected")
			c.logger.LogResultRejected(result.SubsessionID, result.CustID, row, err)
			return
		}
		report.TeamsUpserted++
		metrics.RecordTeamUpserted()
		return
	}

	inserted, err := c.results.InsertIgnore(ctx, result)
	switch {
	case err != nil:
		report.Rejected++
		metrics.RecordResult("rejected")
		c.logger.LogResultRejected(result.SubsessionID, result.CustID, row, err)
	case inserted:
		report.ResultsInserted++
		metrics.RecordResult("inserted")
	default:
		report.Duplicates++
		metrics.RecordResult("duplicate")
	}
}

// storeSummary persists the per-class field sizes of a session together
// with its series season.
func (c *Collector) storeSummary(ctx context.Context, subsessionID int64, seriesName string, fieldSizes map[int]int) error {
	if len(fieldSizes) == 0 {
		return nil
	}

	summary, err := c.events.SessionSummary(ctx, subsessionID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.logger.WithField("subsession_id", subsessionID).Debug("No archive row for session, summary not stored")
			return nil
		}
		return fmt.Errorf("failed to load summary for subsession %d: %w", subsessionID, err)
	}

	classes := make([]int, 0, len(fieldSizes))
	for id := range fieldSizes {
		classes = append(classes, id)
	}
	sort.Ints(classes)

	for _, classID := range classes {
		row := &models.SeriesResult{
			SeasonID:        summary.SeasonID,
			WeekNum:         summary.RaceWeekNum,
			StartTime:       summary.RawStartTime,
			CarClassID:      classID,
			TrackID:         summary.TrackID,
			SessionID:       summary.SessionID,
			SubsessionID:    subsessionID,
			OfficialSession: summary.OfficialSession,
			SizeOfField:     fieldSizes[classID],
			StrengthOfField: summary.StrengthOfField,
		}
		if err := c.seriesResults.Upsert(ctx, row); err != nil {
			c.logger.WithError(err).WithField("subsession_id", subsessionID).Warn("Failed to store series result")
		}
	}

	series := &models.Series{
		SeasonID:   summary.SeasonID,
		SeriesID:   summary.SeriesID,
		CatID:      summary.CatID,
		SeriesName: seriesName,
		Multiclass: strconv.FormatBool(len(fieldSizes) > 1),
		Year:       summary.SeasonYear,
		Quarter:    summary.SeasonQuarter,
	}
	if err := c.series.Upsert(ctx, series); err != nil {
		c.logger.WithError(err).WithField("season_id", summary.SeasonID).Warn("Failed to store series")
	}
	return nil
}

// normalizeLapTimes fills the lap time fields of result from the raw row.
func normalizeLapTimes(result *models.EventResult, row map[string]string) error {
	targets := map[string]**float64{
		"qualifytime":    &result.QualifyTime,
		"averagelaptime": &result.AverageLapTime,
		"fastestlaptime": &result.FastestLapTime,
	}
	for _, column := range lapTimeColumns {
		seconds, err := NormalizeLapTime(row[column])
		if err != nil {
			var lapErr *LapTimeFormatError
			if errors.As(err, &lapErr) {
				lapErr.Field = column
				return lapErr
			}
			return err
		}
		*targets[column] = seconds
	}
	return nil
}
