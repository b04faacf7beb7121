package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/results-collector/internal/iracing"
	"github.com/yourusername/results-collector/internal/logger"
	"github.com/yourusername/results-collector/internal/metrics"
	"github.com/yourusername/results-collector/internal/models"
	"github.com/yourusername/results-collector/internal/repository"
)

// ErrNoEvents is returned for a season whose archive is empty.
var ErrNoEvents = errors.New("no events found")

// SeasonReport describes one harvested season.
type SeasonReport struct {
	Season      models.Season
	Total       int
	Inserted    int
	Duplicates  int
	Invalid     int
	Pages       int
	Subsessions int
	Results     *CollectReport
}

// HarvestReport describes a run over several seasons. Seasons that failed
// are absent from Seasons and listed in SeasonErrors.
type HarvestReport struct {
	Seasons      []*SeasonReport
	SeasonErrors *multierror.Error
}

// Failed returns the number of seasons that failed.
func (r *HarvestReport) Failed() int {
	if r.SeasonErrors == nil {
		return 0
	}
	return len(r.SeasonErrors.Errors)
}

// Results returns the participant rows processed across all seasons.
func (r *HarvestReport) Results() int {
	n := 0
	for _, s := range r.Seasons {
		if s.Results != nil {
			n += s.Results.Rows
		}
	}
	return n
}

// Harvester walks the results archive of each season and hands the stored
// subsessions to the Collector.
type Harvester struct {
	client    iracing.StatsService
	events    repository.EventRepository
	collector *Collector
	validator *DataValidator
	progress  ProgressReporter
	logger    *logger.IngestLogger
}

// HarvesterOption configures a Harvester.
type HarvesterOption func(*Harvester)

// WithHarvestProgress sets the progress reporter.
func WithHarvestProgress(p ProgressReporter) HarvesterOption {
	return func(h *Harvester) {
		h.progress = p
	}
}

// NewHarvester creates a new season harvester
func NewHarvester(client iracing.StatsService, events repository.EventRepository, collector *Collector, log *logger.IngestLogger, opts ...HarvesterOption) *Harvester {
	if log == nil {
		log = logger.NewIngestLogger(logrus.StandardLogger())
	}

	h := &Harvester{
		client:    client,
		events:    events,
		collector: collector,
		validator: NewDataValidator(),
		progress:  NoProgress{},
		logger:    log,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run harvests the seasons in order. A failing season is logged and
// recorded in the report; malformed data and cancellation end the run.
func (h *Harvester) Run(ctx context.Context, seasons []models.Season) (*HarvestReport, error) {
	report := &HarvestReport{}

	for _, season := range seasons {
		sr, err := h.HarvestSeason(ctx, season)
		if err != nil {
			if isFatal(ctx, err) {
				return report, err
			}
			metrics.RecordSeason(metrics.SeasonFailed)
			h.logger.LogSeasonFailed(season.String(), err)
			report.SeasonErrors = multierror.Append(report.SeasonErrors, fmt.Errorf("season %s: %w", season, err))
			continue
		}

		metrics.RecordSeason(metrics.SeasonOK)
		report.Seasons = append(report.Seasons, sr)
	}

	return report, nil
}

// HarvestSeason stores every road archive row of the season, then collects
// the results of its subsessions.
func (h *Harvester) HarvestSeason(ctx context.Context, season models.Season) (*SeasonReport, error) {
	report := &SeasonReport{Season: season}
	log := h.logger.WithField("season", season.String())

	query := iracing.ArchiveQuery{Season: season, Category: iracing.CategoryRoad, Page: 1}
	page, err := h.client.ResultsArchive(ctx, query)
	if err != nil {
		return report, fmt.Errorf("failed to fetch archive page 1: %w", err)
	}

	report.Total = page.Total
	if report.Total == 0 {
		return report, ErrNoEvents
	}
	log.Infof("Events found: %d", report.Total)

	report.Pages = (report.Total + iracing.ArchivePageSize - 1) / iracing.ArchivePageSize

	bar := h.progress.Start(fmt.Sprintf("Events %s", season), report.Total)
	defer bar.Finish()

	if err := h.storeEvents(ctx, season, page.Events, report, bar); err != nil {
		return report, err
	}

	for n := 2; n <= report.Pages; n++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		query.Page = n
		page, err := h.client.ResultsArchive(ctx, query)
		if err != nil {
			return report, fmt.Errorf("failed to fetch archive page %d: %w", n, err)
		}
		if err := h.storeEvents(ctx, season, page.Events, report, bar); err != nil {
			return report, err
		}
	}

	h.logger.LogSeasonHarvested(season.String(), report.Total, report.Inserted, report.Duplicates, report.Pages)

	ids, err := h.events.DistinctSubsessionIDs(ctx, season)
	if err != nil {
		return report, err
	}
	report.Subsessions = len(ids)
	if len(ids) == 0 {
		log.Info("No races found")
		return report, nil
	}

	log.Infof("Collecting results for %d races", len(ids))
	results, err := h.collector.Collect(ctx, ids)
	report.Results = results
	if err != nil {
		return report, err
	}

	return report, nil
}

func (h *Harvester) storeEvents(ctx context.Context, season models.Season, events []models.Event, report *SeasonReport, bar Progress) error {
	for i := range events {
		if errs := h.validator.ValidateEvent(&events[i], season); len(errs) > 0 {
			report.Invalid++
			metrics.RecordInvalidEvent()
			h.logger.WithFields(logrus.Fields{
				"season":        season.String(),
				"subsession_id": events[i].SubsessionID,
				"cust_id":       events[i].CustID,
				"errors":        errs,
			}).Warn("Archive row rejected")
			bar.Set(report.Inserted + report.Duplicates + report.Invalid)
			continue
		}

		inserted, err := h.events.InsertIgnore(ctx, &events[i])
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			report.Invalid++
			metrics.RecordInvalidEvent()
			h.logger.WithError(err).WithFields(logrus.Fields{
				"season":        season.String(),
				"subsession_id": events[i].SubsessionID,
				"cust_id":       events[i].CustID,
			}).Warn("Failed to store archive row")
			bar.Set(report.Inserted + report.Duplicates + report.Invalid)
			continue
		}
		metrics.RecordEvent(inserted)
		if inserted {
			report.Inserted++
		} else {
			report.Duplicates++
		}
		bar.Set(report.Inserted + report.Duplicates + report.Invalid)
	}
	return nil
}

// isFatal reports whether err must end the whole run rather than one season.
func isFatal(ctx context.Context, err error) bool {
	var lapErr *LapTimeFormatError
	if errors.As(err, &lapErr) {
		return true
	}
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}
