package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/results-collector/internal/iracing"
	"github.com/yourusername/results-collector/internal/logger"
	"github.com/yourusername/results-collector/internal/metrics"
	"github.com/yourusername/results-collector/internal/models"
	"github.com/yourusername/results-collector/internal/service"
)

// Synchronizer brings the stored catalog in line with a snapshot.
type Synchronizer interface {
	Sync(ctx context.Context, catalog iracing.Catalog) (*service.ReferenceReport, error)
}

// SeasonRunner harvests a list of seasons.
type SeasonRunner interface {
	Run(ctx context.Context, seasons []models.Season) (*service.HarvestReport, error)
}

// Orchestrator runs one full collection: reference sync, then every
// configured season.
type Orchestrator struct {
	client    iracing.StatsService
	sync      Synchronizer
	harvester SeasonRunner
	seasons   []models.Season
	logger    *logger.IngestLogger
}

// NewOrchestrator creates a new pipeline orchestrator
func NewOrchestrator(
	client iracing.StatsService,
	sync Synchronizer,
	harvester SeasonRunner,
	seasons []models.Season,
	log *logger.IngestLogger,
) *Orchestrator {
	if log == nil {
		log = logger.NewIngestLogger(logrus.StandardLogger())
	}

	return &Orchestrator{
		client:    client,
		sync:      sync,
		harvester: harvester,
		seasons:   seasons,
		logger:    log,
	}
}

// Start runs the pipeline on a background task.
func (o *Orchestrator) Start(ctx context.Context) *Task {
	task := NewTask("collect", func(ctx context.Context) error {
		_, err := o.Run(ctx)
		return err
	})
	// A fresh task cannot already be started.
	_ = task.Start(ctx)
	return task
}

// Run executes the pipeline on the calling goroutine.
func (o *Orchestrator) Run(ctx context.Context) (*service.IngestionSummary, error) {
	summary := service.NewIngestionSummary(uuid.NewString())
	log := o.logger.WithRun(summary.RunID)

	err := o.run(ctx, summary, log)
	summary.Finish()

	status := "success"
	if err != nil {
		status = "failure"
		log.WithError(err).Error("Collection run failed")
	}
	metrics.RecordRun(status, summary.Duration.Seconds(), float64(time.Now().Unix()))
	log.LogRunCompleted(summary.Seasons(), summary.FailedSeasons(), summary.Results(), summary.Duration)

	return summary, err
}

func (o *Orchestrator) run(ctx context.Context, summary *service.IngestionSummary, log *logger.IngestLogger) error {
	if !o.client.IsAuthenticated() {
		return iracing.NewAuthenticationError("Login failed. Please check your credentials.", nil)
	}

	log.Info("Updating service information")
	reference, err := o.sync.Sync(ctx, o.client.Catalog())
	summary.Reference = reference
	if err != nil {
		return fmt.Errorf("reference sync failed: %w", err)
	}

	if len(o.seasons) == 0 {
		log.Warn("No seasons selected")
		return nil
	}

	harvest, err := o.harvester.Run(ctx, o.seasons)
	summary.Harvest = harvest
	return err
}
