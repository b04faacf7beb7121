package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// IngestLogger records collection milestones and rejected data.
type IngestLogger struct {
	*logrus.Entry
}

// NewIngestLogger creates a new ingest logger.
func NewIngestLogger(baseLogger *logrus.Logger) *IngestLogger {
	return &IngestLogger{
		Entry: baseLogger.WithField("component", "ingest"),
	}
}

// WithRun scopes subsequent entries to a pipeline run.
func (il *IngestLogger) WithRun(runID string) *IngestLogger {
	return &IngestLogger{Entry: il.WithField("run_id", runID)}
}

// LogReferenceSynced logs the outcome of one catalog entity sync.
func (il *IngestLogger) LogReferenceSynced(entity string, catalogSize, inserted int) {
	il.WithFields(logrus.Fields{
		"entity":       entity,
		"catalog_size": catalogSize,
		"inserted":     inserted,
	}).Info("Reference data synchronized")
}

// LogSeasonHarvested logs a completed season traversal.
func (il *IngestLogger) LogSeasonHarvested(season string, total, inserted, duplicates, pages int) {
	il.WithFields(logrus.Fields{
		"season":     season,
		"total":      total,
		"inserted":   inserted,
		"duplicates": duplicates,
		"pages":      pages,
	}).Info("Season events harvested")
}

// LogSeasonFailed logs a season that was abandoned.
func (il *IngestLogger) LogSeasonFailed(season string, err error) {
	il.WithFields(logrus.Fields{
		"season": season,
		"error":  err.Error(),
	}).Error("Season harvest failed")
}

// LogSessionSkipped logs a subsession that produced no results.
func (il *IngestLogger) LogSessionSkipped(subsessionID int64, reason string) {
	il.WithFields(logrus.Fields{
		"subsession_id": subsessionID,
		"reason":        reason,
	}).Debug("Session skipped")
}

// LogResultRejected logs a participant row the store refused, together with
// the row itself.
func (il *IngestLogger) LogResultRejected(subsessionID, custID int64, row interface{}, err error) {
	il.WithFields(logrus.Fields{
		"subsession_id": subsessionID,
		"cust_id":       custID,
		"row":           row,
		"error":         err.Error(),
	}).Warn("Result row rejected")
}

// LogRunCompleted logs the end of a pipeline run.
func (il *IngestLogger) LogRunCompleted(seasons, failedSeasons, results int, duration time.Duration) {
	il.WithFields(logrus.Fields{
		"seasons":        seasons,
		"failed_seasons": failedSeasons,
		"results":        results,
		"duration_ms":    duration.Milliseconds(),
	}).Info("Collection run completed")
}
