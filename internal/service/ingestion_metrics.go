package service

import (
	"fmt"
	"time"
)

// IngestionSummary is the outcome of one full pipeline run.
type IngestionSummary struct {
	RunID     string
	StartTime time.Time
	Duration  time.Duration
	Reference *ReferenceReport
	Harvest   *HarvestReport
}

// NewIngestionSummary starts a summary for the given run.
func NewIngestionSummary(runID string) *IngestionSummary {
	return &IngestionSummary{
		RunID:     runID,
		StartTime: time.Now(),
	}
}

// Finish records the run duration.
func (s *IngestionSummary) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// Seasons returns the number of seasons harvested successfully.
func (s *IngestionSummary) Seasons() int {
	if s.Harvest == nil {
		return 0
	}
	return len(s.Harvest.Seasons)
}

// FailedSeasons returns the number of seasons that failed.
func (s *IngestionSummary) FailedSeasons() int {
	if s.Harvest == nil {
		return 0
	}
	return s.Harvest.Failed()
}

// Results returns the participant rows processed.
func (s *IngestionSummary) Results() int {
	if s.Harvest == nil {
		return 0
	}
	return s.Harvest.Results()
}

// String returns a formatted string representation of the summary
func (s *IngestionSummary) String() string {
	reference := 0
	if s.Reference != nil {
		reference = s.Reference.Total()
	}

	return fmt.Sprintf(
		"IngestionSummary{Run=%s, Reference=%d, Seasons=%d, FailedSeasons=%d, Results=%d, Duration=%v}",
		s.RunID,
		reference,
		s.Seasons(),
		s.FailedSeasons(),
		s.Results(),
		s.Duration,
	)
}
