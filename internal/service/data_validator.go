package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/results-collector/internal/models"
)

// DataValidator checks decoded archive and result rows before they are
// stored.
type DataValidator struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() *DataValidator {
	return &DataValidator{}
}

// ValidateEvent checks an archive row fetched for season.
func (v *DataValidator) ValidateEvent(event *models.Event, season models.Season) []string {
	var errors []string

	if event.SubsessionID <= 0 {
		errors = append(errors, fmt.Sprintf("subsessionid must be positive, got %d", event.SubsessionID))
	}

	if event.CustID == 0 {
		errors = append(errors, "custid is required")
	}

	if event.CarClassID < 0 {
		errors = append(errors, fmt.Sprintf("carclassid cannot be negative, got %d", event.CarClassID))
	}

	if event.SeasonYear != season.Year || event.SeasonQuarter != season.Quarter {
		errors = append(errors, fmt.Sprintf("row belongs to season %d-%d, expected %s",
			event.SeasonYear, event.SeasonQuarter, season))
	}

	return errors
}

// ValidateResult checks a participant row from a results sheet.
func (v *DataValidator) ValidateResult(result *models.EventResult) []string {
	var errors []string

	if result.SubsessionID <= 0 {
		errors = append(errors, fmt.Sprintf("subsessionid must be positive, got %d", result.SubsessionID))
	}

	if result.CustID == 0 {
		errors = append(errors, "custid is required")
	}

	// Team rows are keyed by team id alone.
	if result.IsTeam() && result.TeamID == 0 {
		errors = append(errors, "team row without teamid")
	}

	if result.FinPos < 0 {
		errors = append(errors, fmt.Sprintf("finpos cannot be negative, got %d", result.FinPos))
	}

	if result.LapsComp < 0 || result.Inc < 0 {
		errors = append(errors, "lap and incident counts cannot be negative")
	}

	return errors
}

// invalidRecord wraps validation messages into an ErrInvalidRecord error.
func invalidRecord(errs []string) error {
	return fmt.Errorf("%w: %s", models.ErrInvalidRecord, strings.Join(errs, "; "))
}
