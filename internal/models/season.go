package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Season is a (year, quarter) pair identifying a competitive period.
type Season struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// ParseSeason parses the "YYYY-Q" form used in configuration, e.g. "2019-2".
func ParseSeason(s string) (Season, error) {
	yearStr, quarterStr, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Season{}, fmt.Errorf("%w: %q", ErrInvalidSeason, s)
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return Season{}, fmt.Errorf("%w: %q", ErrInvalidSeason, s)
	}
	quarter, err := strconv.Atoi(quarterStr)
	if err != nil {
		return Season{}, fmt.Errorf("%w: %q", ErrInvalidSeason, s)
	}

	season := Season{Year: year, Quarter: quarter}
	if err := season.Validate(); err != nil {
		return Season{}, err
	}
	return season, nil
}

// ParseSeasons parses a list of "YYYY-Q" strings.
func ParseSeasons(values []string) ([]Season, error) {
	seasons := make([]Season, 0, len(values))
	for _, v := range values {
		season, err := ParseSeason(v)
		if err != nil {
			return nil, err
		}
		seasons = append(seasons, season)
	}
	return seasons, nil
}

// CrossSeasons builds every (year, quarter) combination, years outermost.
func CrossSeasons(years, quarters []int) ([]Season, error) {
	seasons := make([]Season, 0, len(years)*len(quarters))
	for _, y := range years {
		for _, q := range quarters {
			season := Season{Year: y, Quarter: q}
			if err := season.Validate(); err != nil {
				return nil, err
			}
			seasons = append(seasons, season)
		}
	}
	return seasons, nil
}

// Validate checks the quarter range and that the year is plausible.
func (s Season) Validate() error {
	if s.Year < 2008 || s.Year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidSeason, s.Year)
	}
	if s.Quarter < 1 || s.Quarter > 4 {
		return fmt.Errorf("%w: quarter %d out of range", ErrInvalidSeason, s.Quarter)
	}
	return nil
}

func (s Season) String() string {
	return fmt.Sprintf("%d-%d", s.Year, s.Quarter)
}
