package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// noLapTime is how the results sheet marks a lap time that was never set.
const noLapTime = "00.000"

var (
	sixty          = decimal.NewFromInt(60)
	maxClockMinute = 59
	maxClockSecond = 61
)

// LapTimeFormatError reports a lap time that matches neither accepted form.
// It signals malformed upstream data and is never swallowed by per-season or
// per-session recovery.
type LapTimeFormatError struct {
	Field string
	Value string
	Cause error
}

func (e *LapTimeFormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed lap time %q in %s: %v", e.Value, e.Field, e.Cause)
	}
	return fmt.Sprintf("malformed lap time %q: %v", e.Value, e.Cause)
}

func (e *LapTimeFormatError) Unwrap() error {
	return e.Cause
}

// NewLapTimeFormatError creates a new lap time format error
func NewLapTimeFormatError(value string, cause error) *LapTimeFormatError {
	return &LapTimeFormatError{
		Value: value,
		Cause: cause,
	}
}

// NormalizeLapTime converts a results-sheet lap time into seconds.
//
// "00.000" and "" yield nil. A value containing ':' is read as M:SS.ffffff,
// anything else as plain seconds.
func NormalizeLapTime(raw string) (*float64, error) {
	value := strings.TrimSpace(raw)
	if value == "" || value == noLapTime {
		return nil, nil
	}

	var (
		seconds decimal.Decimal
		err     error
	)
	if strings.Contains(value, ":") {
		seconds, err = parseClockLapTime(value)
	} else {
		seconds, err = decimal.NewFromString(value)
	}
	if err != nil {
		return nil, NewLapTimeFormatError(raw, err)
	}
	if seconds.IsNegative() {
		return nil, NewLapTimeFormatError(raw, fmt.Errorf("negative duration"))
	}

	f := seconds.InexactFloat64()
	return &f, nil
}

// parseClockLapTime reads M:SS.ffffff with the field ranges of a wall clock:
// minutes 0-59, seconds 0-61 and up to six fractional digits.
func parseClockLapTime(value string) (decimal.Decimal, error) {
	minutePart, rest, _ := strings.Cut(value, ":")
	secondPart, fraction, ok := strings.Cut(rest, ".")
	if !ok {
		return decimal.Zero, fmt.Errorf("missing fractional seconds")
	}

	minutes, err := clockField(minutePart, maxClockMinute)
	if err != nil {
		return decimal.Zero, fmt.Errorf("minutes: %w", err)
	}
	secs, err := clockField(secondPart, maxClockSecond)
	if err != nil {
		return decimal.Zero, fmt.Errorf("seconds: %w", err)
	}
	if fraction == "" || len(fraction) > 6 || !isDigits(fraction) {
		return decimal.Zero, fmt.Errorf("fraction %q must be 1-6 digits", fraction)
	}

	micros, _ := strconv.ParseInt(fraction+strings.Repeat("0", 6-len(fraction)), 10, 64)
	total := decimal.NewFromInt(int64(minutes)).Mul(sixty).
		Add(decimal.NewFromInt(int64(secs))).
		Add(decimal.New(micros, -6))
	return total, nil
}

func clockField(s string, limit int) (int, error) {
	if s == "" || len(s) > 2 || !isDigits(s) {
		return 0, fmt.Errorf("%q must be 1-2 digits", s)
	}
	n, _ := strconv.Atoi(s)
	if n > limit {
		return 0, fmt.Errorf("%d out of range 0-%d", n, limit)
	}
	return n, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
