package iracing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/yourusername/results-collector/internal/models"
)

const eventResultsPath = "/membersite/member/GetEventResultsAsCSV"

// ResultStatus says whether a subsession's results sheet could be read.
type ResultStatus int

const (
	ResultsFound ResultStatus = iota
	ResultsUnavailable
)

func (s ResultStatus) String() string {
	switch s {
	case ResultsFound:
		return "found"
	case ResultsUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// EventResults is a subsession results sheet. When Status is
// ResultsUnavailable, Reason says why and the other fields are empty.
type EventResults struct {
	SubsessionID int64
	Status       ResultStatus
	Reason       string
	Summary      map[string]string
	Header       []string
	Rows         []map[string]string
}

// Unavailable builds the result for a sheet that could not be read.
func Unavailable(subsessionID int64, reason string) *EventResults {
	return &EventResults{SubsessionID: subsessionID, Status: ResultsUnavailable, Reason: reason}
}

// EventResults downloads and parses the CSV results sheet of a subsession.
// Missing or structurally broken sheets come back as ResultsUnavailable;
// only transport problems are returned as errors.
func (c *Client) EventResults(ctx context.Context, subsessionID int64) (*EventResults, error) {
	query := url.Values{}
	query.Set("subsessionid", strconv.FormatInt(subsessionID, 10))
	query.Set("simsesnum", "0")
	query.Set("includeSummary", "1")

	resp, err := c.httpClient.Get(ctx, c.baseURL+eventResultsPath+"?"+query.Encode())
	if err != nil {
		return nil, NewAPIError(eventResultsPath, 0, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Unavailable(subsessionID, "not found"), nil
	case resp.StatusCode != http.StatusOK:
		return nil, NewAPIError(eventResultsPath, resp.StatusCode, "unexpected status", nil)
	}

	return ParseEventResults(subsessionID, resp.Body)
}

// ParseEventResults reads a results sheet. The layout is a summary header
// row, a summary value row, a blank line, the participant header row and
// then one row per participant.
func ParseEventResults(subsessionID int64, r io.Reader) (*EventResults, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return Unavailable(subsessionID, fmt.Sprintf("malformed sheet: %v", err)), nil
		}
		return nil, NewAPIError(eventResultsPath, 0, "failed to read results sheet", err)
	}

	// csv.Reader drops the blank separator line.
	if len(records) < 4 {
		return Unavailable(subsessionID, fmt.Sprintf("sheet has %d rows", len(records))), nil
	}

	summaryHeader := NormalizeHeader(records[0])
	if len(records[1]) != len(summaryHeader) {
		return Unavailable(subsessionID, "summary row does not match its header"), nil
	}

	results := &EventResults{
		SubsessionID: subsessionID,
		Status:       ResultsFound,
		Summary:      zipRow(summaryHeader, records[1]),
		Header:       NormalizeHeader(records[2]),
	}

	for i, record := range records[3:] {
		if len(record) != len(results.Header) {
			return Unavailable(subsessionID, fmt.Sprintf("participant row %d has %d fields, want %d", i+1, len(record), len(results.Header))), nil
		}
		results.Rows = append(results.Rows, zipRow(results.Header, record))
	}

	return results, nil
}

// NormalizeHeader lowercases column names and strips everything but letters
// and digits: "Fin Pos" becomes "finpos", "Weight Penalty (KG)" becomes
// "weightpenaltykg". When two columns collapse to the same name the later one
// is renamed with a numeric suffix.
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		var b strings.Builder
		for _, r := range strings.ToLower(h) {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				b.WriteRune(r)
			}
		}
		name := b.String()
		seen[name]++
		if n := seen[name]; n > 1 {
			name = name + strconv.Itoa(n)
		}
		out[i] = name
	}
	return out
}

func zipRow(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, name := range header {
		row[name] = strings.TrimSpace(record[i])
	}
	return row
}

// DecodeResultRow maps a participant row onto an EventResult. Lap time
// columns are left for the caller to normalize.
func DecodeResultRow(subsessionID int64, row map[string]string) (*models.EventResult, error) {
	result := &models.EventResult{}
	if err := decodeRecords(row, result, "mapstructure", false); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRecord, err)
	}
	result.SubsessionID = subsessionID
	return result, nil
}
