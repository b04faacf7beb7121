package iracing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/results-collector/internal/models"
)

const resultsArchivePath = "/memberstats/member/GetResults"

// ArchivePageSize is the number of archive rows the site returns per page.
const ArchivePageSize = 25

// Race categories accepted by the results archive.
const (
	CategoryOval   = 1
	CategoryRoad   = 2
	CategoryDirt   = 3
	CategoryRallyX = 4
)

const rowCountField = "rowcount"

// ArchiveQuery selects one page of a season's results archive. All event
// types and all race weeks are included.
type ArchiveQuery struct {
	Season   models.Season
	Category int
	Page     int
}

// Bounds returns the 1-based row window of the page.
func (q ArchiveQuery) Bounds() (lower, upper int) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return (page-1)*ArchivePageSize + 1, page * ArchivePageSize
}

// ArchivePage is one page of archive rows plus the season total.
type ArchivePage struct {
	Events []models.Event
	Total  int
}

// archiveResponse is the site's compressed table format: "m" maps short
// column ids to field names and "d" carries rows keyed by those ids.
type archiveResponse struct {
	M map[string]string          `json:"m"`
	D map[string]json.RawMessage `json:"d"`
}

// ResultsArchive fetches one page of the results archive for a season.
func (c *Client) ResultsArchive(ctx context.Context, query ArchiveQuery) (*ArchivePage, error) {
	lower, upper := query.Bounds()
	category := query.Category
	if category == 0 {
		category = CategoryRoad
	}

	form := url.Values{}
	form.Set("format", "json")
	form.Set("category", strconv.Itoa(category))
	form.Set("seasonyear", strconv.Itoa(query.Season.Year))
	form.Set("seasonquarter", strconv.Itoa(query.Season.Quarter))
	form.Set("raceweek", "-1")
	form.Set("sort", "start_time")
	form.Set("order", "asc")
	form.Set("lowerbound", strconv.Itoa(lower))
	form.Set("upperbound", strconv.Itoa(upper))

	c.logger.WithFields(logrus.Fields{
		"season": query.Season.String(),
		"page":   query.Page,
	}).Debug("Fetching results archive page")

	resp, err := c.httpClient.Post(ctx, c.baseURL+resultsArchivePath, formContentType, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, NewAPIError(resultsArchivePath, 0, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewAPIError(resultsArchivePath, resp.StatusCode, "unexpected status", nil)
	}

	var payload archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewAPIError(resultsArchivePath, resp.StatusCode, "failed to decode response", err)
	}

	return parseArchive(payload)
}

func parseArchive(payload archiveResponse) (*ArchivePage, error) {
	page := &ArchivePage{}

	rawRows, ok := payload.D["r"]
	if !ok {
		return page, nil
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(rawRows, &rows); err != nil {
		return nil, NewAPIError(resultsArchivePath, 0, "malformed archive rows", err)
	}

	named := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		named = append(named, remapColumns(row, payload.M))
	}

	if err := decodeRecords(named, &page.Events, "mapstructure", true); err != nil {
		return nil, NewAPIError(resultsArchivePath, 0, "malformed archive row", err)
	}

	total, err := archiveTotal(payload, named)
	if err != nil {
		return nil, err
	}
	page.Total = total

	return page, nil
}

// remapColumns replaces short column ids with field names. Unknown ids are
// kept as-is.
func remapColumns(row map[string]interface{}, columns map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(row))
	for k, v := range row {
		if name, ok := columns[k]; ok {
			out[name] = v
			continue
		}
		out[k] = v
	}
	return out
}

// archiveTotal reads the season row count. The site reports it next to the
// rows under the id mapped to "rowcount" and also repeats it on every row.
func archiveTotal(payload archiveResponse, rows []map[string]interface{}) (int, error) {
	for id, name := range payload.M {
		if name != rowCountField {
			continue
		}
		raw, ok := payload.D[id]
		if !ok {
			break
		}
		var total json.Number
		if err := json.Unmarshal(raw, &total); err != nil {
			return 0, NewAPIError(resultsArchivePath, 0, "malformed row count", err)
		}
		n, err := total.Int64()
		if err != nil {
			return 0, NewAPIError(resultsArchivePath, 0, "malformed row count", err)
		}
		return int(n), nil
	}

	if len(rows) > 0 {
		if v, ok := rows[0][rowCountField]; ok {
			if f, ok := v.(float64); ok {
				return int(f), nil
			}
			return 0, NewAPIError(resultsArchivePath, 0, fmt.Sprintf("malformed row count %v", v), nil)
		}
	}

	return len(rows), nil
}
