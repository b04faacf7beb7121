package iracing

import (
	"context"
	"fmt"

	"github.com/yourusername/results-collector/internal/models"
)

// Catalog is an immutable snapshot of the site's reference data.
type Catalog struct {
	Cars       []models.Car
	CarClasses []models.CarClass
	Tracks     []models.Track
}

// IsEmpty reports whether nothing was loaded.
func (c Catalog) IsEmpty() bool {
	return len(c.Cars) == 0 && len(c.CarClasses) == 0 && len(c.Tracks) == 0
}

func (c *Client) loadCatalog(ctx context.Context) (Catalog, error) {
	var catalog Catalog

	cars, err := c.fetchCatalogEntries(ctx, c.config.CarsPath)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to load cars: %w", err)
	}
	if err := decodeRecords(cars, &catalog.Cars, "json", true); err != nil {
		return Catalog{}, NewAPIError(c.config.CarsPath, 0, "malformed car entry", err)
	}

	classes, err := c.fetchCatalogEntries(ctx, c.config.CarClassesPath)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to load car classes: %w", err)
	}
	if err := decodeRecords(classes, &catalog.CarClasses, "json", true); err != nil {
		return Catalog{}, NewAPIError(c.config.CarClassesPath, 0, "malformed car class entry", err)
	}

	tracks, err := c.fetchCatalogEntries(ctx, c.config.TracksPath)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to load tracks: %w", err)
	}
	if err := decodeRecords(tracks, &catalog.Tracks, "json", true); err != nil {
		return Catalog{}, NewAPIError(c.config.TracksPath, 0, "malformed track entry", err)
	}

	return catalog, nil
}

// fetchCatalogEntries accepts either a bare array or an object keyed by id,
// which is how the site embeds its car and track tables.
func (c *Client) fetchCatalogEntries(ctx context.Context, path string) ([]map[string]interface{}, error) {
	var raw interface{}
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, err
	}

	switch v := raw.(type) {
	case []interface{}:
		return toRecords(path, v)
	case map[string]interface{}:
		entries := make([]interface{}, 0, len(v))
		for _, key := range sortedKeys(v) {
			entries = append(entries, v[key])
		}
		return toRecords(path, entries)
	default:
		return nil, NewAPIError(path, 0, fmt.Sprintf("unexpected catalog payload %T", raw), nil)
	}
}

func toRecords(path string, entries []interface{}) ([]map[string]interface{}, error) {
	records := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]interface{})
		if !ok {
			return nil, NewAPIError(path, 0, fmt.Sprintf("unexpected catalog entry %T", e), nil)
		}
		records = append(records, m)
	}
	return records, nil
}
