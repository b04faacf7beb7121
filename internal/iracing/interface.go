package iracing

import "context"

// StatsService is the member stats site as seen by the collection pipeline.
type StatsService interface {
	// Login authenticates and loads the reference catalog.
	Login(ctx context.Context) error

	// IsAuthenticated reports whether the last Login succeeded.
	IsAuthenticated() bool

	// Catalog returns the reference snapshot taken at login.
	Catalog() Catalog

	// ResultsArchive fetches one page of a season's results archive.
	ResultsArchive(ctx context.Context, query ArchiveQuery) (*ArchivePage, error)

	// EventResults fetches the per-participant results of one subsession.
	EventResults(ctx context.Context, subsessionID int64) (*EventResults, error)
}
