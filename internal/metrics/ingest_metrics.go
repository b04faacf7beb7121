package metrics

import "github.com/prometheus/client_golang/prometheus"

// Session outcomes
const (
	SessionCollected       = "collected"
	SessionSkippedExisting = "skipped_existing"
	SessionUnavailable     = "unavailable"
)

// Season outcomes
const (
	SeasonOK     = "ok"
	SeasonFailed = "failed"
)

var (
	EventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_total",
		Help:      "Archive rows seen by the harvester by outcome (inserted, duplicate, invalid)",
	}, []string{"outcome"})
	ResultsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "results_total",
		Help:      "Participant result rows by outcome (inserted, duplicate, rejected)",
	}, []string{"outcome"})
	TeamsUpsertedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "teams_upserted_total",
		Help:      "Total number of team rows upserted",
	})
	SessionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_total",
		Help:      "Subsessions processed by the collector by outcome",
	}, []string{"outcome"})
	SeasonsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seasons_total",
		Help:      "Seasons harvested by status",
	}, []string{"status"})
	ReferenceRowsInsertedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reference_rows_inserted_total",
		Help:      "Catalog rows inserted by entity",
	}, []string{"entity"})
)

// RecordEvent records an archive row; inserted is false for duplicates.
func RecordEvent(inserted bool) {
	if inserted {
		EventsTotal.WithLabelValues("inserted").Inc()
		return
	}
	EventsTotal.WithLabelValues("duplicate").Inc()
}

// RecordInvalidEvent records an archive row that failed validation.
func RecordInvalidEvent() {
	EventsTotal.WithLabelValues("invalid").Inc()
}

// RecordResult records a participant result row.
// outcome should be one of: "inserted", "duplicate", "rejected"
func RecordResult(outcome string) {
	ResultsTotal.WithLabelValues(outcome).Inc()
}

// RecordTeamUpserted records a team upsert.
func RecordTeamUpserted() {
	TeamsUpsertedTotal.Inc()
}

// RecordSession records how a subsession was handled.
func RecordSession(outcome string) {
	SessionsTotal.WithLabelValues(outcome).Inc()
}

// RecordSeason records a harvested season.
func RecordSeason(status string) {
	SeasonsTotal.WithLabelValues(status).Inc()
}

// RecordReferenceInserted records catalog rows inserted for an entity.
func RecordReferenceInserted(entity string, n int) {
	if n <= 0 {
		return
	}
	ReferenceRowsInsertedTotal.WithLabelValues(entity).Add(float64(n))
}
