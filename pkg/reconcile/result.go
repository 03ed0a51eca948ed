package reconcile

import (
	"github.com/tendermap/tendermap/pkg/tender"
)

// Result carries everything a reconciliation run produced: the
// per-country timelines, the derived current snapshot, every diagnostic
// recorded along the way, and run statistics.
type Result struct {
	// Timelines holds one timeline per country, sorted by country code.
	Timelines []tender.Timeline

	// Snapshot is the reduced country to current-currency mapping.
	Snapshot tender.Snapshot

	// Diagnostics lists every anomaly of the run in deterministic order.
	Diagnostics []tender.Diagnostic

	// Statistics summarizes the run.
	Statistics Statistics
}

// Statistics summarizes a reconciliation run for reports and metadata.
type Statistics struct {
	RawRecords      int   `json:"raw_records"`
	NormalizedFacts int   `json:"normalized_facts"`
	AcceptedFacts   int   `json:"accepted_facts"`
	ExcludedFacts   int   `json:"excluded_facts"`
	Countries       int   `json:"countries"`
	Periods         int   `json:"periods"`
	TotalTimeMs     int64 `json:"total_time_ms"`
}

// DiagnosticCounts tallies the result's diagnostics by kind.
func (r *Result) DiagnosticCounts() map[tender.DiagnosticKind]int {
	return tender.CountDiagnostics(r.Diagnostics)
}

// Timeline returns the timeline for a country code, if present.
func (r *Result) Timeline(countryCode string) (tender.Timeline, bool) {
	for _, t := range r.Timelines {
		if t.CountryCode == countryCode {
			return t, true
		}
	}
	return tender.Timeline{}, false
}
