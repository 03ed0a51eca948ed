package tender

import "sort"

// DiagnosticKind classifies a reconciliation-time anomaly.
type DiagnosticKind string

// String returns the string representation of a diagnostic kind.
func (k DiagnosticKind) String() string {
	return string(k)
}

// Diagnostic kinds emitted by the engine.
const (
	// DiagNormalization marks a record that failed to normalize and was skipped.
	DiagNormalization DiagnosticKind = "normalization"

	// DiagReferenceLookup marks a record referencing a country or currency
	// absent from the reference tables.
	DiagReferenceLookup DiagnosticKind = "reference_lookup"

	// DiagExcluded marks a fact dropped by the tender classifier.
	DiagExcluded DiagnosticKind = "excluded"

	// DiagConflict marks an overlap between different currencies that the
	// builder had to resolve.
	DiagConflict DiagnosticKind = "conflict"

	// DiagGap marks a span between consecutive periods with no currency data.
	DiagGap DiagnosticKind = "gap"

	// DiagNoData marks a country with zero accepted facts.
	DiagNoData DiagnosticKind = "no_data"

	// DiagMultiActive marks a country with more than one active period.
	DiagMultiActive DiagnosticKind = "multi_active"

	// DiagStructural marks an invariant the validator found broken after
	// resolution. The only fatal condition of a run.
	DiagStructural DiagnosticKind = "structural"
)

// Diagnostic is a structured record of a reconciliation anomaly. Every
// exclusion, conflict, or gap produces one of these rather than
// disappearing, preserving auditability.
type Diagnostic struct {
	CountryCode string         `json:"country_code" yaml:"country_code"`
	Kind        DiagnosticKind `json:"kind" yaml:"kind"`
	Detail      string         `json:"detail" yaml:"detail"`
}

// SortDiagnostics orders diagnostics by country code, then kind, then
// detail, giving runs a deterministic report order.
func SortDiagnostics(diags []Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.CountryCode != b.CountryCode {
			return a.CountryCode < b.CountryCode
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Detail < b.Detail
	})
}

// CountDiagnostics tallies diagnostics by kind.
func CountDiagnostics(diags []Diagnostic) map[DiagnosticKind]int {
	counts := make(map[DiagnosticKind]int)
	for _, d := range diags {
		counts[d.Kind]++
	}
	return counts
}
