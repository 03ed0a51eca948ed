package tender

import "sort"

// ValidityPeriod is the reconciled, de-conflicted unit produced by the
// timeline builder: one currency tender in one country for a contiguous
// date range. Periods are constructed fresh each run and never mutated.
type ValidityPeriod struct {
	CountryCode  string `json:"country_code" yaml:"country_code"`
	CurrencyCode string `json:"currency_code" yaml:"currency_code"`
	Start        Date   `json:"start_date" yaml:"start_date"` // zero when unknown
	End          Date   `json:"end_date" yaml:"end_date"`     // zero when still in effect
	Sources      []Source `json:"sources,omitempty" yaml:"sources,omitempty"` // contributing sources, sorted
}

// Active reports whether the period is currently in effect. Active is
// derived from the end date, never stored, so the two cannot drift.
func (p ValidityPeriod) Active() bool {
	return p.End.IsZero()
}

// Overlaps reports whether two periods share at least one day. An
// unknown start extends infinitely into the past, an unknown end into
// the future.
func (p ValidityPeriod) Overlaps(other ValidityPeriod) bool {
	startsBeforeOtherEnds := other.End.IsZero() || p.Start.IsZero() || p.Start.Before(other.End)
	otherStartsBeforeEnds := p.End.IsZero() || other.Start.IsZero() || other.Start.Before(p.End)
	return startsBeforeOtherEnds && otherStartsBeforeEnds
}

// Timeline is the ordered set of validity periods for one country,
// sorted by start date ascending with unknown starts first.
type Timeline struct {
	CountryCode string           `json:"country_code" yaml:"country_code"`
	Periods     []ValidityPeriod `json:"periods" yaml:"periods"`
}

// Empty reports whether the timeline carries no periods.
func (t Timeline) Empty() bool {
	return len(t.Periods) == 0
}

// Actives returns the periods currently in effect, in timeline order.
func (t Timeline) Actives() []ValidityPeriod {
	var out []ValidityPeriod
	for _, p := range t.Periods {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out
}

// SnapshotEntry is one country's entry in the current view: its primary
// tender plus any secondary tenders in multi-currency regimes.
type SnapshotEntry struct {
	CountryCode string           `json:"country_code" yaml:"country_code"`
	Primary     ValidityPeriod   `json:"primary" yaml:"primary"`
	Secondary   []ValidityPeriod `json:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// Snapshot is the reduction of all timelines to each country's currently
// active currency, keyed by country code.
type Snapshot struct {
	Entries map[string]SnapshotEntry `json:"entries" yaml:"entries"`
}

// CountryCodes returns the snapshot's country codes in sorted order.
func (s Snapshot) CountryCodes() []string {
	codes := make([]string, 0, len(s.Entries))
	for code := range s.Entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
