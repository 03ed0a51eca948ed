package reconcile

import (
	"fmt"
	"sort"

	"github.com/tendermap/tendermap/pkg/tender"
)

// Builder constructs one country's timeline from its accepted facts:
// merging duplicate claims, ordering periods, resolving cross-source
// conflicts by the precedence policy, and recording every anomaly as a
// diagnostic.
type Builder struct {
	precedence    Precedence
	multiCurrency map[string]bool
}

// NewBuilder creates a Builder with the given source precedence.
// Countries in multiCurrency are declared dual-tender regimes: their
// open-ended periods legitimately co-circulate and are not conflicts.
func NewBuilder(precedence Precedence, multiCurrency map[string]bool) *Builder {
	return &Builder{precedence: precedence, multiCurrency: multiCurrency}
}

// Build produces the timeline for one country. Facts must all carry the
// same country code and tender=true; the classifier runs first. A
// country with zero facts yields an empty timeline and a no_data
// diagnostic, never an error.
func (b *Builder) Build(countryCode string, facts []tender.CurrencyFact) (tender.Timeline, []tender.Diagnostic) {
	timeline := tender.Timeline{CountryCode: countryCode}
	if len(facts) == 0 {
		return timeline, []tender.Diagnostic{{
			CountryCode: countryCode,
			Kind:        tender.DiagNoData,
			Detail:      "no accepted tender facts",
		}}
	}

	var diags []tender.Diagnostic

	// Merge duplicates per currency, then resolve across currencies.
	periods := b.mergeDuplicates(countryCode, facts)
	sortPeriods(periods)
	periods, conflictDiags := b.resolveOverlaps(countryCode, periods)
	diags = append(diags, conflictDiags...)
	sortPeriods(periods)
	diags = append(diags, detectGaps(countryCode, periods)...)

	timeline.Periods = periods
	return timeline, diags
}

// coverage accumulates the union of same-currency ranges while merging.
type coverage struct {
	currency    string
	start       tender.Date
	explicit    tender.Date // latest explicit end seen
	hasExplicit bool
	sources     map[tender.Source]struct{}
}

// effectiveEnd is the end the merged period will carry: an explicit end
// from any source overrides an open-ended range from another, since a
// definitive source dominates an inferred one.
func (c *coverage) effectiveEnd() (end tender.Date, open bool) {
	if c.hasExplicit {
		return c.explicit, false
	}
	return tender.Date{}, true
}

// touches reports whether a fact's range overlaps or is adjacent to the
// accumulated coverage. Facts arrive sorted by start, unknown first.
func (c *coverage) touches(fact tender.CurrencyFact) bool {
	end, open := c.effectiveEnd()
	if open {
		return true
	}
	if fact.Start.IsZero() {
		return true
	}
	return !end.Before(fact.Start)
}

// absorb extends the coverage with a fact's range.
func (c *coverage) absorb(fact tender.CurrencyFact) {
	if fact.Start.Compare(c.start) < 0 {
		c.start = fact.Start
	}
	if !fact.End.IsZero() && (!c.hasExplicit || fact.End.After(c.explicit)) {
		c.explicit = fact.End
		c.hasExplicit = true
	}
	c.sources[fact.Source] = struct{}{}
}

// period finalizes the coverage into a validity period.
func (c *coverage) period(countryCode string) tender.ValidityPeriod {
	end, _ := c.effectiveEnd()
	sources := make([]tender.Source, 0, len(c.sources))
	for s := range c.sources {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return tender.ValidityPeriod{
		CountryCode:  countryCode,
		CurrencyCode: c.currency,
		Start:        c.start,
		End:          end,
		Sources:      sources,
	}
}

// mergeDuplicates merges facts from different sources naming the same
// currency with overlapping or adjacent date ranges into one period
// spanning the union of their ranges.
func (b *Builder) mergeDuplicates(countryCode string, facts []tender.CurrencyFact) []tender.ValidityPeriod {
	byCurrency := make(map[string][]tender.CurrencyFact)
	for _, fact := range facts {
		byCurrency[fact.CurrencyCode] = append(byCurrency[fact.CurrencyCode], fact)
	}

	currencies := make([]string, 0, len(byCurrency))
	for code := range byCurrency {
		currencies = append(currencies, code)
	}
	sort.Strings(currencies)

	var periods []tender.ValidityPeriod
	for _, code := range currencies {
		group := byCurrency[code]
		sort.Slice(group, func(i, j int) bool {
			if cmp := group[i].Start.Compare(group[j].Start); cmp != 0 {
				return cmp < 0
			}
			return group[i].End.Compare(group[j].End) < 0
		})

		var cov *coverage
		for _, fact := range group {
			if cov != nil && cov.touches(fact) {
				cov.absorb(fact)
				continue
			}
			if cov != nil {
				periods = append(periods, cov.period(countryCode))
			}
			cov = &coverage{
				currency: code,
				start:    fact.Start,
				sources:  make(map[tender.Source]struct{}),
			}
			cov.absorb(fact)
		}
		if cov != nil {
			periods = append(periods, cov.period(countryCode))
		}
	}
	return periods
}

// resolveOverlaps applies the ordered conflict policy to every pair of
// different-currency periods that overlap in time:
//
//  1. Exactly one period carries an explicit end: that end is taken as
//     definitive and the overlap stands as the documented transition
//     window between legacy and new currency. Both periods are kept.
//  2. The sources disagree and one outranks the other: the
//     lower-precedence period is truncated out of the overlap, or
//     dropped when no date remains to anchor it.
//  3. Otherwise the earlier period's end is truncated to the later
//     period's start: the later adoption implies the earlier currency
//     ceased circulating.
//
// A conflict diagnostic is recorded regardless of which rule fired.
func (b *Builder) resolveOverlaps(countryCode string, periods []tender.ValidityPeriod) ([]tender.ValidityPeriod, []tender.Diagnostic) {
	var diags []tender.Diagnostic
	dropped := make([]bool, len(periods))

	for i := 0; i < len(periods); i++ {
		for j := i + 1; j < len(periods); j++ {
			if dropped[i] || dropped[j] {
				continue
			}
			earlier, later := &periods[i], &periods[j]
			if earlier.CurrencyCode == later.CurrencyCode || !earlier.Overlaps(*later) {
				continue
			}

			// Declared dual-tender regimes: two open-ended periods are
			// legitimate co-circulation, not a conflict.
			if b.multiCurrency[countryCode] && earlier.End.IsZero() && later.End.IsZero() {
				continue
			}

			rule := b.resolvePair(earlier, later, dropped, i, j)
			diags = append(diags, tender.Diagnostic{
				CountryCode: countryCode,
				Kind:        tender.DiagConflict,
				Detail: fmt.Sprintf("%s and %s overlap, resolved by %s",
					describePeriod(*earlier), describePeriod(*later), rule),
			})
		}
	}

	kept := periods[:0]
	for i, p := range periods {
		if !dropped[i] {
			kept = append(kept, p)
		}
	}
	return kept, diags
}

// resolvePair mutates the pair per the policy and names the rule fired.
func (b *Builder) resolvePair(earlier, later *tender.ValidityPeriod, dropped []bool, i, j int) string {
	earlierExplicit := !earlier.End.IsZero()
	laterExplicit := !later.End.IsZero()

	// Rule 1: one definitive end, one inferred "still active".
	if earlierExplicit != laterExplicit {
		return "explicit end"
	}

	// Rule 2: source precedence. The loser keeps whatever range lies
	// outside the winner; when none remains it is dropped, never
	// published as an empty or inverted interval.
	earlierRank := b.precedence.PeriodRank(*earlier)
	laterRank := b.precedence.PeriodRank(*later)
	if earlierRank != laterRank {
		loser, winner := earlier, later
		loserIdx := i
		if earlierRank > laterRank {
			loser, winner = later, earlier
			loserIdx = j
		}
		switch {
		case loser == earlier && !winner.Start.IsZero() && loser.Start.Compare(winner.Start) < 0:
			loser.End = winner.Start
		case loser == later && !winner.End.IsZero() && winner.End.Before(loser.End):
			loser.Start = winner.End
		default:
			dropped[loserIdx] = true
		}
		return "source precedence"
	}

	// Rule 3: truncate the earlier period at the later adoption.
	if later.Start.IsZero() {
		dropped[i] = true
		return "truncation"
	}
	earlier.End = later.Start
	return "truncation"
}

// detectGaps records a diagnostic for every span between consecutive
// periods with no currency data. Gaps are never silently bridged by
// assuming currency continuity.
func detectGaps(countryCode string, periods []tender.ValidityPeriod) []tender.Diagnostic {
	var diags []tender.Diagnostic
	for i := 1; i < len(periods); i++ {
		prev, cur := periods[i-1], periods[i]
		if prev.End.IsZero() || cur.Start.IsZero() {
			continue
		}
		if prev.End.Before(cur.Start) {
			diags = append(diags, tender.Diagnostic{
				CountryCode: countryCode,
				Kind:        tender.DiagGap,
				Detail: fmt.Sprintf("no currency data between %s (%s) and %s (%s)",
					prev.End, prev.CurrencyCode, cur.Start, cur.CurrencyCode),
			})
		}
	}
	return diags
}

// sortPeriods orders periods by start date ascending with unknown
// starts first, tie-broken by currency code for deterministic output.
func sortPeriods(periods []tender.ValidityPeriod) {
	sort.Slice(periods, func(i, j int) bool {
		if cmp := periods[i].Start.Compare(periods[j].Start); cmp != 0 {
			return cmp < 0
		}
		return periods[i].CurrencyCode < periods[j].CurrencyCode
	})
}

// describePeriod formats a period for diagnostic details.
func describePeriod(p tender.ValidityPeriod) string {
	start, end := p.Start.String(), p.End.String()
	if start == "" {
		start = "?"
	}
	if end == "" {
		end = "open"
	}
	return fmt.Sprintf("%s [%s, %s]", p.CurrencyCode, start, end)
}
