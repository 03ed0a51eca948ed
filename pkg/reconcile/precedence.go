package reconcile

import "github.com/tendermap/tendermap/pkg/tender"

// Precedence is the ordered trust ranking between sources, applied when
// two sources disagree on timeline facts and neither end date settles
// the conflict. Earlier entries outrank later ones.
type Precedence []tender.Source

// DefaultPrecedence ranks ISO 4217 above CLDR above the country
// registry: ISO 4217 is the authoritative code registry.
func DefaultPrecedence() Precedence {
	return Precedence{
		tender.SourceISO4217,
		tender.SourceCLDR,
		tender.SourceCountryRegistry,
	}
}

// Rank returns the source's rank, higher meaning more authoritative.
// Unknown sources rank below every listed one.
func (p Precedence) Rank(source tender.Source) int {
	for i, s := range p {
		if s == source {
			return len(p) - i
		}
	}
	return 0
}

// PeriodRank returns the best rank among a period's contributing
// sources: a period corroborated by a high-precedence source carries
// that source's authority.
func (p Precedence) PeriodRank(period tender.ValidityPeriod) int {
	best := 0
	for _, s := range period.Sources {
		if r := p.Rank(s); r > best {
			best = r
		}
	}
	return best
}
