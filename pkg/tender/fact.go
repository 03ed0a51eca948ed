package tender

// Source identifies which reference table asserted a fact.
type Source string

// String returns the string representation of a source.
func (s Source) String() string {
	return string(s)
}

// Known fact sources, in no particular order. Precedence between them is
// a reconciliation policy, not a property of the source itself.
const (
	SourceCLDR            Source = "cldr"
	SourceISO4217         Source = "iso4217"
	SourceCountryRegistry Source = "country_registry"
)

// RawFact is one source's record before normalization: codes and dates
// are carried as the strings the source supplied.
type RawFact struct {
	CountryCode  string  `json:"country_code" yaml:"country_code"`
	CurrencyCode string  `json:"currency_code" yaml:"currency_code"`
	From         string  `json:"from,omitempty" yaml:"from,omitempty"` // YYYY-MM-DD, empty when unknown
	To           string  `json:"to,omitempty" yaml:"to,omitempty"`     // YYYY-MM-DD, empty when open-ended
	Source       Source  `json:"source" yaml:"source"`
	Tender       *string `json:"tender,omitempty" yaml:"tender,omitempty"` // source-provided flag, nil when the source is silent
}

// CurrencyFact is the canonical form of one source's assertion that a
// currency applied to a country for an interval. Facts are read-only
// inputs to a reconciliation run.
type CurrencyFact struct {
	CountryCode  string `json:"country_code" yaml:"country_code"`   // ISO 3166-1 alpha-2
	CurrencyCode string `json:"currency_code" yaml:"currency_code"` // ISO 4217 alpha-3
	Start        Date   `json:"start_date" yaml:"start_date"`       // zero when unknown
	End          Date   `json:"end_date" yaml:"end_date"`           // zero when still in effect
	Source       Source `json:"source" yaml:"source"`
	Tender       bool   `json:"tender" yaml:"tender"`
}
