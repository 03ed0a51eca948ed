// Package tender defines the domain types shared by the reconciliation
// engine: reference entities, currency facts, validity periods, timelines,
// snapshots, and diagnostics.
package tender

import "sort"

// Country is an ISO 3166-1 reference entity. Immutable once loaded.
type Country struct {
	Code         string `json:"code" yaml:"code"`                 // alpha-2
	Alpha3       string `json:"alpha_3" yaml:"alpha_3"`           // alpha-3
	ShortName    string `json:"name" yaml:"name"`                 // common short name
	OfficialName string `json:"official_name" yaml:"official_name"` // falls back to ShortName when the registry has no official form
}

// Currency is an ISO 4217 reference entity. Immutable once loaded.
type Currency struct {
	Code    string `json:"code" yaml:"code"` // alpha-3
	Name    string `json:"name" yaml:"name"`
	Numeric string `json:"numeric,omitempty" yaml:"numeric,omitempty"`
}

// References holds the read-only country and currency tables consulted
// by the normalizer and validator. Loaded once per run, never mutated,
// so it is safe for concurrent readers.
type References struct {
	countries  map[string]Country
	currencies map[string]Currency
}

// NewReferences builds the lookup tables from reference entities.
func NewReferences(countries []Country, currencies []Currency) *References {
	refs := &References{
		countries:  make(map[string]Country, len(countries)),
		currencies: make(map[string]Currency, len(currencies)),
	}
	for _, c := range countries {
		refs.countries[c.Code] = c
	}
	for _, c := range currencies {
		refs.currencies[c.Code] = c
	}
	return refs
}

// Country looks up a country by alpha-2 code.
func (r *References) Country(code string) (Country, bool) {
	c, ok := r.countries[code]
	return c, ok
}

// Currency looks up a currency by alpha-3 code.
func (r *References) Currency(code string) (Currency, bool) {
	c, ok := r.currencies[code]
	return c, ok
}

// Countries returns all countries sorted by code.
func (r *References) Countries() []Country {
	out := make([]Country, 0, len(r.countries))
	for _, c := range r.countries {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Currencies returns all currencies sorted by code.
func (r *References) Currencies() []Currency {
	out := make([]Currency, 0, len(r.currencies))
	for _, c := range r.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// CountryCount returns the number of loaded countries.
func (r *References) CountryCount() int {
	return len(r.countries)
}

// CurrencyCount returns the number of loaded currencies.
func (r *References) CurrencyCount() int {
	return len(r.currencies)
}
