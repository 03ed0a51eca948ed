// Package sources loads the raw inputs of a reconciliation run: the
// CLDR territory-currency table, fact files from the ISO 4217 and
// country registry sources, and the country/currency reference tables.
// It is mechanical glue with no decision logic; everything it produces
// feeds the reconcile package untouched.
package sources

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/tendermap/tendermap/pkg/errors"
	"github.com/tendermap/tendermap/pkg/tender"
)

// LoadFacts reads a YAML file holding a list of raw facts and stamps
// every record with the given source.
func LoadFacts(path string, source tender.Source) ([]tender.RawFact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var facts []tender.RawFact
	if err := yaml.Unmarshal(data, &facts); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	for i := range facts {
		facts[i].Source = source
	}
	return facts, nil
}

// LoadCountries reads the ISO 3166 reference table from a YAML file.
// Countries with an empty short name are filled from the CLDR English
// region names so a sparse registry still yields printable output.
func LoadCountries(path string) ([]tender.Country, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var countries []tender.Country
	if err := yaml.Unmarshal(data, &countries); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	for i, c := range countries {
		if c.ShortName == "" {
			countries[i].ShortName = RegionName(c.Code)
		}
		if countries[i].OfficialName == "" {
			countries[i].OfficialName = countries[i].ShortName
		}
	}
	return countries, nil
}

// LoadCurrencies reads the ISO 4217 reference table from a YAML file.
func LoadCurrencies(path string) ([]tender.Currency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var currencies []tender.Currency
	if err := yaml.Unmarshal(data, &currencies); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return currencies, nil
}
