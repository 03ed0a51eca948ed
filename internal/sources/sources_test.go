package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendermap/tendermap/pkg/tender"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFactsStampsSource(t *testing.T) {
	path := writeFile(t, "facts.yaml", `
- country_code: US
  currency_code: USD
  from: "1792-04-02"
- country_code: EC
  currency_code: USD
  from: "2000-09-13"
`)

	facts, err := LoadFacts(path, tender.SourceISO4217)
	require.NoError(t, err)
	require.Len(t, facts, 2)
	for _, fact := range facts {
		assert.Equal(t, tender.SourceISO4217, fact.Source)
	}
	assert.Equal(t, "US", facts[0].CountryCode)
	assert.Equal(t, "2000-09-13", facts[1].From)
}

func TestLoadFactsMissingFile(t *testing.T) {
	_, err := LoadFacts(filepath.Join(t.TempDir(), "absent.yaml"), tender.SourceCLDR)
	assert.Error(t, err)
}

func TestLoadCountriesFillsDisplayNames(t *testing.T) {
	path := writeFile(t, "countries.yaml", `
- code: DE
  alpha_3: DEU
  name: Germany
  official_name: Federal Republic of Germany
- code: FR
  alpha_3: FRA
`)

	countries, err := LoadCountries(path)
	require.NoError(t, err)
	require.Len(t, countries, 2)

	assert.Equal(t, "Federal Republic of Germany", countries[0].OfficialName)
	assert.Equal(t, "France", countries[1].ShortName, "empty names fall back to CLDR display data")
	assert.Equal(t, "France", countries[1].OfficialName)
}

func TestLoadCurrencies(t *testing.T) {
	path := writeFile(t, "currencies.yaml", `
- code: USD
  name: US Dollar
  numeric: "840"
- code: EUR
  name: Euro
  numeric: "978"
`)

	currencies, err := LoadCurrencies(path)
	require.NoError(t, err)
	require.Len(t, currencies, 2)
	assert.Equal(t, "840", currencies[0].Numeric)
}

func TestRegionName(t *testing.T) {
	assert.Equal(t, "Germany", RegionName("DE"))
	assert.Empty(t, RegionName("not-a-region"))
}
