package tendermap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendermap/tendermap"
	"github.com/tendermap/tendermap/internal/emit"
	"github.com/tendermap/tendermap/pkg/tender"
)

const testCLDR = `<?xml version="1.0" encoding="UTF-8"?>
<supplementalData>
  <currencyData>
    <region iso3166="DE">
      <currency iso4217="DEM" from="1948-06-20" to="2002-02-28"/>
      <currency iso4217="EUR" from="1999-01-01"/>
    </region>
    <region iso3166="FR">
      <currency iso4217="FRF" from="1960-01-01" to="1999-01-01"/>
      <currency iso4217="EUR" from="1999-01-01"/>
    </region>
  </currencyData>
</supplementalData>`

const testCountries = `
- code: DE
  alpha_3: DEU
  name: Germany
  official_name: Federal Republic of Germany
- code: FR
  alpha_3: FRA
  name: France
  official_name: French Republic
`

const testCurrencies = `
- code: DEM
  name: German Mark
- code: EUR
  name: Euro
  numeric: "978"
- code: FRF
  name: French Franc
`

const testISOFacts = `
- country_code: DE
  currency_code: EUR
  from: "1999-01-01"
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunFromFiles(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "data")

	tm, err := tendermap.New(
		tendermap.WithReferenceFiles(
			writeFixture(t, dir, "countries.yaml", testCountries),
			writeFixture(t, dir, "currencies.yaml", testCurrencies),
		),
		tendermap.WithCLDR(writeFixture(t, dir, "supplemental.xml", testCLDR)),
		tendermap.WithFactFile(tender.SourceISO4217, writeFixture(t, dir, "iso.yaml", testISOFacts)),
		tendermap.WithOutputDir(output),
		tendermap.WithVersion("test"),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, tm.References().CountryCount())

	result, err := tm.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "EUR", result.Snapshot.Entries["DE"].Primary.CurrencyCode)
	assert.Equal(t, "EUR", result.Snapshot.Entries["FR"].Primary.CurrencyCode)

	// The same euro adoption from two sources collapses to one period.
	timeline, ok := result.Timeline("DE")
	require.True(t, ok)
	require.Len(t, timeline.Periods, 2)
	assert.Equal(t, []tender.Source{tender.SourceCLDR, tender.SourceISO4217},
		timeline.Periods[1].Sources)

	for _, name := range []string{emit.CurrentCSVFile, emit.HistoricalJSONFile, emit.MetadataFile} {
		_, statErr := os.Stat(filepath.Join(output, name))
		assert.NoError(t, statErr, name)
	}
}

func TestRunWithInjectedReferences(t *testing.T) {
	dir := t.TempDir()
	refs := tender.NewReferences(
		[]tender.Country{{Code: "DE", ShortName: "Germany"}},
		[]tender.Currency{{Code: "EUR", Name: "Euro"}},
	)

	tm, err := tendermap.New(
		tendermap.WithReferences(refs),
		tendermap.WithCLDR(writeFixture(t, dir, "supplemental.xml", testCLDR)),
	)
	require.NoError(t, err)

	result, err := tm.Run(context.Background())
	require.NoError(t, err, "unknown codes become diagnostics, not failures")

	assert.Equal(t, "EUR", result.Snapshot.Entries["DE"].Primary.CurrencyCode)
	counts := result.DiagnosticCounts()
	assert.Positive(t, counts[tender.DiagReferenceLookup], "FR and DEM are absent from the injected tables")
}

func TestNewRejectsIncompleteConfiguration(t *testing.T) {
	_, err := tendermap.New()
	assert.Error(t, err, "no fact input")

	_, err = tendermap.New(tendermap.WithCLDR("supplemental.xml"))
	assert.Error(t, err, "no reference tables")

	_, err = tendermap.New(
		tendermap.WithReferences(nil),
		tendermap.WithCLDR("supplemental.xml"),
	)
	assert.Error(t, err)

	_, err = tendermap.New(
		tendermap.WithFactFile("", "facts.yaml"),
	)
	assert.Error(t, err)
}
