package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendermap/tendermap/pkg/reconcile"
	"github.com/tendermap/tendermap/pkg/tender"
)

func TestDeriveSnapshotSingleActive(t *testing.T) {
	timelines := []tender.Timeline{{
		CountryCode: "DE",
		Periods: []tender.ValidityPeriod{
			period(t, "DE", "DEM", "1948-06-20", "2002-02-28", tender.SourceCLDR),
			period(t, "DE", "EUR", "1999-01-01", "", tender.SourceCLDR),
		},
	}}

	snapshot := reconcile.DeriveSnapshot(timelines)

	entry, ok := snapshot.Entries["DE"]
	require.True(t, ok)
	assert.Equal(t, "EUR", entry.Primary.CurrencyCode)
	assert.Empty(t, entry.Secondary)
}

func TestDeriveSnapshotMostRecentStartWins(t *testing.T) {
	timelines := []tender.Timeline{{
		CountryCode: "PA",
		Periods: []tender.ValidityPeriod{
			period(t, "PA", "PAB", "1904-06-23", "", tender.SourceCLDR),
			period(t, "PA", "USD", "1941-10-02", "", tender.SourceISO4217),
		},
	}}

	snapshot := reconcile.DeriveSnapshot(timelines)

	entry, ok := snapshot.Entries["PA"]
	require.True(t, ok)
	assert.Equal(t, "USD", entry.Primary.CurrencyCode, "newest adoption is primary")
	require.Len(t, entry.Secondary, 1)
	assert.Equal(t, "PAB", entry.Secondary[0].CurrencyCode)
}

func TestDeriveSnapshotTieBreaksByCurrencyCode(t *testing.T) {
	timelines := []tender.Timeline{{
		CountryCode: "PA",
		Periods: []tender.ValidityPeriod{
			period(t, "PA", "USD", "1904-06-23", "", tender.SourceISO4217),
			period(t, "PA", "PAB", "1904-06-23", "", tender.SourceCLDR),
		},
	}}

	snapshot := reconcile.DeriveSnapshot(timelines)

	entry := snapshot.Entries["PA"]
	assert.Equal(t, "PAB", entry.Primary.CurrencyCode)
	require.Len(t, entry.Secondary, 1)
	assert.Equal(t, "USD", entry.Secondary[0].CurrencyCode)
}

func TestDeriveSnapshotSkipsCountriesWithNoActive(t *testing.T) {
	timelines := []tender.Timeline{{
		CountryCode: "EC",
		Periods: []tender.ValidityPeriod{
			period(t, "EC", "ECS", "1884-04-01", "2000-09-13", tender.SourceCLDR),
		},
	}}

	snapshot := reconcile.DeriveSnapshot(timelines)

	_, ok := snapshot.Entries["EC"]
	assert.False(t, ok)
	assert.Empty(t, snapshot.CountryCodes())
}
