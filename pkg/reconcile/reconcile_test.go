package reconcile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendermap/tendermap/pkg/reconcile"
	"github.com/tendermap/tendermap/pkg/tender"
)

// testBatch is a small but representative feed: a clean transition, an
// open-ended conflict, a denylisted code, and two broken records.
func testBatch() []tender.RawFact {
	return []tender.RawFact{
		{CountryCode: "DE", CurrencyCode: "DEM", From: "1948-06-20", To: "2002-02-28", Source: tender.SourceCLDR},
		{CountryCode: "DE", CurrencyCode: "EUR", From: "1999-01-01", Source: tender.SourceCLDR},
		{CountryCode: "FR", CurrencyCode: "FRF", From: "1960-01-01", To: "1999-01-01", Source: tender.SourceCLDR},
		{CountryCode: "FR", CurrencyCode: "EUR", From: "1999-01-01", Source: tender.SourceCLDR},
		{CountryCode: "PA", CurrencyCode: "PAB", From: "1904-06-23", Source: tender.SourceCLDR},
		{CountryCode: "PA", CurrencyCode: "USD", From: "1904-06-23", Source: tender.SourceISO4217},
		{CountryCode: "US", CurrencyCode: "USD", From: "1792-04-02", Source: tender.SourceISO4217},
		{CountryCode: "US", CurrencyCode: "XTS", From: "2000-01-01", Source: tender.SourceCLDR},
		{CountryCode: "ZZ", CurrencyCode: "USD", From: "2000-01-01", Source: tender.SourceCLDR},
		{CountryCode: "EC", CurrencyCode: "ECS", From: "not-a-date", Source: tender.SourceCLDR},
	}
}

func TestReconcileEndToEnd(t *testing.T) {
	engine, err := reconcile.New(testReferences())
	require.NoError(t, err)

	result, err := engine.Reconcile(context.Background(), testBatch())
	require.NoError(t, err, "broken input records are diagnostics, not failures")
	require.NotNil(t, result)

	// Current mapping.
	require.Len(t, result.Snapshot.Entries, 4)
	assert.Equal(t, "EUR", result.Snapshot.Entries["DE"].Primary.CurrencyCode)
	assert.Equal(t, "EUR", result.Snapshot.Entries["FR"].Primary.CurrencyCode)
	assert.Equal(t, "USD", result.Snapshot.Entries["PA"].Primary.CurrencyCode,
		"higher-precedence source wins the open-ended conflict")
	assert.Equal(t, "USD", result.Snapshot.Entries["US"].Primary.CurrencyCode)

	// The two broken records and the denylisted code each leave a trace.
	kinds := result.DiagnosticCounts()
	assert.Equal(t, 1, kinds[tender.DiagReferenceLookup], "unknown country ZZ")
	assert.Equal(t, 1, kinds[tender.DiagNormalization], "unparseable date")
	assert.Equal(t, 1, kinds[tender.DiagExcluded], "XTS is not legal tender")
	assert.Equal(t, 1, kinds[tender.DiagConflict], "PAB truncated in favor of USD")
	assert.Zero(t, kinds[tender.DiagStructural])

	assert.Equal(t, 10, result.Statistics.RawRecords)
	assert.Equal(t, 8, result.Statistics.NormalizedFacts)
	assert.Equal(t, 7, result.Statistics.AcceptedFacts)
	assert.Equal(t, 1, result.Statistics.ExcludedFacts)
	assert.Equal(t, 4, result.Statistics.Countries)
}

func TestReconcileExcludedFactsLeaveNoOtherTrace(t *testing.T) {
	engine, err := reconcile.New(testReferences())
	require.NoError(t, err)

	// XTS overlaps USD's open period; since it is excluded before
	// timeline construction there must be no conflict about it.
	raw := []tender.RawFact{
		{CountryCode: "US", CurrencyCode: "USD", From: "1792-04-02", Source: tender.SourceISO4217},
		{CountryCode: "US", CurrencyCode: "XTS", From: "2000-01-01", Source: tender.SourceCLDR},
	}

	result, err := engine.Reconcile(context.Background(), raw)
	require.NoError(t, err)

	timeline, ok := result.Timeline("US")
	require.True(t, ok)
	require.Len(t, timeline.Periods, 1)
	assert.Equal(t, "USD", timeline.Periods[0].CurrencyCode)

	kinds := result.DiagnosticCounts()
	assert.Equal(t, 1, kinds[tender.DiagExcluded])
	assert.Zero(t, kinds[tender.DiagConflict])
	assert.Zero(t, kinds[tender.DiagMultiActive])
}

func TestReconcileFullyExcludedCountryReportsNoData(t *testing.T) {
	engine, err := reconcile.New(testReferences())
	require.NoError(t, err)

	raw := []tender.RawFact{
		{CountryCode: "US", CurrencyCode: "XTS", From: "2000-01-01", Source: tender.SourceCLDR},
	}

	result, err := engine.Reconcile(context.Background(), raw)
	require.NoError(t, err)

	timeline, ok := result.Timeline("US")
	require.True(t, ok)
	assert.True(t, timeline.Empty())

	kinds := result.DiagnosticCounts()
	assert.Equal(t, 1, kinds[tender.DiagExcluded])
	assert.Equal(t, 1, kinds[tender.DiagNoData])
	_, ok = result.Snapshot.Entries["US"]
	assert.False(t, ok)
}

func TestReconcileMultiCurrencyDeclaration(t *testing.T) {
	engine, err := reconcile.New(testReferences(), reconcile.WithMultiCurrency("PA"))
	require.NoError(t, err)

	raw := []tender.RawFact{
		{CountryCode: "PA", CurrencyCode: "PAB", From: "1904-06-23", Source: tender.SourceCLDR},
		{CountryCode: "PA", CurrencyCode: "USD", From: "1904-06-23", Source: tender.SourceISO4217},
	}

	result, err := engine.Reconcile(context.Background(), raw)
	require.NoError(t, err)

	entry, ok := result.Snapshot.Entries["PA"]
	require.True(t, ok)
	assert.Equal(t, "PAB", entry.Primary.CurrencyCode, "equal starts break on currency code")
	require.Len(t, entry.Secondary, 1)
	assert.Equal(t, "USD", entry.Secondary[0].CurrencyCode)

	kinds := result.DiagnosticCounts()
	assert.Zero(t, kinds[tender.DiagConflict])
	assert.Zero(t, kinds[tender.DiagStructural])
	assert.Equal(t, 1, kinds[tender.DiagMultiActive])
}

func TestReconcileIsDeterministic(t *testing.T) {
	engine, err := reconcile.New(testReferences(), reconcile.WithWorkers(4))
	require.NoError(t, err)

	first, err := engine.Reconcile(context.Background(), testBatch())
	require.NoError(t, err)
	second, err := engine.Reconcile(context.Background(), testBatch())
	require.NoError(t, err)

	assert.Equal(t, first.Timelines, second.Timelines)
	assert.Equal(t, first.Snapshot, second.Snapshot)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)
}

func TestReconcileCancelledContext(t *testing.T) {
	engine, err := reconcile.New(testReferences())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = engine.Reconcile(ctx, testBatch())
	assert.Error(t, err)
}

func TestNewRejectsBadConfiguration(t *testing.T) {
	_, err := reconcile.New(nil)
	assert.Error(t, err, "reference tables are required")

	refs := testReferences()
	_, err = reconcile.New(refs, reconcile.WithWorkers(0))
	assert.Error(t, err)
	_, err = reconcile.New(refs, reconcile.WithPrecedence(nil))
	assert.Error(t, err)
	_, err = reconcile.New(refs, reconcile.WithTenderPolicy(nil))
	assert.Error(t, err)
}
