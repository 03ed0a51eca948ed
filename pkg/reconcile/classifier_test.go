package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendermap/tendermap/pkg/reconcile"
	"github.com/tendermap/tendermap/pkg/tender"
)

func TestDenylistPolicyExcludesDeniedCodes(t *testing.T) {
	policy := reconcile.NewDefaultTenderPolicy()

	testing_ := fact(t, "US", "XTS", "", "", tender.SourceCLDR)
	assert.False(t, policy.Tender(testing_), "testing code should be excluded")

	gold := fact(t, "US", "XAU", "", "", tender.SourceCLDR)
	assert.False(t, policy.Tender(gold), "precious-metal code should be excluded")

	usd := fact(t, "US", "USD", "1792-04-02", "", tender.SourceCLDR)
	assert.True(t, policy.Tender(usd))
}

func TestDenylistPolicyORExclusion(t *testing.T) {
	policy := reconcile.NewDefaultTenderPolicy()

	// Not on the denylist, but the source says non-tender.
	flagged := fact(t, "US", "USD", "", "", tender.SourceCLDR)
	flagged.Tender = false
	assert.False(t, policy.Tender(flagged), "source non-tender flag should exclude regardless of the denylist")
}

func TestDenylistPolicyIsInjectable(t *testing.T) {
	policy := reconcile.NewDenylistPolicy("USD")

	assert.False(t, policy.Tender(fact(t, "US", "USD", "", "", tender.SourceCLDR)))
	assert.True(t, policy.Tender(fact(t, "US", "XTS", "", "", tender.SourceCLDR)),
		"a substituted denylist fully replaces the default")
}

func TestClassifyPartitionsAndRecords(t *testing.T) {
	policy := reconcile.NewDefaultTenderPolicy()
	facts := []tender.CurrencyFact{
		fact(t, "US", "USD", "1792-04-02", "", tender.SourceISO4217),
		fact(t, "US", "XTS", "", "", tender.SourceCLDR),
	}

	accepted, diags := reconcile.Classify(facts, policy)

	require.Len(t, accepted, 1)
	assert.Equal(t, "USD", accepted[0].CurrencyCode)

	require.Len(t, diags, 1)
	assert.Equal(t, tender.DiagExcluded, diags[0].Kind)
	assert.Equal(t, "US", diags[0].CountryCode)
	assert.Contains(t, diags[0].Detail, "XTS")
}
