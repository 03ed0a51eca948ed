package reconcile

import (
	"sort"

	"github.com/tendermap/tendermap/pkg/tender"
)

// TenderPolicy decides whether a canonical fact represents a genuine
// legal-tender relationship. It is injected into the engine so tests and
// deployments can substitute a controlled code list.
type TenderPolicy interface {
	// Tender reports whether the fact should enter timeline construction.
	Tender(fact tender.CurrencyFact) bool
}

// DenylistPolicy excludes facts whose currency code is on a maintained
// denylist of non-circulating codes, combined by OR-exclusion with the
// source-provided tender flag: either signal saying non-tender excludes
// the fact.
type DenylistPolicy struct {
	codes map[string]struct{}
}

// DefaultDenylist returns the ISO 4217 codes that never represent
// circulating tender: the testing and "no currency" codes, precious
// metals, IMF and regional fund codes, bond market units, and
// same-country accounting funds.
func DefaultDenylist() []string {
	return []string{
		"XTS", // testing
		"XXX", // no currency
		"XAU", "XAG", "XPT", "XPD", // precious metals
		"XDR", "XUA", "XSU", // supranational fund codes
		"XBA", "XBB", "XBC", "XBD", // bond market units
		"USN", "CHE", "CHW", // next-day and WIR funds
	}
}

// NewDenylistPolicy creates a policy from an explicit code list.
func NewDenylistPolicy(codes ...string) *DenylistPolicy {
	p := &DenylistPolicy{codes: make(map[string]struct{}, len(codes))}
	for _, code := range codes {
		p.codes[code] = struct{}{}
	}
	return p
}

// NewDefaultTenderPolicy creates a policy with the default denylist.
func NewDefaultTenderPolicy() *DenylistPolicy {
	return NewDenylistPolicy(DefaultDenylist()...)
}

// Tender implements TenderPolicy.
func (p *DenylistPolicy) Tender(fact tender.CurrencyFact) bool {
	if !fact.Tender {
		return false
	}
	_, denied := p.codes[fact.CurrencyCode]
	return !denied
}

// Denylist returns the policy's code list in sorted order.
func (p *DenylistPolicy) Denylist() []string {
	out := make([]string, 0, len(p.codes))
	for code := range p.codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Classify partitions facts into accepted tender facts and exclusion
// diagnostics. Excluded facts never influence overlap resolution.
func Classify(facts []tender.CurrencyFact, policy TenderPolicy) ([]tender.CurrencyFact, []tender.Diagnostic) {
	accepted := make([]tender.CurrencyFact, 0, len(facts))
	var diags []tender.Diagnostic
	for _, fact := range facts {
		if policy.Tender(fact) {
			accepted = append(accepted, fact)
			continue
		}
		diags = append(diags, tender.Diagnostic{
			CountryCode: fact.CountryCode,
			Kind:        tender.DiagExcluded,
			Detail:      "non-tender currency " + fact.CurrencyCode + " from " + fact.Source.String(),
		})
	}
	return accepted, diags
}
