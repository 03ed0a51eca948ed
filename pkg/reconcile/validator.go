package reconcile

import (
	"fmt"

	"github.com/tendermap/tendermap/pkg/errors"
	"github.com/tendermap/tendermap/pkg/tender"
)

// Validator re-checks the builder's output against the engine
// invariants. It is a read-only audit pass: it never mutates timelines,
// and its findings are meant for operator and CI review. A structural
// finding means the resolution policy failed to restore consistency,
// which indicates a bug in the builder and is the run's only fatal
// condition.
type Validator struct {
	refs          *tender.References
	multiCurrency map[string]bool
}

// NewValidator creates a Validator against the given reference tables.
// Countries in multiCurrency are declared dual-tender regimes: their
// co-circulating open-ended periods do not violate the non-overlap
// invariant.
func NewValidator(refs *tender.References, multiCurrency map[string]bool) *Validator {
	return &Validator{refs: refs, multiCurrency: multiCurrency}
}

// Validate audits all timelines and returns any new diagnostics. The
// returned error is non-nil only when a structural invariant is broken.
func (v *Validator) Validate(timelines []tender.Timeline) ([]tender.Diagnostic, error) {
	var diags []tender.Diagnostic
	var structural error

	for _, timeline := range timelines {
		tlDiags, err := v.validateTimeline(timeline)
		diags = append(diags, tlDiags...)
		if err != nil && structural == nil {
			structural = err
		}
	}
	return diags, structural
}

func (v *Validator) validateTimeline(timeline tender.Timeline) ([]tender.Diagnostic, error) {
	var diags []tender.Diagnostic
	var structural error

	record := func(err error) {
		diags = append(diags, tender.Diagnostic{
			CountryCode: timeline.CountryCode,
			Kind:        tender.DiagStructural,
			Detail:      err.Error(),
		})
		if structural == nil {
			structural = err
		}
	}

	if _, ok := v.refs.Country(timeline.CountryCode); !ok {
		record(errors.NewStructuralError(timeline.CountryCode, "reference_validity",
			"timeline references unknown country"))
	}

	for i, p := range timeline.Periods {
		if p.CountryCode != timeline.CountryCode {
			record(errors.NewStructuralError(timeline.CountryCode, "country_consistency",
				fmt.Sprintf("period %d carries country %s", i, p.CountryCode)))
		}
		if _, ok := v.refs.Currency(p.CurrencyCode); !ok {
			record(errors.NewStructuralError(timeline.CountryCode, "reference_validity",
				fmt.Sprintf("period references unknown currency %s", p.CurrencyCode)))
		}
		if !p.Start.IsZero() && !p.End.IsZero() && p.End.Before(p.Start) {
			record(errors.NewStructuralError(timeline.CountryCode, "interval_sanity",
				fmt.Sprintf("period %s ends before it starts", describePeriod(p))))
		}
		if i > 0 && timeline.Periods[i-1].Start.Compare(p.Start) > 0 {
			record(errors.NewStructuralError(timeline.CountryCode, "ordering",
				fmt.Sprintf("period %d starts before its predecessor", i)))
		}
	}

	// Different-currency overlaps must only survive resolution as the
	// documented transition pattern: exactly one end explicit.
	for i := 0; i < len(timeline.Periods); i++ {
		for j := i + 1; j < len(timeline.Periods); j++ {
			a, b := timeline.Periods[i], timeline.Periods[j]
			if a.CurrencyCode == b.CurrencyCode || !a.Overlaps(b) {
				continue
			}
			if a.End.IsZero() && b.End.IsZero() && v.multiCurrency[timeline.CountryCode] {
				continue
			}
			if a.End.IsZero() == b.End.IsZero() {
				record(errors.NewStructuralError(timeline.CountryCode, "non_overlap",
					fmt.Sprintf("unresolved overlap between %s and %s",
						describePeriod(a), describePeriod(b))))
			}
		}
	}

	// Multi-active countries are surfaced for operator review even when
	// the regime is declared: the declaration legitimizes the overlap,
	// it does not hide the evidence.
	if actives := timeline.Actives(); len(actives) > 1 {
		currencies := make([]string, len(actives))
		for i, p := range actives {
			currencies[i] = p.CurrencyCode
		}
		diags = append(diags, tender.Diagnostic{
			CountryCode: timeline.CountryCode,
			Kind:        tender.DiagMultiActive,
			Detail:      fmt.Sprintf("%d active currencies: %v", len(actives), currencies),
		})
	}

	return diags, structural
}
