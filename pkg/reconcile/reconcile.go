// Package reconcile implements the legal-tender reconciliation engine:
// it ingests heterogeneous currency-territory facts, resolves conflicts
// between sources by an explicit precedence-ordered policy, builds
// per-country historical timelines, audits them against the engine
// invariants, and derives the current snapshot.
//
// The engine is a pure batch transform: given the same fact set it
// produces byte-identical timelines, snapshot, and diagnostics.
package reconcile

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tendermap/tendermap/pkg/errors"
	"github.com/tendermap/tendermap/pkg/logging"
	"github.com/tendermap/tendermap/pkg/tender"
)

// defaultWorkers bounds the per-country fan-out.
const defaultWorkers = 8

// Reconciler runs the full pipeline: normalize, classify, build,
// validate, derive.
type Reconciler interface {
	// Reconcile processes one batch of raw source records. The returned
	// error is non-nil only for a structural invariant violation; the
	// Result is populated either way so the evidence is reviewable.
	Reconcile(ctx context.Context, raw []tender.RawFact) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	refs          *tender.References
	policy        TenderPolicy
	precedence    Precedence
	workers       int
	multiCurrency map[string]bool
}

// Option configures a Reconciler.
type Option func(*reconciler) error

// New creates a Reconciler against the given reference tables.
func New(refs *tender.References, opts ...Option) (Reconciler, error) {
	if refs == nil {
		return nil, errors.NewConfigError("reconciler", "reference tables are required", nil)
	}
	r := &reconciler{
		refs:          refs,
		policy:        NewDefaultTenderPolicy(),
		precedence:    DefaultPrecedence(),
		workers:       defaultWorkers,
		multiCurrency: make(map[string]bool),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Reconcile processes one batch of raw source records.
func (r *reconciler) Reconcile(ctx context.Context, raw []tender.RawFact) (*Result, error) {
	started := time.Now()
	log := logging.Ctx(ctx)

	result := &Result{Snapshot: tender.Snapshot{Entries: map[string]tender.SnapshotEntry{}}}
	result.Statistics.RawRecords = len(raw)

	// Normalize. Malformed or unresolvable records are skipped and
	// surfaced as diagnostics; the run continues.
	facts := make([]tender.CurrencyFact, 0, len(raw))
	for _, record := range raw {
		fact, err := Normalize(record, r.refs)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, normalizationDiagnostic(record, err))
			continue
		}
		facts = append(facts, fact)
	}
	result.Statistics.NormalizedFacts = len(facts)

	// Classify tender before timeline construction so excluded facts
	// never influence overlap resolution.
	accepted, excludedDiags := Classify(facts, r.policy)
	result.Diagnostics = append(result.Diagnostics, excludedDiags...)
	result.Statistics.AcceptedFacts = len(accepted)
	result.Statistics.ExcludedFacts = len(facts) - len(accepted)

	// Group per country. A country whose facts were all excluded still
	// appears, with an empty timeline and a no_data diagnostic.
	byCountry := make(map[string][]tender.CurrencyFact)
	for _, fact := range facts {
		if byCountry[fact.CountryCode] == nil {
			byCountry[fact.CountryCode] = []tender.CurrencyFact{}
		}
	}
	for _, fact := range accepted {
		byCountry[fact.CountryCode] = append(byCountry[fact.CountryCode], fact)
	}

	countries := make([]string, 0, len(byCountry))
	for code := range byCountry {
		countries = append(countries, code)
	}
	sort.Strings(countries)

	// Per-country construction is independent, so fan out. Each worker
	// writes only its own slot; results are concatenated afterwards.
	timelines := make([]tender.Timeline, len(countries))
	countryDiags := make([][]tender.Diagnostic, len(countries))
	builder := NewBuilder(r.precedence, r.multiCurrency)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)
	for i, code := range countries {
		i, code := i, code
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			timelines[i], countryDiags[i] = builder.Build(code, byCountry[code])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return result, err
	}

	result.Timelines = timelines
	for _, diags := range countryDiags {
		result.Diagnostics = append(result.Diagnostics, diags...)
	}
	result.Statistics.Countries = len(timelines)
	for _, timeline := range timelines {
		result.Statistics.Periods += len(timeline.Periods)
	}

	// Audit. Structural findings are recorded and fatal.
	auditDiags, structuralErr := NewValidator(r.refs, r.multiCurrency).Validate(result.Timelines)
	result.Diagnostics = append(result.Diagnostics, auditDiags...)

	result.Snapshot = DeriveSnapshot(result.Timelines)
	tender.SortDiagnostics(result.Diagnostics)
	result.Statistics.TotalTimeMs = time.Since(started).Milliseconds()

	log.Info().
		Int("raw", result.Statistics.RawRecords).
		Int("accepted", result.Statistics.AcceptedFacts).
		Int("countries", result.Statistics.Countries).
		Int("diagnostics", len(result.Diagnostics)).
		Int64("elapsed_ms", result.Statistics.TotalTimeMs).
		Msg("Reconciliation complete")

	return result, structuralErr
}

// normalizationDiagnostic maps a skipped record's error onto the
// diagnostic channel, distinguishing unresolvable codes from malformed
// fields.
func normalizationDiagnostic(record tender.RawFact, err error) tender.Diagnostic {
	kind := tender.DiagNormalization
	if errors.IsReferenceLookup(err) {
		kind = tender.DiagReferenceLookup
	}
	country := record.CountryCode
	if !countryCodePattern.MatchString(country) {
		country = ""
	}
	return tender.Diagnostic{
		CountryCode: country,
		Kind:        kind,
		Detail:      err.Error(),
	}
}

// Option Functions
// ================

// WithTenderPolicy substitutes the tender classification policy.
func WithTenderPolicy(policy TenderPolicy) Option {
	return func(r *reconciler) error {
		if policy == nil {
			return errors.NewConfigError("reconciler", "tender policy cannot be nil", nil)
		}
		r.policy = policy
		return nil
	}
}

// WithPrecedence substitutes the source precedence order.
func WithPrecedence(precedence Precedence) Option {
	return func(r *reconciler) error {
		if len(precedence) == 0 {
			return errors.NewConfigError("reconciler", "precedence cannot be empty", nil)
		}
		r.precedence = precedence
		return nil
	}
}

// WithWorkers bounds the per-country fan-out.
func WithWorkers(n int) Option {
	return func(r *reconciler) error {
		if n < 1 {
			return errors.NewConfigError("reconciler", "worker count must be positive", nil)
		}
		r.workers = n
		return nil
	}
}

// WithMultiCurrency declares countries whose multiple active tenders
// legitimately co-circulate: the builder keeps their open-ended periods
// side by side and the validator accepts the overlap. A multi_active
// diagnostic is still surfaced for review.
func WithMultiCurrency(countryCodes ...string) Option {
	return func(r *reconciler) error {
		for _, code := range countryCodes {
			r.multiCurrency[code] = true
		}
		return nil
	}
}
