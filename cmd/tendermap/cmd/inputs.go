package cmd

import (
	"github.com/spf13/viper"

	"github.com/tendermap/tendermap/internal/sources"
	"github.com/tendermap/tendermap/pkg/errors"
	"github.com/tendermap/tendermap/pkg/logging"
	"github.com/tendermap/tendermap/pkg/reconcile"
	"github.com/tendermap/tendermap/pkg/tender"
)

// loadReferences reads the country and currency reference tables named
// by configuration.
func loadReferences(v *viper.Viper) (*tender.References, error) {
	countriesPath := v.GetString("countries")
	currenciesPath := v.GetString("currencies")
	if countriesPath == "" || currenciesPath == "" {
		return nil, errors.NewConfigError("inputs",
			"both --countries and --currencies reference tables are required", nil)
	}

	countries, err := sources.LoadCountries(countriesPath)
	if err != nil {
		return nil, err
	}
	currencies, err := sources.LoadCurrencies(currenciesPath)
	if err != nil {
		return nil, err
	}

	logging.Info().
		Int("countries", len(countries)).
		Int("currencies", len(currencies)).
		Msg("Loaded reference tables")
	return tender.NewReferences(countries, currencies), nil
}

// loadFacts gathers raw facts from every configured source. At least
// one source must be named.
func loadFacts(v *viper.Viper) ([]tender.RawFact, error) {
	var facts []tender.RawFact

	if path := v.GetString("cldr"); path != "" {
		cldrFacts, err := sources.LoadCLDR(path)
		if err != nil {
			return nil, err
		}
		logging.Info().Int("facts", len(cldrFacts)).Str("source", "cldr").Msg("Loaded facts")
		facts = append(facts, cldrFacts...)
	}
	if path := v.GetString("iso4217-facts"); path != "" {
		isoFacts, err := sources.LoadFacts(path, tender.SourceISO4217)
		if err != nil {
			return nil, err
		}
		logging.Info().Int("facts", len(isoFacts)).Str("source", "iso4217").Msg("Loaded facts")
		facts = append(facts, isoFacts...)
	}
	if path := v.GetString("registry-facts"); path != "" {
		registryFacts, err := sources.LoadFacts(path, tender.SourceCountryRegistry)
		if err != nil {
			return nil, err
		}
		logging.Info().Int("facts", len(registryFacts)).Str("source", "country_registry").Msg("Loaded facts")
		facts = append(facts, registryFacts...)
	}

	if len(facts) == 0 {
		return nil, errors.NewConfigError("inputs",
			"no fact sources configured; pass --cldr, --iso4217-facts, or --registry-facts", nil)
	}
	return facts, nil
}

// buildReconciler assembles the engine from configuration: an optional
// denylist override, a precedence override, multi-currency country
// declarations, and the worker limit.
func buildReconciler(v *viper.Viper, refs *tender.References) (reconcile.Reconciler, error) {
	opts := []reconcile.Option{
		reconcile.WithWorkers(v.GetInt("workers")),
	}

	if denylist := v.GetStringSlice("denylist"); len(denylist) > 0 {
		opts = append(opts, reconcile.WithTenderPolicy(reconcile.NewDenylistPolicy(denylist...)))
	}
	if order := v.GetStringSlice("precedence"); len(order) > 0 {
		precedence := make(reconcile.Precedence, len(order))
		for i, name := range order {
			precedence[i] = tender.Source(name)
		}
		opts = append(opts, reconcile.WithPrecedence(precedence))
	}
	if multi := v.GetStringSlice("multi_currency"); len(multi) > 0 {
		opts = append(opts, reconcile.WithMultiCurrency(multi...))
	}

	return reconcile.New(refs, opts...)
}
