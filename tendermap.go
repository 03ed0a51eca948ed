// Package tendermap reconciles legal-tender history from heterogeneous
// reference sources into per-country currency timelines and a current
// country-to-currency snapshot.
//
// It wraps the reconciliation engine with input loading and output
// emission so library consumers can run the whole pipeline in one call:
//
//	tm, err := tendermap.New(
//	    tendermap.WithReferenceFiles("countries.yaml", "currencies.yaml"),
//	    tendermap.WithCLDR("supplementalData.xml"),
//	    tendermap.WithFactFile(tender.SourceISO4217, "iso4217_facts.yaml"),
//	    tendermap.WithOutputDir("data"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := tm.Run(ctx)
//
// The engine itself lives in pkg/reconcile and can be driven directly
// when the caller already holds normalized inputs.
package tendermap

import (
	"context"

	"github.com/tendermap/tendermap/internal/emit"
	"github.com/tendermap/tendermap/internal/sources"
	"github.com/tendermap/tendermap/pkg/errors"
	"github.com/tendermap/tendermap/pkg/logging"
	"github.com/tendermap/tendermap/pkg/reconcile"
	"github.com/tendermap/tendermap/pkg/tender"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client runs the full pipeline: load inputs, reconcile, emit views.
type Client interface {
	// References returns the loaded reference tables.
	References() *tender.References

	// Run loads all configured inputs, reconciles them, and, when an
	// output directory is configured, emits the published views. The
	// Result is returned even on a structural failure so the evidence
	// stays reviewable; no views are written in that case.
	Run(ctx context.Context) (*reconcile.Result, error)
}

// client is the internal implementation of the Client interface.
type client struct {
	config     *config
	refs       *tender.References
	reconciler reconcile.Reconciler
}

// factFile pairs a fact file path with the source it speaks for.
type factFile struct {
	source tender.Source
	path   string
}

// config collects everything the functional options can set.
type config struct {
	cldrPath       string
	factFiles      []factFile
	countriesPath  string
	currenciesPath string
	refs           *tender.References
	outputDir      string
	version        string
	engineOpts     []reconcile.Option
}

// Option is a function that configures a Client instance.
type Option func(*config) error

// WithCLDR configures the CLDR supplementalData XML file to ingest.
func WithCLDR(path string) Option {
	return func(c *config) error {
		c.cldrPath = path
		return nil
	}
}

// WithFactFile adds a YAML fact file speaking for the given source.
// May be repeated; files are ingested in the order configured.
func WithFactFile(source tender.Source, path string) Option {
	return func(c *config) error {
		if source == "" {
			return errors.NewConfigError("tendermap", "fact file source cannot be empty", nil)
		}
		c.factFiles = append(c.factFiles, factFile{source: source, path: path})
		return nil
	}
}

// WithReferenceFiles configures the country and currency reference
// tables to load from YAML files.
func WithReferenceFiles(countriesPath, currenciesPath string) Option {
	return func(c *config) error {
		c.countriesPath = countriesPath
		c.currenciesPath = currenciesPath
		return nil
	}
}

// WithReferences injects already-loaded reference tables, bypassing
// file loading. Takes precedence over WithReferenceFiles.
func WithReferences(refs *tender.References) Option {
	return func(c *config) error {
		if refs == nil {
			return errors.NewConfigError("tendermap", "references cannot be nil", nil)
		}
		c.refs = refs
		return nil
	}
}

// WithOutputDir configures where Run writes the published views. When
// unset, Run reconciles without emitting.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		c.outputDir = dir
		return nil
	}
}

// WithVersion stamps the emitted metadata with a generator version.
func WithVersion(version string) Option {
	return func(c *config) error {
		c.version = version
		return nil
	}
}

// WithEngineOptions passes options through to the reconciliation
// engine, such as a custom tender policy or source precedence.
func WithEngineOptions(opts ...reconcile.Option) Option {
	return func(c *config) error {
		c.engineOpts = append(c.engineOpts, opts...)
		return nil
	}
}

// New creates a Client with the given options. Reference tables are
// required, either as files or injected; at least one fact input must
// be configured.
func New(opts ...Option) (Client, error) {
	cfg := &config{version: "dev"}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.cldrPath == "" && len(cfg.factFiles) == 0 {
		return nil, errors.NewConfigError("tendermap", "at least one fact input is required", nil)
	}

	refs := cfg.refs
	if refs == nil {
		if cfg.countriesPath == "" || cfg.currenciesPath == "" {
			return nil, errors.NewConfigError("tendermap", "reference tables are required", nil)
		}
		countries, err := sources.LoadCountries(cfg.countriesPath)
		if err != nil {
			return nil, err
		}
		currencies, err := sources.LoadCurrencies(cfg.currenciesPath)
		if err != nil {
			return nil, err
		}
		refs = tender.NewReferences(countries, currencies)
	}

	engine, err := reconcile.New(refs, cfg.engineOpts...)
	if err != nil {
		return nil, err
	}

	return &client{config: cfg, refs: refs, reconciler: engine}, nil
}

// References returns the loaded reference tables.
func (c *client) References() *tender.References {
	return c.refs
}

// Run loads all configured inputs, reconciles them, and emits the
// published views when an output directory is configured.
func (c *client) Run(ctx context.Context) (*reconcile.Result, error) {
	var raw []tender.RawFact

	if c.config.cldrPath != "" {
		facts, err := sources.LoadCLDR(c.config.cldrPath)
		if err != nil {
			return nil, err
		}
		raw = append(raw, facts...)
	}
	for _, ff := range c.config.factFiles {
		facts, err := sources.LoadFacts(ff.path, ff.source)
		if err != nil {
			return nil, err
		}
		raw = append(raw, facts...)
	}
	logging.Ctx(ctx).Debug().Int("records", len(raw)).Msg("Loaded raw facts")

	result, err := c.reconciler.Reconcile(ctx, raw)
	if err != nil {
		return result, err
	}

	if c.config.outputDir != "" {
		writer := emit.NewWriter(c.config.outputDir, c.config.version, c.refs)
		if err := writer.WriteAll(result); err != nil {
			return result, err
		}
	}
	return result, nil
}
