// Package emit serializes reconciliation output into the project's
// published views: current and historical CSV and JSON files, the ISO
// mapping view, and a metadata record. It consumes finished results and
// never feeds anything back into the engine.
package emit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/tendermap/tendermap/pkg/errors"
	"github.com/tendermap/tendermap/pkg/logging"
	"github.com/tendermap/tendermap/pkg/reconcile"
	"github.com/tendermap/tendermap/pkg/tender"
)

// Output file names, fixed so downstream consumers can rely on them.
const (
	CurrentCSVFile     = "current_currencies.csv"
	CurrentJSONFile    = "current_currencies.json"
	HistoricalCSVFile  = "historical_currencies.csv"
	HistoricalJSONFile = "historical_currencies.json"
	ISOMappingsFile    = "iso_mappings.json"
	MetadataFile       = "metadata.json"
)

// dirPermissions for created output directories.
const dirPermissions = 0o755

// Writer emits every view of one reconciliation run into a directory.
// The generation timestamp is captured once so all files of a run agree.
type Writer struct {
	dir         string
	version     string
	generatedAt time.Time
	refs        *tender.References
}

// NewWriter creates a Writer for the given output directory.
func NewWriter(dir, version string, refs *tender.References) *Writer {
	return &Writer{
		dir:         dir,
		version:     version,
		generatedAt: time.Now().UTC(),
		refs:        refs,
	}
}

// WriteAll emits every view for the result.
func (w *Writer) WriteAll(result *reconcile.Result) error {
	if err := os.MkdirAll(w.dir, dirPermissions); err != nil {
		return errors.WrapIO("create", w.dir, err)
	}

	steps := []struct {
		name string
		fn   func(*reconcile.Result) error
	}{
		{CurrentCSVFile, w.WriteCurrentCSV},
		{HistoricalCSVFile, w.WriteHistoricalCSV},
		{CurrentJSONFile, w.WriteCurrentJSON},
		{HistoricalJSONFile, w.WriteHistoricalJSON},
		{ISOMappingsFile, func(*reconcile.Result) error { return w.WriteISOMappings() }},
		{MetadataFile, w.WriteMetadata},
	}
	for _, step := range steps {
		if err := step.fn(result); err != nil {
			return err
		}
		logging.Debug().Str("file", step.name).Msg("Wrote output view")
	}
	return nil
}

// countryNames resolves the reference names for a country code, falling
// back to the code itself so a view row is never blank.
func (w *Writer) countryNames(code string) (short, official, alpha3 string) {
	country, ok := w.refs.Country(code)
	if !ok {
		return code, code, ""
	}
	return country.ShortName, country.OfficialName, country.Alpha3
}

// currencyName resolves a currency's reference name, falling back to
// the code.
func (w *Writer) currencyName(code string) string {
	currency, ok := w.refs.Currency(code)
	if !ok {
		return code
	}
	return currency.Name
}

// writeJSON marshals a value with indentation into the output directory.
func (w *Writer) writeJSON(name string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errors.WrapParse("json", name, err)
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Metadata is the record carrying generation details and diagnostic
// counts for one run.
type Metadata struct {
	GeneratedAt      string               `json:"generated_at"`
	GeneratorVersion string               `json:"generator_version"`
	TotalRegions     int                  `json:"total_regions"`
	Statistics       reconcile.Statistics `json:"statistics"`
	Diagnostics      map[string]int       `json:"diagnostics"`
}

// WriteMetadata emits the run metadata record.
func (w *Writer) WriteMetadata(result *reconcile.Result) error {
	diagnostics := make(map[string]int)
	for kind, count := range result.DiagnosticCounts() {
		diagnostics[kind.String()] = count
	}
	return w.writeJSON(MetadataFile, Metadata{
		GeneratedAt:      w.generatedAt.Format(time.RFC3339),
		GeneratorVersion: w.version,
		TotalRegions:     result.Statistics.Countries,
		Statistics:       result.Statistics,
		Diagnostics:      diagnostics,
	})
}

// WriteISOMappings emits the simplified ISO mapping view: country and
// currency code-to-name maps plus the alpha-2 to alpha-3 projection.
func (w *Writer) WriteISOMappings() error {
	countries := make(map[string]string)
	alpha2to3 := make(map[string]string)
	for _, c := range w.refs.Countries() {
		countries[c.Code] = c.ShortName
		if c.Alpha3 != "" {
			alpha2to3[c.Code] = c.Alpha3
		}
	}
	currencies := make(map[string]string)
	for _, c := range w.refs.Currencies() {
		currencies[c.Code] = c.Name
	}
	return w.writeJSON(ISOMappingsFile, map[string]any{
		"countries":        countries,
		"currencies":       currencies,
		"alpha2_to_alpha3": alpha2to3,
	})
}
