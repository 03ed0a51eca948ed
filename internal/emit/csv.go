package emit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"github.com/tendermap/tendermap/pkg/errors"
	"github.com/tendermap/tendermap/pkg/reconcile"
	"github.com/tendermap/tendermap/pkg/tender"
)

// statusOf renders a period's tender status for the historical views.
func statusOf(p tender.ValidityPeriod) string {
	if p.Active() {
		return "Active"
	}
	return "Historical"
}

// orUnknown substitutes "Unknown" for an absent start date, matching
// the published view format.
func orUnknown(d tender.Date) string {
	if d.IsZero() {
		return "Unknown"
	}
	return d.String()
}

// writeCSV writes a header plus rows into the output directory.
func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// WriteCurrentCSV emits one row per country carrying its primary
// current tender.
func (w *Writer) WriteCurrentCSV(result *reconcile.Result) error {
	header := []string{
		"country_code", "country_name", "official_country_name", "iso_alpha3_code",
		"currency_code", "currency_name", "active_since", "last_updated",
	}
	stamp := w.generatedAt.Format(time.RFC3339)

	var rows [][]string
	for _, code := range result.Snapshot.CountryCodes() {
		entry := result.Snapshot.Entries[code]
		short, official, alpha3 := w.countryNames(code)
		rows = append(rows, []string{
			code, short, official, alpha3,
			entry.Primary.CurrencyCode,
			w.currencyName(entry.Primary.CurrencyCode),
			orUnknown(entry.Primary.Start),
			stamp,
		})
	}
	return w.writeCSV(CurrentCSVFile, header, rows)
}

// WriteHistoricalCSV emits every validity period: countries
// alphabetically, active periods before historical ones, then
// chronological.
func (w *Writer) WriteHistoricalCSV(result *reconcile.Result) error {
	header := []string{
		"country_code", "country_name", "official_country_name", "iso_alpha3_code",
		"currency_code", "currency_name", "active_from", "active_until",
		"status", "last_updated",
	}
	stamp := w.generatedAt.Format(time.RFC3339)

	var rows [][]string
	for _, timeline := range result.Timelines {
		short, official, alpha3 := w.countryNames(timeline.CountryCode)
		for _, p := range orderHistorical(timeline.Periods) {
			rows = append(rows, []string{
				timeline.CountryCode, short, official, alpha3,
				p.CurrencyCode,
				w.currencyName(p.CurrencyCode),
				orUnknown(p.Start),
				p.End.String(),
				statusOf(p),
				stamp,
			})
		}
	}
	return w.writeCSV(HistoricalCSVFile, header, rows)
}

// orderHistorical returns the periods with active ones first, each
// group in chronological order. Timelines arrive already sorted by
// start date.
func orderHistorical(periods []tender.ValidityPeriod) []tender.ValidityPeriod {
	out := make([]tender.ValidityPeriod, 0, len(periods))
	for _, p := range periods {
		if p.Active() {
			out = append(out, p)
		}
	}
	for _, p := range periods {
		if !p.Active() {
			out = append(out, p)
		}
	}
	return out
}
