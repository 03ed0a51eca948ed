package emit

import (
	"github.com/tendermap/tendermap/pkg/reconcile"
)

// currentEntry is one country's record in the current JSON view.
type currentEntry struct {
	CountryName         string           `json:"country_name"`
	OfficialCountryName string           `json:"official_country_name"`
	ISOAlpha3Code       string           `json:"iso_alpha3_code"`
	CurrencyCode        string           `json:"currency_code"`
	CurrencyName        string           `json:"currency_name"`
	ActiveSince         string           `json:"active_since"`
	Secondary           []currencyRecord `json:"secondary_currencies,omitempty"`
}

// currencyRecord is one validity period in the historical JSON view.
type currencyRecord struct {
	CurrencyCode string `json:"currency_code"`
	CurrencyName string `json:"currency_name"`
	ActiveFrom   string `json:"active_from"`
	ActiveUntil  string `json:"active_until"`
	Status       string `json:"status"`
}

// historicalEntry is one country's record in the historical JSON view.
type historicalEntry struct {
	CountryName         string           `json:"country_name"`
	OfficialCountryName string           `json:"official_country_name"`
	ISOAlpha3Code       string           `json:"iso_alpha3_code"`
	Currencies          []currencyRecord `json:"currencies"`
}

// WriteCurrentJSON emits the country to current-currency mapping,
// including secondary tenders for multi-currency regimes.
func (w *Writer) WriteCurrentJSON(result *reconcile.Result) error {
	data := make(map[string]currentEntry)
	for _, code := range result.Snapshot.CountryCodes() {
		entry := result.Snapshot.Entries[code]
		short, official, alpha3 := w.countryNames(code)
		record := currentEntry{
			CountryName:         short,
			OfficialCountryName: official,
			ISOAlpha3Code:       alpha3,
			CurrencyCode:        entry.Primary.CurrencyCode,
			CurrencyName:        w.currencyName(entry.Primary.CurrencyCode),
			ActiveSince:         orUnknown(entry.Primary.Start),
		}
		for _, p := range entry.Secondary {
			record.Secondary = append(record.Secondary, currencyRecord{
				CurrencyCode: p.CurrencyCode,
				CurrencyName: w.currencyName(p.CurrencyCode),
				ActiveFrom:   orUnknown(p.Start),
				ActiveUntil:  p.End.String(),
				Status:       statusOf(p),
			})
		}
		data[code] = record
	}
	return w.writeJSON(CurrentJSONFile, data)
}

// WriteHistoricalJSON emits the complete timeline view per country.
func (w *Writer) WriteHistoricalJSON(result *reconcile.Result) error {
	data := make(map[string]historicalEntry)
	for _, timeline := range result.Timelines {
		if timeline.Empty() {
			continue
		}
		short, official, alpha3 := w.countryNames(timeline.CountryCode)
		entry := historicalEntry{
			CountryName:         short,
			OfficialCountryName: official,
			ISOAlpha3Code:       alpha3,
		}
		for _, p := range orderHistorical(timeline.Periods) {
			entry.Currencies = append(entry.Currencies, currencyRecord{
				CurrencyCode: p.CurrencyCode,
				CurrencyName: w.currencyName(p.CurrencyCode),
				ActiveFrom:   orUnknown(p.Start),
				ActiveUntil:  p.End.String(),
				Status:       statusOf(p),
			})
		}
		data[timeline.CountryCode] = entry
	}
	return w.writeJSON(HistoricalJSONFile, data)
}
