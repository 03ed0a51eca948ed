package reconcile_test

import (
	"testing"

	"github.com/tendermap/tendermap/pkg/tender"
)

// testReferences builds the reference tables shared by the engine tests.
func testReferences() *tender.References {
	countries := []tender.Country{
		{Code: "DE", Alpha3: "DEU", ShortName: "Germany", OfficialName: "Federal Republic of Germany"},
		{Code: "FR", Alpha3: "FRA", ShortName: "France", OfficialName: "French Republic"},
		{Code: "PA", Alpha3: "PAN", ShortName: "Panama", OfficialName: "Republic of Panama"},
		{Code: "US", Alpha3: "USA", ShortName: "United States", OfficialName: "United States of America"},
		{Code: "EC", Alpha3: "ECU", ShortName: "Ecuador", OfficialName: "Republic of Ecuador"},
	}
	currencies := []tender.Currency{
		{Code: "DEM", Name: "German Mark"},
		{Code: "EUR", Name: "Euro"},
		{Code: "FRF", Name: "French Franc"},
		{Code: "USD", Name: "US Dollar"},
		{Code: "PAB", Name: "Panamanian Balboa"},
		{Code: "ECS", Name: "Ecuadorian Sucre"},
		{Code: "XTS", Name: "Testing Code"},
		{Code: "XAU", Name: "Gold"},
	}
	return tender.NewReferences(countries, currencies)
}

// date parses a YYYY-MM-DD literal, failing the test on error.
func date(t *testing.T, s string) tender.Date {
	t.Helper()
	d, err := tender.ParseDate(s)
	if err != nil {
		t.Fatalf("parsing date %q: %v", s, err)
	}
	return d
}

// fact builds a canonical tender fact.
func fact(t *testing.T, country, currency, from, to string, source tender.Source) tender.CurrencyFact {
	t.Helper()
	return tender.CurrencyFact{
		CountryCode:  country,
		CurrencyCode: currency,
		Start:        date(t, from),
		End:          date(t, to),
		Source:       source,
		Tender:       true,
	}
}

// strptr returns a pointer to its argument, for raw tender flags.
func strptr(s string) *string {
	return &s
}
