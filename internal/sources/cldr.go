package sources

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/tendermap/tendermap/pkg/errors"
	"github.com/tendermap/tendermap/pkg/logging"
	"github.com/tendermap/tendermap/pkg/tender"
)

// supplementalData mirrors the slice of the CLDR supplemental XML the
// engine needs: region elements keyed by ISO 3166 code, each carrying
// its currency intervals.
type supplementalData struct {
	XMLName      xml.Name     `xml:"supplementalData"`
	CurrencyData currencyData `xml:"currencyData"`
}

type currencyData struct {
	Regions []cldrRegion `xml:"region"`
}

type cldrRegion struct {
	ISO3166    string         `xml:"iso3166,attr"`
	Currencies []cldrCurrency `xml:"currency"`
}

type cldrCurrency struct {
	ISO4217 string `xml:"iso4217,attr"`
	From    string `xml:"from,attr"`
	To      string `xml:"to,attr"`
	Tender  string `xml:"tender,attr"`
}

// ParseCLDR extracts raw currency-territory facts from a CLDR
// supplementalData XML stream. Region codes that are not ISO 3166-1
// alpha-2 (the numeric world/continent aggregates) are skipped here;
// everything else is passed through for the normalizer to judge.
func ParseCLDR(r io.Reader) ([]tender.RawFact, error) {
	var doc supplementalData
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.WrapParse("xml", "", err)
	}

	var facts []tender.RawFact
	skipped := 0
	for _, region := range doc.CurrencyData.Regions {
		if !isAlpha2(region.ISO3166) {
			skipped++
			continue
		}
		for _, currency := range region.Currencies {
			fact := tender.RawFact{
				CountryCode:  region.ISO3166,
				CurrencyCode: currency.ISO4217,
				From:         currency.From,
				To:           currency.To,
				Source:       tender.SourceCLDR,
			}
			if currency.Tender != "" {
				flag := currency.Tender
				fact.Tender = &flag
			}
			facts = append(facts, fact)
		}
	}

	logging.Debug().
		Int("facts", len(facts)).
		Int("skipped_regions", skipped).
		Msg("Parsed CLDR currency data")
	return facts, nil
}

// LoadCLDR parses a CLDR supplementalData XML file.
func LoadCLDR(path string) ([]tender.RawFact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	facts, err := ParseCLDR(f)
	if err != nil {
		return nil, errors.WrapParse("xml", path, err)
	}
	return facts, nil
}

// isAlpha2 reports whether a region code is two ASCII uppercase letters.
func isAlpha2(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
