package reconcile

import (
	"regexp"

	"github.com/tendermap/tendermap/pkg/errors"
	"github.com/tendermap/tendermap/pkg/tender"
)

var (
	countryCodePattern  = regexp.MustCompile(`^[A-Z]{2}$`)
	currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Normalize converts one source's raw record into a canonical
// CurrencyFact. It is a pure function: it fails with a
// NormalizationError when a code or date field does not parse to its
// ISO form, and with a ReferenceLookupError when a code is absent from
// the reference tables. A dangling foreign key would corrupt the
// timeline, so unknown codes are rejected rather than passed through.
func Normalize(raw tender.RawFact, refs *tender.References) (tender.CurrencyFact, error) {
	source := raw.Source.String()

	if !countryCodePattern.MatchString(raw.CountryCode) {
		return tender.CurrencyFact{}, errors.NewNormalizationError(
			"country_code", raw.CountryCode, source, "not an ISO 3166-1 alpha-2 code", nil)
	}
	if !currencyCodePattern.MatchString(raw.CurrencyCode) {
		return tender.CurrencyFact{}, errors.NewNormalizationError(
			"currency_code", raw.CurrencyCode, source, "not an ISO 4217 alpha-3 code", nil)
	}

	start, err := tender.ParseDate(raw.From)
	if err != nil {
		return tender.CurrencyFact{}, errors.NewNormalizationError(
			"from", raw.From, source, "not a YYYY-MM-DD date", err)
	}
	end, err := tender.ParseDate(raw.To)
	if err != nil {
		return tender.CurrencyFact{}, errors.NewNormalizationError(
			"to", raw.To, source, "not a YYYY-MM-DD date", err)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return tender.CurrencyFact{}, errors.NewNormalizationError(
			"to", raw.To, source, "end date precedes start date", nil)
	}

	isTender, err := parseTenderFlag(raw.Tender)
	if err != nil {
		return tender.CurrencyFact{}, errors.NewNormalizationError(
			"tender", *raw.Tender, source, "not a boolean", err)
	}

	if _, ok := refs.Country(raw.CountryCode); !ok {
		return tender.CurrencyFact{}, errors.NewReferenceLookupError("country", raw.CountryCode)
	}
	if _, ok := refs.Currency(raw.CurrencyCode); !ok {
		return tender.CurrencyFact{}, errors.NewReferenceLookupError("currency", raw.CurrencyCode)
	}

	return tender.CurrencyFact{
		CountryCode:  raw.CountryCode,
		CurrencyCode: raw.CurrencyCode,
		Start:        start,
		End:          end,
		Source:       raw.Source,
		Tender:       isTender,
	}, nil
}

// parseTenderFlag interprets the source-provided tender attribute.
// A silent source means tender; CLDR only annotates the exceptions.
func parseTenderFlag(flag *string) (bool, error) {
	if flag == nil {
		return true, nil
	}
	switch *flag {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, errors.ErrInvalidInput
	}
}
