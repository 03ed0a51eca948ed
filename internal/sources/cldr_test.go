package sources

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendermap/tendermap/pkg/tender"
)

const sampleCLDR = `<?xml version="1.0" encoding="UTF-8"?>
<supplementalData>
  <currencyData>
    <region iso3166="DE">
      <currency iso4217="EUR" from="1999-01-01"/>
      <currency iso4217="DEM" from="1948-06-20" to="2002-02-28"/>
    </region>
    <region iso3166="US">
      <currency iso4217="USD" from="1792-04-02"/>
      <currency iso4217="USN" tender="false"/>
    </region>
    <region iso3166="150">
      <currency iso4217="EUR" from="1999-01-01"/>
    </region>
  </currencyData>
</supplementalData>`

func TestParseCLDR(t *testing.T) {
	facts, err := ParseCLDR(strings.NewReader(sampleCLDR))
	require.NoError(t, err)
	require.Len(t, facts, 4, "numeric aggregate regions are skipped")

	assert.Equal(t, tender.RawFact{
		CountryCode:  "DE",
		CurrencyCode: "EUR",
		From:         "1999-01-01",
		Source:       tender.SourceCLDR,
	}, facts[0])
	assert.Equal(t, "2002-02-28", facts[1].To)

	require.NotNil(t, facts[3].Tender)
	assert.Equal(t, "false", *facts[3].Tender)
	assert.Nil(t, facts[2].Tender, "absent tender attribute stays nil")
}

func TestParseCLDRRejectsMalformedXML(t *testing.T) {
	_, err := ParseCLDR(strings.NewReader("<supplementalData><currencyData>"))
	assert.Error(t, err)
}

func TestIsAlpha2(t *testing.T) {
	assert.True(t, isAlpha2("DE"))
	assert.True(t, isAlpha2("ZZ"))
	assert.False(t, isAlpha2("150"))
	assert.False(t, isAlpha2("de"))
	assert.False(t, isAlpha2("DEU"))
	assert.False(t, isAlpha2("D"))
}
