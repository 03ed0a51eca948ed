package sources

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// regionNamer renders English region names from ISO 3166 codes.
var regionNamer = display.English.Regions()

// RegionName returns the English display name for an ISO 3166-1 alpha-2
// code, or the empty string when the code is not a known region.
func RegionName(code string) string {
	region, err := language.ParseRegion(code)
	if err != nil {
		return ""
	}
	return regionNamer.Name(region)
}
