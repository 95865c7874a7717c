package search

import "strings"

// Country code tables for the markets the product targets. TED expects ISO
// alpha-3 codes in buyer-country comparisons, while saved URLs and the UI
// historically carry alpha-2 codes or plain country names.

var countryAlpha2 = map[string]string{
	"SE": "SWE",
	"NO": "NOR",
	"DK": "DNK",
	"FI": "FIN",
	"IS": "ISL",
	"DE": "DEU",
}

var countryNames = map[string]string{
	"sweden":  "SWE",
	"norway":  "NOR",
	"denmark": "DNK",
	"finland": "FIN",
	"iceland": "ISL",
	"germany": "DEU",
	// Swedish names used by the search form
	"sverige":  "SWE",
	"norge":    "NOR",
	"danmark":  "DNK",
	"tyskland": "DEU",
	"island":   "ISL",
}

var countryAlpha3 = buildAlpha3Set()

func buildAlpha3Set() map[string]bool {
	set := make(map[string]bool, len(countryAlpha2))
	for _, alpha3 := range countryAlpha2 {
		set[alpha3] = true
	}
	return set
}

// NormalizeCountry canonicalizes a raw country value to an ISO alpha-3 code
// when resolvable. Unknown input degrades to an uppercased passthrough so a
// stale URL or saved search never fails normalization.
func NormalizeCountry(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	upper := strings.ToUpper(trimmed)
	if alpha3, ok := countryAlpha2[upper]; ok {
		return alpha3
	}
	if countryAlpha3[upper] {
		return upper
	}
	if alpha3, ok := countryNames[strings.ToLower(trimmed)]; ok {
		return alpha3
	}
	return upper
}

// SupportedCountries returns the alpha-3 codes of the supported markets in a
// stable order, for the search form metadata endpoint.
func SupportedCountries() []string {
	return []string{"SWE", "NOR", "DNK", "FIN", "ISL", "DEU"}
}
