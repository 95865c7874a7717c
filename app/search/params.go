package search

import (
	"net/url"
	"strconv"
	"strings"
)

// URL parameter codec for shareable search links and saved-search URLs.
// ToSearchParams and FromSearchParams round-trip any normalized Filter.

const (
	paramCPV      = "cpv"
	paramGeo      = "geo"
	paramText     = "q"
	paramFrom     = "from"
	paramTo       = "to"
	paramCountry  = "country"
	paramCity     = "city"
	paramType     = "type"
	paramValueMin = "min"
	paramValueMax = "max"
	paramPage     = "page"
)

// ToSearchParams serializes a filter to URL query parameters. Empty fields
// are omitted entirely; the page parameter is only emitted beyond page 1.
func ToSearchParams(f Filter, page int) url.Values {
	params := url.Values{}
	if len(f.CPVCodes) > 0 {
		params.Set(paramCPV, strings.Join(f.CPVCodes, ","))
	}
	if len(f.GeoCodes) > 0 {
		params.Set(paramGeo, strings.Join(f.GeoCodes, ","))
	}
	if f.FreeText != "" {
		params.Set(paramText, f.FreeText)
	}
	if f.PublishedAfter != "" {
		params.Set(paramFrom, f.PublishedAfter)
	}
	if f.DeadlineBefore != "" {
		params.Set(paramTo, f.DeadlineBefore)
	}
	if f.BuyerCountry != "" {
		params.Set(paramCountry, f.BuyerCountry)
	}
	if f.BuyerCity != "" {
		params.Set(paramCity, f.BuyerCity)
	}
	if f.NoticeType != "" {
		params.Set(paramType, f.NoticeType)
	}
	if f.ValueMin != "" {
		params.Set(paramValueMin, f.ValueMin)
	}
	if f.ValueMax != "" {
		params.Set(paramValueMax, f.ValueMax)
	}
	if page > 1 {
		params.Set(paramPage, strconv.Itoa(page))
	}
	return params
}

// FromSearchParams parses URL query parameters into a normalized Filter and
// a 1-based page number. Missing or malformed page values default to 1.
func FromSearchParams(params url.Values) (Filter, int) {
	raw := Filter{
		CPVCodes:       splitList(params.Get(paramCPV)),
		GeoCodes:       splitList(params.Get(paramGeo)),
		FreeText:       params.Get(paramText),
		PublishedAfter: params.Get(paramFrom),
		DeadlineBefore: params.Get(paramTo),
		BuyerCountry:   params.Get(paramCountry),
		BuyerCity:      params.Get(paramCity),
		NoticeType:     params.Get(paramType),
		ValueMin:       params.Get(paramValueMin),
		ValueMax:       params.Get(paramValueMax),
	}

	page := 1
	if p, err := strconv.Atoi(params.Get(paramPage)); err == nil && p > 1 {
		page = p
	}

	return Normalize(raw), page
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
