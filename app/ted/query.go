package ted

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/johan-windahl/procurdo/app/search"
)

const (
	// DefaultHomeCountry bounds unfiltered geographic searches to the
	// product's target market.
	DefaultHomeCountry = "SWE"
	// DefaultLookbackDays is the publication-date window applied when a
	// filter has no explicit from-date, so queries are never unbounded.
	DefaultLookbackDays = 365
)

// QueryBuilder assembles TED expert-syntax query strings from canonical
// filters. Output is deterministic: clause order is fixed and the default
// date window uses TED's relative today(-N) operator rather than a
// timestamp computed here.
type QueryBuilder struct {
	HomeCountry  string
	LookbackDays int
}

func NewQueryBuilder(homeCountry string, lookbackDays int) *QueryBuilder {
	if homeCountry == "" {
		homeCountry = DefaultHomeCountry
	}
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &QueryBuilder{HomeCountry: homeCountry, LookbackDays: lookbackDays}
}

// Run builds the boolean query expression for a filter. Clauses are joined
// with AND in a fixed order: CPV, geography, free text, publication date,
// deadline, buyer country, buyer city, notice type, value bounds. The
// geography and publication-date clauses are always present.
func (b *QueryBuilder) Run(f search.Filter) string {
	var parts []string

	if len(f.CPVCodes) > 0 {
		terms := make([]string, len(f.CPVCodes))
		for i, code := range f.CPVCodes {
			terms[i] = "classification-cpv = " + code
		}
		parts = append(parts, "("+strings.Join(terms, " OR ")+")")
	}

	geoCodes := f.GeoCodes
	if len(geoCodes) == 0 {
		geoCodes = []string{b.HomeCountry}
	}
	parts = append(parts, "place-of-performance IN ("+strings.Join(geoCodes, " ")+")")

	if f.FreeText != "" {
		parts = append(parts, "FT ~ ("+quote(f.FreeText)+")")
	}

	if f.PublishedAfter != "" {
		parts = append(parts, "publication-date >= "+formatDateCompact(f.PublishedAfter))
	} else {
		parts = append(parts, fmt.Sprintf("publication-date >= today(-%d)", b.LookbackDays))
	}

	if f.DeadlineBefore != "" {
		parts = append(parts, "deadline-receipt-tender-date-lot <= "+formatDateCompact(f.DeadlineBefore))
	}

	if f.BuyerCountry != "" {
		parts = append(parts, "buyer-country = "+quote(f.BuyerCountry))
	}

	if f.BuyerCity != "" {
		parts = append(parts, "buyer-city ~ ("+quote(f.BuyerCity)+")")
	}

	if f.NoticeType != "" {
		parts = append(parts, noticeTypeClause(f.NoticeType))
	}

	if min, ok := parseValueBound(f.ValueMin); ok {
		parts = append(parts, "estimated-value-lot >= "+min)
	}
	if max, ok := parseValueBound(f.ValueMax); ok {
		parts = append(parts, "estimated-value-lot <= "+max)
	}

	return strings.Join(parts, " AND ")
}

// noticeTypeClause expands a notice-type category to its code set. A filter
// value that does not resolve to a known category is compared directly, so
// raw TED codes keep working.
func noticeTypeClause(noticeType string) string {
	codes := search.ResolveNoticeTypeCodes(noticeType)
	switch len(codes) {
	case 0:
		return "notice-type = " + quote(noticeType)
	case 1:
		return "notice-type = " + codes[0]
	default:
		return "notice-type IN (" + strings.Join(codes, " ") + ")"
	}
}

// parseValueBound accepts a bound when it parses to a finite number.
// Non-numeric input is silently dropped rather than rejected.
func parseValueBound(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', -1, 64), true
}
