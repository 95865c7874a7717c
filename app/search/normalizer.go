package search

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Normalization is total: every function in this file returns a canonical
// value for arbitrary input and has no error channel at all, so a malformed
// saved search or old URL can never crash a search.

// Normalize produces a canonical Filter from arbitrary partial input.
func Normalize(raw Filter) Filter {
	return Filter{
		CPVCodes:       NormalizeCPVCodes(raw.CPVCodes),
		GeoCodes:       normalizeGeoCodes(raw.GeoCodes),
		FreeText:       strings.TrimSpace(raw.FreeText),
		PublishedAfter: strings.TrimSpace(raw.PublishedAfter),
		DeadlineBefore: strings.TrimSpace(raw.DeadlineBefore),
		BuyerCountry:   NormalizeCountry(raw.BuyerCountry),
		BuyerCity:      strings.TrimSpace(raw.BuyerCity),
		NoticeType:     normalizeNoticeType(raw.NoticeType),
		ValueMin:       strings.TrimSpace(raw.ValueMin),
		ValueMax:       strings.TrimSpace(raw.ValueMax),
	}
}

// NormalizeCPVCode canonicalizes a single CPV code to exactly 8 digits:
// non-digits are stripped, longer input is truncated, shorter input is
// right-padded with zeros. Returns "" when no digits remain.
//
// Padding short input means a partial code like "72" becomes "72000000",
// which is itself a valid division-level CPV code. TED treats it as an exact
// match, not a prefix, so short entries constrain the search to the division
// header rather than the whole division.
func NormalizeCPVCode(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	code := digits.String()
	if code == "" {
		return ""
	}
	if len(code) >= 8 {
		return code[:8]
	}
	return code + strings.Repeat("0", 8-len(code))
}

// NormalizeCPVCodes canonicalizes and deduplicates a list of CPV codes,
// preserving first-seen order.
func NormalizeCPVCodes(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(raw))
	codes := make([]string, 0, len(raw))
	for _, r := range raw {
		code := NormalizeCPVCode(r)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil
	}
	return codes
}

func normalizeGeoCodes(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(raw))
	codes := make([]string, 0, len(raw))
	for _, r := range raw {
		code := strings.ToUpper(strings.TrimSpace(r))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil
	}
	return codes
}

// normalizeNoticeType stores the canonical category key when the raw value
// resolves to a known category. Unrecognized input is preserved verbatim
// (trimmed) so direct TED codes can still be pushed through by advanced
// callers.
func normalizeNoticeType(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if category, ok := ResolveNoticeType(trimmed); ok {
		return string(category)
	}
	return trimmed
}

// NormalizeValue converts a value bound received as JSON (number or string)
// to its string form. Whitespace-only input counts as unset. No numeric
// coercion happens here; the query builder decides whether the bound parses.
func NormalizeValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case json.Number:
		return value.String()
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	default:
		return ""
	}
}
