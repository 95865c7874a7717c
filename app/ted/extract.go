package ted

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TED returns the same logical field in several shapes depending on notice
// form and language: a plain string, a number, an array of alternatives, a
// {text: ...}/{value: ...} wrapper, or a language-keyed object. ExtractText
// is the single resolver for all of them and is reused for every textual
// field in the mapper.

// Language keys tried in order before falling back to any other key.
var preferredLanguageKeys = []string{"eng", "en", "swe", "sv", "mul", "default"}

// ExtractText resolves a decoded JSON value to its first non-empty text.
func ExtractText(field any) string {
	switch v := field.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		for _, item := range v {
			if s := ExtractText(item); s != "" {
				return s
			}
		}
		return ""
	case map[string]any:
		// Common wrappers
		if s, ok := v["text"].(string); ok && s != "" {
			return s
		}
		if s, ok := v["value"].(string); ok && s != "" {
			return s
		}
		for _, key := range preferredLanguageKeys {
			if inner, ok := v[key]; ok {
				if s := ExtractText(inner); s != "" {
					return s
				}
			}
		}
		// Fallback: scan remaining keys in sorted order so the result is
		// deterministic across runs.
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if s := ExtractText(v[key]); s != "" {
				return s
			}
		}
		return ""
	default:
		return ""
	}
}

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// Date with an optional timezone or zone-name suffix, dashed or compact:
	// "2024-09-18+02:00", "20240918+01:00", "2024-09-18Z".
	suffixedDatePattern = regexp.MustCompile(`^(\d{4})-?(\d{2})-?(\d{2})[Zz+\-A-Za-z].*$`)
)

var fallbackDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"20060102",
	"02/01/2006",
}

// FormatDateISO normalizes a raw date field to YYYY-MM-DD. Already-ISO input
// passes through, timezone-suffixed dates are truncated to the date portion,
// and other parseable representations are reformatted. Unparseable input is
// returned unchanged so callers can still display the raw value.
func FormatDateISO(raw any) string {
	dateString := strings.TrimSpace(toDateString(raw))
	if dateString == "" {
		return ""
	}
	if isoDatePattern.MatchString(dateString) {
		return dateString
	}
	if m := suffixedDatePattern.FindStringSubmatch(dateString); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}
	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, dateString); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return dateString
}

// toDateString unwraps the shapes TED uses for date fields.
func toDateString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		if len(v) == 0 {
			return ""
		}
		return toDateString(v[0])
	case map[string]any:
		for _, key := range []string{"date", "value", "text"} {
			if s, ok := v[key].(string); ok {
				return s
			}
		}
		return ""
	default:
		return ExtractText(raw)
	}
}

// formatDateCompact converts an ISO date to the compact YYYYMMDD form TED's
// query language expects in comparisons.
func formatDateCompact(isoDate string) string {
	return strings.ReplaceAll(isoDate, "-", "")
}

var dashSplitPattern = regexp.MustCompile(`\s*[–—]\s*`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// SanitizeTitle reduces TED's "Country – Category – Actual Title" form to
// the actual title. Only en and em dashes split; hyphen-minus is left alone
// so legitimately hyphenated titles survive.
func SanitizeTitle(raw string) string {
	trimmed := whitespacePattern.ReplaceAllString(strings.TrimSpace(raw), " ")
	parts := dashSplitPattern.Split(trimmed, -1)
	for i := len(parts) - 1; i >= 0; i-- {
		if last := strings.TrimSpace(parts[i]); last != "" {
			return last
		}
	}
	return trimmed
}

// quote wraps a value in single quotes for the TED query language. Embedded
// single quotes are converted to double quotes, not doubled; TED's parser
// has no documented escape for them. Not safe for every conceivable input,
// but matches what the provider accepts in practice.
func quote(s string) string {
	return "'" + strings.TrimSpace(strings.ReplaceAll(s, "'", "\"")) + "'"
}
