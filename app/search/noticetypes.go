package search

import (
	"fmt"
	"strings"
)

// Category is a user-facing notice-type group. Each category covers a fixed
// set of TED notice-type codes; every code belongs to exactly one category.
type Category string

const (
	CategoryContractNotice   Category = "Contract Notice"
	CategoryPriorInformation Category = "Prior Information Notice"
	CategoryAwardNotice      Category = "Award Notice"
)

// categoryCodes maps each category to its TED notice-type codes. The order
// within a set is preserved when codes are emitted into a query.
var categoryCodes = map[Category][]string{
	CategoryContractNotice:   {"cn-standard", "cn-social", "cn-desg", "qu-sy", "subco"},
	CategoryPriorInformation: {"pin-only", "pin-buyer", "pin-rtl", "pin-tran", "pin-cfc-standard", "pin-cfc-social"},
	CategoryAwardNotice:      {"can-standard", "can-social", "can-desg", "can-tran"},
}

// categoryLabels carries the Swedish display label for each category,
// used by the search form metadata endpoint.
var categoryLabels = map[Category]string{
	CategoryContractNotice:   "Upphandlingsannons",
	CategoryPriorInformation: "Förhandsannons",
	CategoryAwardNotice:      "Tilldelningsannons",
}

// categoryIndex resolves lowercased category keys, display labels, and
// individual notice-type codes back to their category.
var categoryIndex = buildCategoryIndex()

func buildCategoryIndex() map[string]Category {
	index := make(map[string]Category)
	for category, codes := range categoryCodes {
		if len(codes) == 0 {
			panic(fmt.Sprintf("notice-type category %q has no codes", category))
		}
		index[strings.ToLower(string(category))] = category
		index[strings.ToLower(categoryLabels[category])] = category
		for _, code := range codes {
			key := strings.ToLower(code)
			if existing, ok := index[key]; ok {
				panic(fmt.Sprintf("notice-type code %q mapped to both %q and %q", code, existing, category))
			}
			index[key] = category
		}
	}
	return index
}

// Categories returns all categories in a stable order.
func Categories() []Category {
	return []Category{CategoryContractNotice, CategoryPriorInformation, CategoryAwardNotice}
}

// CategoryLabel returns the Swedish display label for a category.
func CategoryLabel(category Category) string {
	return categoryLabels[category]
}

// ResolveNoticeType resolves a raw notice-type string (category key, display
// label, or individual TED code) to its category, case-insensitively.
func ResolveNoticeType(raw string) (Category, bool) {
	category, ok := categoryIndex[strings.ToLower(strings.TrimSpace(raw))]
	return category, ok
}

// ResolveNoticeTypeCodes returns the TED notice-type codes behind a filter's
// notice-type value. Unresolvable input yields an empty slice; the query
// builder then falls back to a direct comparison with the raw string.
func ResolveNoticeTypeCodes(raw string) []string {
	category, ok := ResolveNoticeType(raw)
	if !ok {
		return nil
	}
	codes := make([]string, len(categoryCodes[category]))
	copy(codes, categoryCodes[category])
	return codes
}
