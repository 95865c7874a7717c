package ted

import (
	"sort"
	"strings"

	"github.com/johan-windahl/procurdo/app/search"
)

// fallbackTitle is shown when a notice carries no usable title.
const fallbackTitle = "Upphandling"

// mapNotices flattens a page of raw TED notices and sorts it by publication
// date, newest first. The sort covers the current page only; TED orders
// across pages and a global re-sort would require fetching every page.
func mapNotices(raw []map[string]any) []search.Notice {
	items := make([]search.Notice, 0, len(raw))
	for _, n := range raw {
		items = append(items, mapNotice(n))
	}

	sort.SliceStable(items, func(i, j int) bool {
		// Dates are normalized to YYYY-MM-DD, so lexicographic order is
		// date order.
		return items[i].PublicationDate > items[j].PublicationDate
	})

	return items
}

// mapNotice flattens one raw notice into the canonical record.
func mapNotice(n map[string]any) search.Notice {
	title := ExtractText(n["notice-title"])
	if title == "" {
		title = fallbackTitle
	}

	notice := search.Notice{
		PublicationNumber: ExtractText(n["publication-number"]),
		PublicationDate:   FormatDateISO(n["publication-date"]),
		DeadlineDate:      FormatDateISO(n["deadline-receipt-tender-date-lot"]),
		Title:             SanitizeTitle(title),
		BuyerName:         ExtractText(n["buyer-name"]),
		BuyerCity:         ExtractText(n["buyer-city"]),
		DocumentURL:       documentURL(n),
		Description:       ExtractText(n["description-lot"]),
		CPVClassification: ExtractText(n["classification-cpv"]),
		ContractNature:    ExtractText(n["contract-nature"]),
		NoticeType:        ExtractText(n["notice-type"]),
		ProcedureType:     ExtractText(n["procedure-type"]),
	}

	buyerCountry := ExtractText(n["buyer-country"])
	placeCountry := ExtractText(n["place-of-performance-country-lot"])
	if buyerCountry != "" {
		notice.Country = buyerCountry
	} else {
		notice.Country = placeCountry
	}

	notice.EstimatedValue, notice.ValueCurrency = resolveValue(n)

	framework := ExtractText(n["framework-agreement-lot"])
	if framework == "" {
		framework = ExtractText(n["framework-agreement"])
	}
	if framework != "" {
		isFramework := strings.EqualFold(framework, "true") || strings.EqualFold(framework, "yes")
		notice.IsFrameworkAgreement = &isFramework
	}

	return notice
}

// resolveValue prefers the estimated-value field with its paired currency.
// The tender-value fallback has no reliably paired currency, so currency is
// left unset on that path.
func resolveValue(n map[string]any) (value, currency string) {
	if est := ExtractText(n["estimated-value-lot"]); est != "" {
		return est, ExtractText(n["estimated-value-cur-lot"])
	}
	if tv, ok := n["tender-value"].(map[string]any); ok {
		if amount := ExtractText(tv["amount"]); amount != "" {
			return amount, ""
		}
		return ExtractText(tv["value"]), ""
	}
	return "", ""
}

// documentURL picks the best available link for a notice: the lot document
// URL, then the part document URL, then the first href in links.
func documentURL(n map[string]any) string {
	if u := ExtractText(n["document-url-lot"]); u != "" {
		return u
	}
	if u := ExtractText(n["document-url-part"]); u != "" {
		return u
	}
	links, ok := n["links"].([]any)
	if !ok || len(links) == 0 {
		return ""
	}
	if first, ok := links[0].(map[string]any); ok {
		if href, ok := first["href"].(string); ok && href != "" {
			return href
		}
	}
	return ExtractText(links[0])
}
