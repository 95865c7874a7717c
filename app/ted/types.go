package ted

import "github.com/johan-windahl/procurdo/app/search"

// DefaultEndpoint is TED's notice search API.
const DefaultEndpoint = "https://api.ted.europa.eu/v3/notices/search"

// searchFields is the fixed field projection requested from TED. The mapper
// depends on exactly this set.
var searchFields = []string{
	"publication-number",
	"publication-date",
	"notice-title",
	"buyer-name",
	"buyer-city",
	"buyer-country",
	"place-of-performance-country-lot",
	"links",
	"tender-value",
	"estimated-value-lot",
	"estimated-value-cur-lot",
	"deadline-receipt-tender-date-lot",
	"classification-cpv",
	"contract-nature",
	"notice-type",
	"procedure-type",
	"framework-agreement-lot",
	"description-lot",
	"document-url-lot",
	"document-url-part",
}

// searchPayload is the JSON body of a TED search request.
type searchPayload struct {
	Query  string   `json:"query"`
	Page   int      `json:"page"`
	Limit  int      `json:"limit"`
	Fields []string `json:"fields"`
}

// searchResponse mirrors the top level of a TED search response. Notices
// are kept loosely typed; their field shapes vary per notice form and are
// resolved by the mapper.
type searchResponse struct {
	Notices          []map[string]any `json:"notices"`
	TotalNoticeCount any              `json:"totalNoticeCount"`
	Error            *providerError   `json:"error"`
}

// providerError is TED's error object, reported inline in the payload.
type providerError struct {
	Type             string `json:"type"`
	Message          string `json:"message"`
	ParameterName    string `json:"parameterName"`
	UnsupportedValue string `json:"unsupportedValue"`
}

// Result is a mapped page of search results.
type Result struct {
	Items []search.Notice
	Total int
}
