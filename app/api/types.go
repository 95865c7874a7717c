package api

import (
	"context"

	"github.com/johan-windahl/procurdo/app/catalog"
	"github.com/johan-windahl/procurdo/app/search"
	"github.com/johan-windahl/procurdo/app/ted"
)

type SearcherInterface interface {
	Search(ctx context.Context, f search.Filter, page int) (*ted.Result, error)
}

var _ SearcherInterface = (*ted.Client)(nil)

type Handler struct {
	searcher SearcherInterface
	catalog  *catalog.Catalog
}

// searchRequest is the JSON body of a search. Value bounds stay loosely
// typed because the UI historically sends them as numbers or strings.
type searchRequest struct {
	CPVCodes       []string `json:"cpvs"`
	GeoCodes       []string `json:"geo"`
	FreeText       string   `json:"text"`
	PublishedAfter string   `json:"dateFrom"`
	DeadlineBefore string   `json:"deadlineTo"`
	BuyerCountry   string   `json:"country"`
	BuyerCity      string   `json:"city"`
	NoticeType     string   `json:"noticeType"`
	ValueMin       any      `json:"valueMin"`
	ValueMax       any      `json:"valueMax"`
}

func (r searchRequest) toFilter() search.Filter {
	return search.Normalize(search.Filter{
		CPVCodes:       r.CPVCodes,
		GeoCodes:       r.GeoCodes,
		FreeText:       r.FreeText,
		PublishedAfter: r.PublishedAfter,
		DeadlineBefore: r.DeadlineBefore,
		BuyerCountry:   r.BuyerCountry,
		BuyerCity:      r.BuyerCity,
		NoticeType:     r.NoticeType,
		ValueMin:       search.NormalizeValue(r.ValueMin),
		ValueMax:       search.NormalizeValue(r.ValueMax),
	})
}

// searchResponse is the success shape returned to the UI.
type searchResponse struct {
	Items []search.Notice `json:"items"`
	Total int             `json:"total"`
}

// searchFailure mirrors the provider's rejection detail end-to-end so the
// UI can show why a query failed.
type searchFailure struct {
	Items            []search.Notice `json:"items"`
	Total            int             `json:"total"`
	Error            string          `json:"error"`
	Message          string          `json:"message"`
	ParameterName    string          `json:"parameterName,omitempty"`
	UnsupportedValue string          `json:"unsupportedValue,omitempty"`
}
