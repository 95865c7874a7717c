package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johan-windahl/procurdo/app/catalog"
	"github.com/johan-windahl/procurdo/app/search"
	"github.com/johan-windahl/procurdo/app/ted"
)

// stubSearcher records the filter and page it was called with and returns a
// canned result or error.
type stubSearcher struct {
	lastFilter search.Filter
	lastPage   int
	result     *ted.Result
	err        error
}

func (s *stubSearcher) Search(ctx context.Context, f search.Filter, page int) (*ted.Result, error) {
	s.lastFilter = f
	s.lastPage = page
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestServer(searcher SearcherInterface) http.Handler {
	handler := NewHandler(searcher, catalog.NewCatalog("does-not-exist"))
	return NewServer(handler, "test-key")
}

func TestPostSearch_Success(t *testing.T) {
	searcher := &stubSearcher{
		result: &ted.Result{
			Items: []search.Notice{{PublicationNumber: "1-2024", Title: "Annual payroll audit"}},
			Total: 1,
		},
	}
	server := newTestServer(searcher)

	body := `{"cpvs": ["72"], "text": "IT konsult", "country": "SE", "noticeType": "upphandlingsannons", "valueMin": 100000, "valueMax": "  "}`
	req := httptest.NewRequest(http.MethodPost, "/search?page=2", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// The handler must hand the searcher a fully normalized filter
	if got := searcher.lastFilter.CPVCodes; len(got) != 1 || got[0] != "72000000" {
		t.Errorf("Expected normalized CPV codes, got %v", got)
	}
	if searcher.lastFilter.BuyerCountry != "SWE" {
		t.Errorf("Expected country SWE, got %q", searcher.lastFilter.BuyerCountry)
	}
	if searcher.lastFilter.NoticeType != "Contract Notice" {
		t.Errorf("Expected resolved notice type, got %q", searcher.lastFilter.NoticeType)
	}
	if searcher.lastFilter.ValueMin != "100000" {
		t.Errorf("Numeric JSON min should become '100000', got %q", searcher.lastFilter.ValueMin)
	}
	if searcher.lastFilter.ValueMax != "" {
		t.Errorf("Whitespace-only max should be unset, got %q", searcher.lastFilter.ValueMax)
	}
	if searcher.lastPage != 2 {
		t.Errorf("Expected page 2, got %d", searcher.lastPage)
	}

	var resp struct {
		Items []search.Notice `json:"items"`
		Total int             `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestPostSearch_UnreadableBodyDegradesToEmptyFilter(t *testing.T) {
	searcher := &stubSearcher{result: &ted.Result{Items: []search.Notice{}, Total: 0}}
	server := newTestServer(searcher)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("A malformed body must not fail the search, got %d", w.Code)
	}
	if searcher.lastPage != 1 {
		t.Errorf("Expected page 1, got %d", searcher.lastPage)
	}
}

func TestPostSearch_ProviderRejection(t *testing.T) {
	searcher := &stubSearcher{
		err: &ted.Error{
			Kind:             "INVALID_QUERY",
			Message:          "Unsupported value for parameter",
			ParameterName:    "buyer-country",
			UnsupportedValue: "XYZ",
			Status:           http.StatusBadRequest,
		},
	}
	server := newTestServer(searcher)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	var resp searchFailure
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error != "INVALID_QUERY" {
		t.Errorf("Expected error kind, got %q", resp.Error)
	}
	if resp.ParameterName != "buyer-country" || resp.UnsupportedValue != "XYZ" {
		t.Errorf("Provider detail must be preserved end-to-end: %+v", resp)
	}
	if resp.Items == nil || len(resp.Items) != 0 {
		t.Errorf("Expected empty items array, got %v", resp.Items)
	}
}

func TestPostSearch_TransportFailure(t *testing.T) {
	searcher := &stubSearcher{
		err: &ted.Error{
			Kind:    ted.ErrorKindTransport,
			Message: "search provider unavailable",
			Status:  http.StatusInternalServerError,
		},
	}
	server := newTestServer(searcher)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
}

func TestGetSearch_ParsesQueryParameters(t *testing.T) {
	searcher := &stubSearcher{result: &ted.Result{Items: []search.Notice{}, Total: 0}}
	server := newTestServer(searcher)

	req := httptest.NewRequest(http.MethodGet, "/search?cpv=72,45&q=skola&country=Sweden&page=3", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if len(searcher.lastFilter.CPVCodes) != 2 {
		t.Errorf("Expected 2 CPV codes, got %v", searcher.lastFilter.CPVCodes)
	}
	if searcher.lastFilter.BuyerCountry != "SWE" {
		t.Errorf("Expected country resolved to SWE, got %q", searcher.lastFilter.BuyerCountry)
	}
	if searcher.lastPage != 3 {
		t.Errorf("Expected page 3, got %d", searcher.lastPage)
	}
}

func TestGetMeta(t *testing.T) {
	server := newTestServer(&stubSearcher{})

	req := httptest.NewRequest(http.MethodGet, "/meta", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		NoticeTypes []struct {
			Key   string   `json:"key"`
			Label string   `json:"label"`
			Codes []string `json:"codes"`
		} `json:"noticeTypes"`
		Countries []string `json:"countries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.NoticeTypes) != 3 {
		t.Errorf("Expected 3 notice-type categories, got %d", len(resp.NoticeTypes))
	}
	for _, nt := range resp.NoticeTypes {
		if nt.Label == "" || len(nt.Codes) == 0 {
			t.Errorf("Category %q is missing label or codes", nt.Key)
		}
	}
	if len(resp.Countries) == 0 {
		t.Error("Expected supported countries")
	}
}

func TestAPIReloadCatalog_RequiresKey(t *testing.T) {
	server := newTestServer(&stubSearcher{})

	req := httptest.NewRequest(http.MethodPost, "/api/catalog/reload", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without key, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/catalog/reload", nil)
	req.Header.Set("X-API-Key", "test-key")
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with key, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequestIDHeader(t *testing.T) {
	server := newTestServer(&stubSearcher{result: &ted.Result{Items: []search.Notice{}}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a generated X-Request-ID header")
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "caller-id" {
		t.Errorf("Expected caller-supplied request id to be echoed, got %q", got)
	}
}
