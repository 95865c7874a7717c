package ted

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/johan-windahl/procurdo/app/search"
)

func newTestClient(endpoint string) *Client {
	return NewClient(endpoint, "Procurdo/test", 20, 5*time.Second, NewQueryBuilder("SWE", 365))
}

func TestClient_Search_Success(t *testing.T) {
	var gotPayload searchPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %q", ct)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("Expected Accept application/json, got %q", accept)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("Failed to decode payload: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"notices": [
				{"publication-number": "1-2024", "publication-date": "2024-01-05", "notice-title": "Old"},
				{"publication-number": "2-2024", "publication-date": "2024-03-01", "notice-title": "New"}
			],
			"totalNoticeCount": "37"
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	filter := search.Normalize(search.Filter{FreeText: "IT konsult"})

	result, err := client.Search(context.Background(), filter, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotPayload.Page != 2 {
		t.Errorf("Expected page 2, got %d", gotPayload.Page)
	}
	if gotPayload.Limit != 20 {
		t.Errorf("Expected limit 20, got %d", gotPayload.Limit)
	}
	if gotPayload.Query == "" {
		t.Error("Expected a non-empty query")
	}
	if len(gotPayload.Fields) != len(searchFields) {
		t.Errorf("Expected %d requested fields, got %d", len(searchFields), len(gotPayload.Fields))
	}

	if result.Total != 37 {
		t.Errorf("Expected total 37 from string count, got %d", result.Total)
	}
	if len(result.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result.Items))
	}
	// Newest first within the page
	if result.Items[0].PublicationNumber != "2-2024" {
		t.Errorf("Expected newest notice first, got %s", result.Items[0].PublicationNumber)
	}
}

func TestClient_Search_ProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"error": {
				"type": "INVALID_QUERY",
				"message": "Unsupported value for parameter",
				"parameterName": "buyer-country",
				"unsupportedValue": "XYZ"
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Search(context.Background(), search.Filter{BuyerCountry: "XYZ"}, 1)
	if err == nil {
		t.Fatal("Expected an error")
	}

	var searchErr *Error
	if !errors.As(err, &searchErr) {
		t.Fatalf("Expected *ted.Error, got %T", err)
	}
	if searchErr.Kind != "INVALID_QUERY" {
		t.Errorf("Expected provider error kind, got %q", searchErr.Kind)
	}
	if searchErr.ParameterName != "buyer-country" {
		t.Errorf("Parameter name must be preserved end-to-end, got %q", searchErr.ParameterName)
	}
	if searchErr.UnsupportedValue != "XYZ" {
		t.Errorf("Unsupported value must be preserved end-to-end, got %q", searchErr.UnsupportedValue)
	}
	if searchErr.Status != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", searchErr.Status)
	}
}

func TestClient_Search_ErrorObjectWithOKStatus(t *testing.T) {
	// TED sometimes reports errors inline with a 200 status
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": {"message": "Query parsing failed"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Search(context.Background(), search.Filter{}, 1)
	var searchErr *Error
	if !errors.As(err, &searchErr) {
		t.Fatalf("Expected *ted.Error, got %v", err)
	}
	if searchErr.Kind != ErrorKindQuery {
		t.Errorf("Expected QUERY_ERROR fallback kind, got %q", searchErr.Kind)
	}
	if searchErr.Message != "Query parsing failed" {
		t.Errorf("Expected provider message, got %q", searchErr.Message)
	}
	if searchErr.Status != http.StatusBadRequest {
		t.Errorf("A 200-status error payload must map to 400, got %d", searchErr.Status)
	}
}

func TestClient_Search_NonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Search(context.Background(), search.Filter{}, 1)
	var searchErr *Error
	if !errors.As(err, &searchErr) {
		t.Fatalf("Expected *ted.Error, got %v", err)
	}
	if searchErr.Kind != ErrorKindTransport {
		t.Errorf("Expected TRANSPORT_ERROR, got %q", searchErr.Kind)
	}
	if searchErr.Status != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", searchErr.Status)
	}
	// Transport failures stay generic; internal query syntax must not leak
	if searchErr.ParameterName != "" || searchErr.UnsupportedValue != "" {
		t.Error("Transport errors must not carry parameter detail")
	}
}

func TestClient_Search_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(server.URL)

	_, err := client.Search(context.Background(), search.Filter{}, 1)
	var searchErr *Error
	if !errors.As(err, &searchErr) {
		t.Fatalf("Expected *ted.Error, got %v", err)
	}
	if searchErr.Kind != ErrorKindTransport {
		t.Errorf("Expected TRANSPORT_ERROR, got %q", searchErr.Kind)
	}
}

func TestClient_Search_PageFloor(t *testing.T) {
	var gotPage int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload searchPayload
		json.NewDecoder(r.Body).Decode(&payload)
		gotPage = payload.Page
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"notices": [], "totalNoticeCount": 0}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Search(context.Background(), search.Filter{}, -3); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gotPage != 1 {
		t.Errorf("Expected page floored to 1, got %d", gotPage)
	}
}

func TestParseTotal(t *testing.T) {
	tests := []struct {
		input    any
		expected int
	}{
		{float64(42), 42},
		{"37", 37},
		{"not-a-number", 0},
		{nil, 0},
	}

	for _, tt := range tests {
		if got := parseTotal(tt.input); got != tt.expected {
			t.Errorf("parseTotal(%v) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}
