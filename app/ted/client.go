package ted

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/johan-windahl/procurdo/app/search"
)

const DefaultPageSize = 20

// Client issues notice searches against TED. One outbound request per
// search, no retries; pagination is caller-driven and each page turn is an
// independent request.
type Client struct {
	endpoint   string
	userAgent  string
	pageSize   int
	httpClient *http.Client
	builder    *QueryBuilder
}

func NewClient(endpoint, userAgent string, pageSize int, timeout time.Duration, builder *QueryBuilder) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Client{
		endpoint:   endpoint,
		userAgent:  userAgent,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
		builder:    builder,
	}
}

// Search executes a single search for the given filter and 1-based page.
// Failures are returned as *Error values carrying the kind, message, and
// TED's parameter detail when available; Search never panics and the
// returned error is always either nil or a *Error.
func (c *Client) Search(ctx context.Context, f search.Filter, page int) (*Result, error) {
	if page < 1 {
		page = 1
	}

	query := c.builder.Run(f)
	payload := searchPayload{
		Query:  query,
		Page:   page,
		Limit:  c.pageSize,
		Fields: searchFields,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to encode search payload", "query", query, "error", err)
		return nil, &Error{Kind: ErrorKindQuery, Message: "invalid search request", Status: http.StatusBadRequest}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Error("Failed to create search request", "query", query, "error", err)
		return nil, c.transportError()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The query and payload are logged locally for diagnosis; the
		// caller-facing message stays generic.
		slog.Error("Search request failed", "query", query, "page", page, "error", err)
		return nil, c.transportError()
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("Failed to read search response", "query", query, "error", err)
		return nil, c.transportError()
	}

	var parsed searchResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		slog.Error("Non-JSON search response", "query", query, "status", resp.StatusCode, "error", err)
		return nil, c.transportError()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || parsed.Error != nil {
		return nil, providerFailure(resp.StatusCode, parsed.Error, query)
	}

	items := mapNotices(parsed.Notices)

	return &Result{Items: items, Total: parseTotal(parsed.TotalNoticeCount)}, nil
}

// PageSize reports the fixed page size used for every search request.
func (c *Client) PageSize() int {
	return c.pageSize
}

func (c *Client) transportError() *Error {
	return &Error{
		Kind:    ErrorKindTransport,
		Message: "search provider unavailable",
		Status:  http.StatusInternalServerError,
	}
}

func providerFailure(status int, perr *providerError, query string) *Error {
	e := &Error{Kind: ErrorKindQuery, Message: "search query rejected", Status: status}
	if e.Status < 400 || e.Status >= 600 {
		e.Status = http.StatusBadRequest
	}
	if perr != nil {
		if perr.Type != "" {
			e.Kind = perr.Type
		}
		if perr.Message != "" {
			e.Message = perr.Message
		}
		e.ParameterName = perr.ParameterName
		e.UnsupportedValue = perr.UnsupportedValue
	}
	slog.Error("Search rejected by provider",
		"query", query,
		"status", status,
		"kind", e.Kind,
		"parameter", e.ParameterName,
		"value", e.UnsupportedValue)
	return e
}

// parseTotal handles totalNoticeCount arriving as a number or a string.
func parseTotal(raw any) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	if raw != nil {
		slog.Debug("Unrecognized totalNoticeCount", "value", fmt.Sprintf("%v", raw))
	}
	return 0
}
