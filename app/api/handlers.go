package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/johan-windahl/procurdo/app/catalog"
	"github.com/johan-windahl/procurdo/app/search"
	"github.com/johan-windahl/procurdo/app/ted"
)

func NewHandler(searcher SearcherInterface, cpvCatalog *catalog.Catalog) *Handler {
	return &Handler{
		searcher: searcher,
		catalog:  cpvCatalog,
	}
}

// PostSearch runs a search from a Filter-shaped JSON body. The page number
// comes from the page query parameter, 1-based.
func (h *Handler) PostSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An unreadable body degrades to an empty filter rather than an
		// error; normalization is total and an empty filter is still a
		// valid, geography-bounded search.
		slog.Debug("Unreadable search body, using empty filter", "error", err)
		req = searchRequest{}
	}

	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 1 {
		page = p
	}

	h.runSearch(c, req.toFilter(), page)
}

// GetSearch runs a search from URL query parameters, the same keys used in
// shareable search links.
func (h *Handler) GetSearch(c *gin.Context) {
	filter, page := search.FromSearchParams(c.Request.URL.Query())
	h.runSearch(c, filter, page)
}

func (h *Handler) runSearch(c *gin.Context, filter search.Filter, page int) {
	result, err := h.searcher.Search(c.Request.Context(), filter, page)
	if err != nil {
		var searchErr *ted.Error
		if !errors.As(err, &searchErr) {
			searchErr = &ted.Error{
				Kind:    ted.ErrorKindTransport,
				Message: "search failed",
				Status:  http.StatusInternalServerError,
			}
		}
		slog.Error("Search failed",
			"request_id", c.GetString(requestIDKey),
			"kind", searchErr.Kind,
			"status", searchErr.Status,
			"page", page)
		c.JSON(searchErr.Status, searchFailure{
			Items:            []search.Notice{},
			Error:            searchErr.Kind,
			Message:          searchErr.Message,
			ParameterName:    searchErr.ParameterName,
			UnsupportedValue: searchErr.UnsupportedValue,
		})
		return
	}

	slog.Info("Search completed",
		"request_id", c.GetString(requestIDKey),
		"page", page,
		"items", len(result.Items),
		"total", result.Total)

	c.JSON(http.StatusOK, searchResponse{Items: result.Items, Total: result.Total})
}

// GetMeta serves the static option lists the search form needs.
func (h *Handler) GetMeta(c *gin.Context) {
	categories := make([]gin.H, 0, len(search.Categories()))
	for _, category := range search.Categories() {
		categories = append(categories, gin.H{
			"key":   string(category),
			"label": search.CategoryLabel(category),
			"codes": search.ResolveNoticeTypeCodes(string(category)),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"noticeTypes": categories,
		"countries":   search.SupportedCountries(),
	})
}

// GetCPV serves the CPV catalogue for the search form's selector.
func (h *Handler) GetCPV(c *gin.Context) {
	entries := h.catalog.Entries()
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp":         time.Now().In(time.Local).Format(time.RFC3339),
		"catalogue_entries": h.catalog.Count(),
		"notice_categories": len(search.Categories()),
		"supported_markets": len(search.SupportedCountries()),
	})
}

// APIReloadCatalog re-reads the CPV catalogue files from disk.
func (h *Handler) APIReloadCatalog(c *gin.Context) {
	if err := h.catalog.Reload(); err != nil {
		slog.Error("Catalogue reload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reload catalogue",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entries": h.catalog.Count(),
	})
}
