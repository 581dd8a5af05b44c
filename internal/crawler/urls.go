package crawler

import (
	"fmt"
	"net/url"
	"strings"

	"cveharvest/internal/models"
)

// URLBuilder derives listing and detail URLs from the configured
// catalog base. It holds no mutable state.
type URLBuilder struct {
	baseURL   string
	sortOrder string
}

// NewURLBuilder creates a URL builder for the given catalog base URL.
// sortOrder, when non-empty, is appended to listing URLs as an explicit
// order query parameter.
func NewURLBuilder(baseURL, sortOrder string) *URLBuilder {
	return &URLBuilder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		sortOrder: sortOrder,
	}
}

// ListingURL returns the URL of one listing page for a unit. Page
// numbers are 1-based.
func (b *URLBuilder) ListingURL(unit models.CrawlUnit, page int) string {
	u := fmt.Sprintf("%s/vulnerability-list/year-%d/month-%s/%s.html?page=%d",
		b.baseURL, unit.Year, models.MonthCode(unit.Month), unit.Month, page)

	if b.sortOrder != "" {
		u += "&order=" + url.QueryEscape(b.sortOrder)
	}

	return u
}

// DetailURL resolves a record's detail link against the catalog base.
// Absolute links are returned unchanged.
func (b *URLBuilder) DetailURL(href string) string {
	if href == "" {
		return ""
	}

	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}

	return b.baseURL + href
}
