package crawler

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"cveharvest/internal/logger"
	"cveharvest/internal/models"
)

// Selector for the vulnerability category label on a detail page.
const categorySelector = "#cve_catslabelsnotes_div span.ssc-vuln-cat"

// Enricher resolves the vulnerability category for one record via a
// secondary fetch of its detail page. Enrichment is best effort: any
// transport failure or missing label degrades to the "N/A" sentinel
// and never aborts the owning unit.
type Enricher struct {
	fetcher Fetcher
	log     *logger.Logger
}

// NewEnricher creates an enricher backed by the given fetcher.
func NewEnricher(fetcher Fetcher, log *logger.Logger) *Enricher {
	return &Enricher{
		fetcher: fetcher,
		log:     log,
	}
}

// Enrich returns the category label from the detail page, or the "N/A"
// sentinel when the page cannot be fetched or carries no label.
func (e *Enricher) Enrich(ctx context.Context, detailURL string) string {
	if detailURL == "" {
		return models.CategoryUnknown
	}

	body, err := e.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		e.log.Debug("enrichment fetch failed", "url", detailURL, "error", err)

		return models.CategoryUnknown
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		e.log.Debug("enrichment parse failed", "url", detailURL, "error", err)

		return models.CategoryUnknown
	}

	category := strings.TrimSpace(doc.Find(categorySelector).First().Text())
	if category == "" {
		return models.CategoryUnknown
	}

	return category
}
