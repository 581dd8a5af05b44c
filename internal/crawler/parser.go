// Package crawler implements the paginated crawl-and-extract engine:
// unit partitioning, page fetching, listing parsing, record enrichment,
// pacing, and bounded concurrent execution across units.
package crawler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"cveharvest/internal/config"
	"cveharvest/internal/models"
)

// Listing markup selectors.
const (
	entrySelector   = "div[data-tsvfield='cveinfo']"
	idSelector      = "h3[data-tsvfield='cveId']"
	summarySelector = "div[data-tsvfield='summary']"
	cvssSelector    = "div[data-tsvfield='maxCvssBaseScore']"
	epssSelector    = "div[data-tsvfield='epssScore']"
	pubSelector     = "div[data-tsvfield='publishDate']"
	updSelector     = "div[data-tsvfield='updateDate']"
)

// Fragment is one listing entry with its fields extracted and the
// detail link resolved for enrichment. Category is not present on the
// listing page and stays empty until enrichment.
type Fragment struct {
	Record    models.Record
	DetailURL string
}

// ParsedPage is the outcome of parsing one listing page. An empty
// Fragments slice is the primary termination signal for a unit's
// pagination loop, distinct from a transport error.
type ParsedPage struct {
	Fragments   []Fragment
	HasNextPage bool
}

// Parser extracts listing entries and the continuation signal from raw
// page content. Field extraction is best effort: a missing sub-field
// becomes an empty string, never a parser failure.
type Parser struct {
	pagination config.PaginationConfig
	urls       *URLBuilder
}

// NewParser creates a parser with the given continuation detection
// rule and URL builder for resolving detail links.
func NewParser(pagination config.PaginationConfig, urls *URLBuilder) *Parser {
	return &Parser{
		pagination: pagination,
		urls:       urls,
	}
}

// ParsePage parses one raw listing page. A page with no listing
// entries yields no fragments and HasNextPage=false regardless of any
// pagination affordance in the markup.
func (p *Parser) ParsePage(raw []byte) (ParsedPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return ParsedPage{}, fmt.Errorf("failed to parse page: %w", err)
	}

	entries := doc.Find(entrySelector)
	if entries.Length() == 0 {
		return ParsedPage{}, nil
	}

	page := ParsedPage{
		Fragments: make([]Fragment, 0, entries.Length()),
	}

	entries.Each(func(_ int, entry *goquery.Selection) {
		href, _ := entry.Find("a").First().Attr("href")

		page.Fragments = append(page.Fragments, Fragment{
			Record: models.Record{
				ID:        strings.TrimSpace(entry.Find(idSelector).First().Text()),
				Summary:   strings.TrimSpace(entry.Find(summarySelector).First().Text()),
				MaxCVSS:   strings.TrimSpace(entry.Find(cvssSelector).First().Text()),
				EPSSScore: strings.TrimSpace(entry.Find(epssSelector).First().Text()),
				Published: strings.TrimSpace(entry.Find(pubSelector).First().Text()),
				Updated:   strings.TrimSpace(entry.Find(updSelector).First().Text()),
			},
			DetailURL: p.urls.DetailURL(href),
		})
	})

	page.HasNextPage = p.hasNextPage(doc)

	return page, nil
}

// hasNextPage applies the configured continuation rule to the page
// markup.
func (p *Parser) hasNextPage(doc *goquery.Document) bool {
	switch p.pagination.NextSignal {
	case config.NextSignalStyleClass:
		return doc.Find("a."+p.pagination.NextClass).Length() > 0
	default:
		found := false

		doc.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
			if strings.TrimSpace(link.Text()) == p.pagination.NextText {
				found = true
				return false
			}

			return true
		})

		return found
	}
}
