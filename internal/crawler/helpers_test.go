package crawler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cveharvest/internal/config"
	"cveharvest/internal/logger"
)

// testEntry describes one listing entry for fixture markup.
type testEntry struct {
	ID        string
	Href      string
	Summary   string
	MaxCVSS   string
	EPSSScore string
	Published string
	Updated   string
}

// Continuation affordances for fixture pages.
const (
	nextNone      = ""
	nextLinkText  = `<a href="?page=2">Next</a>`
	nextClassOnly = `<a class="paginav-next" href="?page=2">&raquo;</a>`
)

// listingHTML renders a listing page containing the given entries plus
// an optional pagination affordance.
func listingHTML(entries []testEntry, next string) string {
	var sb strings.Builder

	sb.WriteString("<html><body><div id=\"searchresults\">")

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf(`
<div data-tsvfield="cveinfo">
  <h3 data-tsvfield="cveId"><a href=%q>%s</a></h3>
  <div data-tsvfield="summary">%s</div>
  <div data-tsvfield="maxCvssBaseScore">%s</div>
  <div data-tsvfield="epssScore">%s</div>
  <div data-tsvfield="publishDate">%s</div>
  <div data-tsvfield="updateDate">%s</div>
</div>`,
			e.Href, e.ID, e.Summary, e.MaxCVSS, e.EPSSScore, e.Published, e.Updated))
	}

	sb.WriteString(next)
	sb.WriteString("</div></body></html>")

	return sb.String()
}

// detailHTML renders a detail page carrying a category label, or one
// with the label element missing when category is empty.
func detailHTML(category string) string {
	if category == "" {
		return `<html><body><div id="cve_catslabelsnotes_div"></div></body></html>`
	}

	return fmt.Sprintf(
		`<html><body><div id="cve_catslabelsnotes_div"><span class="ssc-vuln-cat">%s</span></div></body></html>`,
		category)
}

// stubFetcher serves canned pages keyed by URL and records every call.
type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	errs  map[string]error
	calls []string
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		pages: make(map[string]string),
		errs:  make(map[string]error),
	}
}

func (f *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	if err, ok := f.errs[url]; ok {
		return nil, err
	}

	if page, ok := f.pages[url]; ok {
		return []byte(page), nil
	}

	return nil, fmt.Errorf("%w: 404 for %s", ErrUnexpectedStatusCode, url)
}

func (f *stubFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, call := range f.calls {
		if call == url {
			count++
		}
	}

	return count
}

// testPagination is the default link-text continuation rule.
func testPagination() config.PaginationConfig {
	return config.PaginationConfig{
		NextSignal: config.NextSignalLinkText,
		NextText:   "Next",
	}
}

// testLogger returns a quiet logger for tests.
func testLogger() *logger.Logger {
	return logger.NewLogger("error")
}
