package crawler

import (
	"context"
	"fmt"

	"cveharvest/internal/logger"
	"cveharvest/internal/models"
)

// Worker drives the page-by-page loop for a single crawl unit: fetch,
// parse, enrich each record, accumulate, then decide continue or stop.
// The worker exclusively owns its unit's record accumulator until the
// result is handed back.
type Worker struct {
	fetcher  Fetcher
	parser   *Parser
	enricher *Enricher
	pacer    Pacer
	urls     *URLBuilder
	stats    *Stats
	log      *logger.Logger
}

// NewWorker creates a worker with injected dependencies.
func NewWorker(fetcher Fetcher, parser *Parser, enricher *Enricher, pacer Pacer, urls *URLBuilder, stats *Stats, log *logger.Logger) *Worker {
	return &Worker{
		fetcher:  fetcher,
		parser:   parser,
		enricher: enricher,
		pacer:    pacer,
		urls:     urls,
		stats:    stats,
		log:      log,
	}
}

// Harvest runs the pagination loop for one unit and always returns a
// UnitResult. A listing fetch failure is unit-terminal: the loop stops
// and the pages gathered so far are retained on the result. Per-record
// problems degrade to sentinel values and never abort the unit.
func (w *Worker) Harvest(ctx context.Context, unit models.CrawlUnit) models.UnitResult {
	result := models.UnitResult{Unit: unit, Status: models.UnitCompleted}
	log := w.log.With("unit", unit.Key())

	for page := 1; ; page++ {
		url := w.urls.ListingURL(unit, page)
		log.Debug("fetching listing page", "page", page, "url", url)

		body, err := w.fetcher.Fetch(ctx, url)
		if err != nil {
			w.stats.FetchErrors.Add(1)
			log.Warn("listing fetch failed, stopping unit", "page", page, "error", err)

			result.Status = models.UnitFailed
			result.Err = fmt.Errorf("listing page %d: %w", page, err)

			return result
		}

		w.stats.PagesFetched.Add(1)

		parsed, err := w.parser.ParsePage(body)
		if err != nil {
			result.Status = models.UnitFailed
			result.Err = fmt.Errorf("listing page %d: %w", page, err)

			return result
		}

		// No entries means the natural end of data for this unit.
		if len(parsed.Fragments) == 0 {
			log.Debug("no records on page, unit finished", "page", page)

			return result
		}

		for _, frag := range parsed.Fragments {
			category := w.enricher.Enrich(ctx, frag.DetailURL)
			if category == models.CategoryUnknown {
				w.stats.EnrichMisses.Add(1)
			}

			record := frag.Record
			record.Category = category
			result.Records = append(result.Records, record)
		}

		w.stats.Records.Add(int64(len(parsed.Fragments)))
		log.Debug("accumulated page", "page", page, "records", len(parsed.Fragments), "has_next", parsed.HasNextPage)

		if !parsed.HasNextPage {
			return result
		}

		w.pacer.Pause(ctx)

		if ctx.Err() != nil {
			result.Status = models.UnitFailed
			result.Err = ctx.Err()

			return result
		}
	}
}
