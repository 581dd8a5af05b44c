package crawler

import (
	"context"
	"fmt"
	"time"

	"cveharvest/internal/config"
	"cveharvest/internal/logger"
	"cveharvest/internal/models"
)

// Sink durably persists one unit's accumulated records, fully
// replacing any prior output for the same unit key. An empty record
// set must produce no artifact.
type Sink interface {
	Write(unit models.CrawlUnit, records []models.Record) (string, error)
}

// Runner wires the partitioner, scheduler, worker, and sink together
// and reports aggregate timing and per-unit outcomes.
type Runner struct {
	cfg    *config.Config
	log    *logger.Logger
	sink   Sink
	worker *Worker
	sched  *Scheduler
	stats  *Stats
}

// NewRunner creates a runner with default components built from the
// configuration.
func NewRunner(cfg *config.Config, log *logger.Logger, sink Sink) *Runner {
	h := &cfg.Harvester
	stats := &Stats{}

	urls := NewURLBuilder(h.Source.BaseURL, h.Source.SortOrder)
	scraper := NewScraper(h.Fetch, h.Source)
	parser := NewParser(h.Pagination, urls)
	enricher := NewEnricher(scraper, log)
	pacer := NewPacer(h.Pacing)
	worker := NewWorker(scraper, parser, enricher, pacer, urls, stats, log)

	return &Runner{
		cfg:    cfg,
		log:    log,
		sink:   sink,
		worker: worker,
		sched:  NewScheduler(h.Concurrency.MaxActiveUnits, log),
		stats:  stats,
	}
}

// NewRunnerWithDeps creates a runner with injected worker and
// scheduler, for tests that substitute fetchers or delay strategies.
func NewRunnerWithDeps(cfg *config.Config, log *logger.Logger, sink Sink, worker *Worker, sched *Scheduler, stats *Stats) *Runner {
	return &Runner{
		cfg:    cfg,
		log:    log,
		sink:   sink,
		worker: worker,
		sched:  sched,
		stats:  stats,
	}
}

// Stats returns the run-wide counters.
func (r *Runner) Stats() *Stats {
	return r.stats
}

// Run executes the full harvest across all configured units and
// returns per-unit outcomes plus total wall-clock time. One unit's
// failure never aborts the batch.
func (r *Runner) Run(ctx context.Context) ([]models.UnitResult, time.Duration) {
	start := time.Now()

	units := Partition(r.cfg.Harvester.Range)
	r.log.Info("starting harvest",
		"units", len(units),
		"max_active", r.cfg.Harvester.Concurrency.MaxActiveUnits,
		"output", r.cfg.Harvester.Output.BasePath,
	)

	results := r.sched.Run(ctx, units, r.runUnit)

	elapsed := time.Since(start)
	r.log.Info("harvest finished", "elapsed", elapsed.Round(time.Millisecond).String(), "stats", r.stats.String())

	return results, elapsed
}

// runUnit harvests one unit and hands its records to the sink. Records
// gathered before a unit-terminal error are still exported; the unit
// stays in the failure roster so the operator can re-run it from page 1.
func (r *Runner) runUnit(ctx context.Context, unit models.CrawlUnit) models.UnitResult {
	result := r.worker.Harvest(ctx, unit)

	if len(result.Records) == 0 {
		r.log.Info("no records for unit, skipping export", "unit", unit.Key())
	} else {
		path, err := r.sink.Write(unit, result.Records)
		if err != nil {
			r.log.Error("export failed", "unit", unit.Key(), "error", err)

			result.Status = models.UnitFailed
			if result.Err == nil {
				result.Err = fmt.Errorf("export: %w", err)
			}
		} else {
			r.log.Info("exported unit", "unit", unit.Key(), "records", len(result.Records), "path", path)
		}
	}

	if result.Status == models.UnitCompleted {
		r.stats.UnitsCompleted.Add(1)
	} else {
		r.stats.UnitsFailed.Add(1)
	}

	return result
}
