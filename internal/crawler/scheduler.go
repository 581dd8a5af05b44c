package crawler

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"cveharvest/internal/logger"
	"cveharvest/internal/models"
)

// UnitTask processes one crawl unit to completion.
type UnitTask func(ctx context.Context, unit models.CrawlUnit) models.UnitResult

// Scheduler runs unit tasks with a fixed bound on simultaneously
// active units. Units complete independently: one unit's failure is
// recorded in its result and does not cancel or affect siblings.
type Scheduler struct {
	limit int
	log   *logger.Logger
}

// NewScheduler creates a scheduler admitting at most limit units at once.
func NewScheduler(limit int, log *logger.Logger) *Scheduler {
	return &Scheduler{
		limit: limit,
		log:   log,
	}
}

// Run executes task for every unit and collects one result per unit
// over a channel, in completion order. A panic inside a task is
// recovered and attributed to its unit.
func (s *Scheduler) Run(ctx context.Context, units []models.CrawlUnit, task UnitTask) []models.UnitResult {
	results := make(chan models.UnitResult, len(units))

	g := new(errgroup.Group)
	g.SetLimit(s.limit)

	for _, unit := range units {
		unit := unit
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("unit task panicked", "unit", unit.Key(), "panic", r)

					results <- models.UnitResult{
						Unit:   unit,
						Status: models.UnitFailed,
						Err:    fmt.Errorf("unit task panicked: %v", r),
					}
				}
			}()

			results <- task(ctx, unit)

			return nil
		})
	}

	_ = g.Wait()
	close(results)

	collected := make([]models.UnitResult, 0, len(units))
	for res := range results {
		collected = append(collected, res)
	}

	return collected
}
