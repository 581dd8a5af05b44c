package crawler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"cveharvest/internal/config"
	"cveharvest/internal/models"
)

func TestScheduler_OneResultPerUnit(t *testing.T) {
	units := Partition(config.RangeConfig{StartYear: 2020, EndYear: 2021})

	sched := NewScheduler(4, testLogger())

	results := sched.Run(context.Background(), units, func(_ context.Context, unit models.CrawlUnit) models.UnitResult {
		return models.UnitResult{Unit: unit, Status: models.UnitCompleted}
	})

	if len(results) != len(units) {
		t.Fatalf("Expected %d results, got %d", len(units), len(results))
	}

	seen := make(map[models.CrawlUnit]bool, len(results))
	for _, res := range results {
		if seen[res.Unit] {
			t.Errorf("Duplicate result for unit %v", res.Unit)
		}

		seen[res.Unit] = true
	}
}

func TestScheduler_ConcurrencyBound(t *testing.T) {
	const limit = 5

	units := Partition(config.RangeConfig{StartYear: 2015, EndYear: 2019})

	var active atomic.Int64

	var peak atomic.Int64

	sched := NewScheduler(limit, testLogger())

	sched.Run(context.Background(), units, func(_ context.Context, unit models.CrawlUnit) models.UnitResult {
		now := active.Add(1)

		for {
			prev := peak.Load()
			if now <= prev || peak.CompareAndSwap(prev, now) {
				break
			}
		}

		time.Sleep(time.Millisecond)
		active.Add(-1)

		return models.UnitResult{Unit: unit, Status: models.UnitCompleted}
	})

	if got := peak.Load(); got > limit {
		t.Errorf("Observed %d simultaneously active units, limit is %d", got, limit)
	}
}

func TestScheduler_PanicIsolatedToUnit(t *testing.T) {
	units := []models.CrawlUnit{
		{Year: 2024, Month: "March"},
		{Year: 2024, Month: "April"},
		{Year: 2024, Month: "May"},
	}

	sched := NewScheduler(2, testLogger())

	results := sched.Run(context.Background(), units, func(_ context.Context, unit models.CrawlUnit) models.UnitResult {
		if unit.Month == "April" {
			panic("boom")
		}

		return models.UnitResult{Unit: unit, Status: models.UnitCompleted}
	})

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	failed := 0

	for _, res := range results {
		if res.Unit.Month == "April" {
			if res.Status != models.UnitFailed || res.Err == nil {
				t.Errorf("Expected April to fail with error, got %s %v", res.Status, res.Err)
			}

			failed++
		} else if res.Status != models.UnitCompleted {
			t.Errorf("Sibling unit %v affected by panic: %s", res.Unit, res.Status)
		}
	}

	if failed != 1 {
		t.Errorf("Expected exactly 1 failed unit, got %d", failed)
	}
}
