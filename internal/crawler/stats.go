package crawler

import (
	"fmt"
	"sync/atomic"
)

// Stats holds run-wide counters, updated atomically by concurrently
// running units.
type Stats struct {
	PagesFetched   atomic.Int64
	FetchErrors    atomic.Int64
	Records        atomic.Int64
	EnrichMisses   atomic.Int64
	UnitsCompleted atomic.Int64
	UnitsFailed    atomic.Int64
}

// String returns a one-line summary of the counters.
func (s *Stats) String() string {
	return fmt.Sprintf(
		"pages: %d fetched, %d errors | records: %d (%d enrich misses) | units: %d completed, %d failed",
		s.PagesFetched.Load(),
		s.FetchErrors.Load(),
		s.Records.Load(),
		s.EnrichMisses.Load(),
		s.UnitsCompleted.Load(),
		s.UnitsFailed.Load(),
	)
}
