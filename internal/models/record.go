package models

// CategoryUnknown is substituted when enrichment cannot resolve a
// vulnerability category for a record.
const CategoryUnknown = "N/A"

// Record is one harvested vulnerability entry. All seven fields are
// always populated; fields that could not be resolved carry a sentinel
// or empty string, never a missing value.
type Record struct {
	ID        string
	Category  string
	Summary   string
	MaxCVSS   string
	EPSSScore string
	Published string
	Updated   string
}

// UnitStatus describes how a crawl unit finished.
type UnitStatus string

// Unit completion statuses.
const (
	UnitCompleted UnitStatus = "completed"
	UnitFailed    UnitStatus = "failed"
)

// UnitResult is the accumulated output of one crawl unit. Records holds
// whatever pages were gathered before the unit stopped; Err is set when
// the unit stopped early on a listing fetch failure or an unexpected
// defect.
type UnitResult struct {
	Unit    CrawlUnit
	Records []Record
	Status  UnitStatus
	Err     error
}
