// Package models defines the data types shared across the harvester.
package models

import "fmt"

// MonthNames lists the twelve month names in calendar order, matching
// the month segment used by the catalog's listing URLs.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// monthCodes maps a month name to its two-digit numeric code.
var monthCodes = map[string]string{
	"January": "01", "February": "02", "March": "03", "April": "04",
	"May": "05", "June": "06", "July": "07", "August": "08",
	"September": "09", "October": "10", "November": "11", "December": "12",
}

// MonthCode returns the two-digit numeric code for a month name, or an
// empty string when the name is unknown.
func MonthCode(name string) string {
	return monthCodes[name]
}

// IsValidMonth reports whether name is one of the twelve month names.
func IsValidMonth(name string) bool {
	_, ok := monthCodes[name]
	return ok
}

// CrawlUnit identifies one (year, month) partition of the catalog.
// A unit is immutable once created and is consumed by exactly one
// worker invocation.
type CrawlUnit struct {
	Year  int
	Month string
}

// Key returns the unit's output key, e.g. "2024_March".
func (u CrawlUnit) Key() string {
	return fmt.Sprintf("%d_%s", u.Year, u.Month)
}

// String returns a human-readable form of the unit.
func (u CrawlUnit) String() string {
	return fmt.Sprintf("%s %d", u.Month, u.Year)
}
