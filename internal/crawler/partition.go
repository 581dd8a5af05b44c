package crawler

import (
	"cveharvest/internal/config"
	"cveharvest/internal/models"
)

// Partition enumerates the full cross product of configured years and
// months as an ordered slice of crawl units. The result contains no
// duplicates and is a pure function of the range configuration.
func Partition(r config.RangeConfig) []models.CrawlUnit {
	months := r.GetMonths()
	years := r.Years()

	units := make([]models.CrawlUnit, 0, len(years)*len(months))

	for _, year := range years {
		for _, month := range months {
			units = append(units, models.CrawlUnit{Year: year, Month: month})
		}
	}

	return units
}
