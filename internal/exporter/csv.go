// Package exporter persists harvested unit records as CSV artifacts.
package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"cveharvest/internal/models"
)

// Column header matching the catalog's listing fields.
var csvHeader = []string{"CVE ID", "CVE Type", "Description", "Max CVSS", "EPSS Score", "Published", "Updated"}

// CSVExporter writes one CSV file per crawl unit under a base
// directory, keyed by the unit's year and month. A write fully
// replaces any prior artifact for the same unit.
type CSVExporter struct {
	basePath string
}

// NewCSVExporter creates an exporter rooted at basePath.
func NewCSVExporter(basePath string) *CSVExporter {
	return &CSVExporter{basePath: basePath}
}

// Write persists the unit's records and returns the artifact path. An
// empty record set produces no artifact: the absence of a file is the
// unit's "no data this period" signal. The file is written to a
// temporary name and renamed into place so readers never observe a
// partial artifact.
func (e *CSVExporter) Write(unit models.CrawlUnit, records []models.Record) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(e.basePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	finalPath := filepath.Join(e.basePath, fmt.Sprintf("CVE_%s.csv", unit.Key()))

	tmp, err := os.CreateTemp(e.basePath, "."+filepath.Base(finalPath)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	tmpPath := tmp.Name()

	if err := writeRecords(tmp, records); err != nil {
		tmp.Close()
		os.Remove(tmpPath)

		return "", err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)

		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)

		return "", fmt.Errorf("failed to replace output file: %w", err)
	}

	return finalPath, nil
}

func writeRecords(f *os.File, records []models.Record) error {
	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		row := []string{r.ID, r.Category, r.Summary, r.MaxCVSS, r.EPSSScore, r.Published, r.Updated}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write record %s: %w", r.ID, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}

	return nil
}
