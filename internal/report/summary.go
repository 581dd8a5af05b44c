// Package report renders the end-of-run roster as an aligned text table.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"cveharvest/internal/models"
)

var rosterHeader = []string{"Unit", "Status", "Records", "Error"}

// Render formats the per-unit roster plus a totals line. Units are
// listed in calendar order regardless of completion order; a failed
// unit's error text appears in the last column.
func Render(results []models.UnitResult, elapsed time.Duration) string {
	sorted := make([]models.UnitResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Unit.Year != sorted[j].Unit.Year {
			return sorted[i].Unit.Year < sorted[j].Unit.Year
		}

		return models.MonthCode(sorted[i].Unit.Month) < models.MonthCode(sorted[j].Unit.Month)
	})

	rows := make([][]string, 0, len(sorted)+1)
	rows = append(rows, rosterHeader)

	completed := 0
	failed := 0
	totalRecords := 0

	for _, res := range sorted {
		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}

		if res.Status == models.UnitCompleted {
			completed++
		} else {
			failed++
		}

		totalRecords += len(res.Records)

		rows = append(rows, []string{
			res.Unit.Key(),
			string(res.Status),
			fmt.Sprintf("%d", len(res.Records)),
			errText,
		})
	}

	var sb strings.Builder

	sb.WriteString(renderTable(rows))
	sb.WriteString(fmt.Sprintf("\n%d units completed, %d failed, %d records in %s\n",
		completed, failed, totalRecords, elapsed.Round(time.Millisecond)))

	return sb.String()
}

// renderTable pads each cell to its column's display width.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	colCount := len(rows[0])
	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i := 0; i < len(row) && i < colCount; i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	var sb strings.Builder

	for rIdx, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			sb.WriteString(runewidth.FillRight(cell, colWidths[i]))

			if i < colCount-1 {
				sb.WriteString("  ")
			}
		}

		sb.WriteString("\n")

		if rIdx == 0 {
			for i := 0; i < colCount; i++ {
				sb.WriteString(strings.Repeat("-", colWidths[i]))

				if i < colCount-1 {
					sb.WriteString("  ")
				}
			}

			sb.WriteString("\n")
		}
	}

	return sb.String()
}
