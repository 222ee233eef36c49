// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report computes per-category statistics over extracted actions and
// writes the two-sheet workbook summary.
package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/action-engine/pkg/types"
)

const (
	// ActionsSheet lists one row per extracted action.
	ActionsSheet = "Actions"
	// StatsSheet carries the per-category counts and percentages.
	StatsSheet = "Statistics"
)

// CategoryStat is the tally for one category.
type CategoryStat struct {
	Category   types.Category
	Count      int
	Percentage float64
}

// Stats holds the derived tallies for a run. Every category appears, in
// report order, whether or not it occurred.
type Stats struct {
	Total      int
	ByCategory []CategoryStat
}

// Compute tallies the records per category. Percentages are of the total,
// rounded to two decimal places; with zero records every category is 0%.
func Compute(records []types.ActionRecord) Stats {
	counts := make(map[types.Category]int)
	for _, r := range records {
		counts[r.Category]++
	}

	stats := Stats{Total: len(records)}
	for _, c := range types.Categories {
		var pct float64
		if stats.Total > 0 {
			pct = round2(float64(counts[c]) / float64(stats.Total) * 100)
		}
		stats.ByCategory = append(stats.ByCategory, CategoryStat{
			Category:   c,
			Count:      counts[c],
			Percentage: pct,
		})
	}
	return stats
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Write builds the workbook at path: an Actions sheet with one row per record
// in aggregation order, and a Statistics sheet with the per-category tallies
// and the total. A write failure is fatal to the run.
func Write(path string, records []types.ActionRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ActionsSheet); err != nil {
		return fmt.Errorf("naming actions sheet: %w", err)
	}

	if err := f.SetSheetRow(ActionsSheet, "A1", &[]any{"Action", "Category", "Source File"}); err != nil {
		return fmt.Errorf("writing actions header: %w", err)
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing actions row %d: %w", i+2, err)
		}
		row := []any{r.Text, string(r.Category), r.SourceFile}
		if err := f.SetSheetRow(ActionsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing actions row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(StatsSheet); err != nil {
		return fmt.Errorf("creating statistics sheet: %w", err)
	}

	stats := Compute(records)
	if err := f.SetSheetRow(StatsSheet, "A1", &[]any{"Category", "Count", "Percentage"}); err != nil {
		return fmt.Errorf("writing statistics header: %w", err)
	}
	for i, cs := range stats.ByCategory {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing statistics row %d: %w", i+2, err)
		}
		row := []any{string(cs.Category), cs.Count, cs.Percentage}
		if err := f.SetSheetRow(StatsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing statistics row %d: %w", i+2, err)
		}
	}

	totalCell, err := excelize.CoordinatesToCellName(1, len(stats.ByCategory)+2)
	if err != nil {
		return fmt.Errorf("addressing total row: %w", err)
	}
	totalRow := []any{"Total", stats.Total}
	if err := f.SetSheetRow(StatsSheet, totalCell, &totalRow); err != nil {
		return fmt.Errorf("writing total row: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing workbook %s: %w", path, err)
	}
	return nil
}

// ReadActions reads the Actions sheet of an existing workbook back into
// records, for recomputing statistics over a previous run.
func ReadActions(path string) ([]types.ActionRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(ActionsSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s sheet: %w", ActionsSheet, err)
	}

	var records []types.ActionRecord
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		rec := types.ActionRecord{Text: row[0]}
		if len(row) > 1 {
			rec.Category = types.ParseCategory(row[1])
		} else {
			rec.Category = types.CategoryOther
		}
		if len(row) > 2 {
			rec.SourceFile = row[2]
		}
		records = append(records, rec)
	}
	return records, nil
}
