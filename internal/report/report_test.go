// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/action-engine/pkg/types"
)

func sampleRecords() []types.ActionRecord {
	return []types.ActionRecord{
		{Text: "Retrofit the library HVAC", Category: types.CategoryStationaryEnergy, SourceFile: "a.pdf"},
		{Text: "Rooftop solar on depot", Category: types.CategoryStationaryEnergy, SourceFile: "a.pdf"},
		{Text: "Expand composting", Category: types.CategoryWaste, SourceFile: "a.pdf"},
		{Text: "Protected bike lanes", Category: types.CategoryTransport, SourceFile: "b.pdf"},
		{Text: "Community engagement plan", Category: types.CategoryOther, SourceFile: "b.pdf"},
		{Text: "EV charging at town hall", Category: types.CategoryTransport, SourceFile: "b.pdf"},
	}
}

func TestComputeCounts(t *testing.T) {
	stats := Compute(sampleRecords())

	require.Equal(t, 6, stats.Total)
	require.Len(t, stats.ByCategory, 4)

	byCat := make(map[types.Category]CategoryStat)
	for _, cs := range stats.ByCategory {
		byCat[cs.Category] = cs
	}

	assert.Equal(t, 2, byCat[types.CategoryStationaryEnergy].Count)
	assert.Equal(t, 1, byCat[types.CategoryWaste].Count)
	assert.Equal(t, 2, byCat[types.CategoryTransport].Count)
	assert.Equal(t, 1, byCat[types.CategoryOther].Count)

	var pctSum float64
	for _, cs := range stats.ByCategory {
		pctSum += cs.Percentage
	}
	assert.InDelta(t, 100.0, pctSum, 0.05, "percentages should sum to 100 within rounding")
}

func TestComputeRounding(t *testing.T) {
	records := []types.ActionRecord{
		{Text: "a", Category: types.CategoryWaste},
		{Text: "b", Category: types.CategoryTransport},
		{Text: "c", Category: types.CategoryTransport},
	}

	stats := Compute(records)
	byCat := make(map[types.Category]float64)
	for _, cs := range stats.ByCategory {
		byCat[cs.Category] = cs.Percentage
	}

	assert.Equal(t, 33.33, byCat[types.CategoryWaste])
	assert.Equal(t, 66.67, byCat[types.CategoryTransport])
	assert.Equal(t, 0.0, byCat[types.CategoryStationaryEnergy])
}

func TestComputeEmpty(t *testing.T) {
	stats := Compute(nil)

	assert.Equal(t, 0, stats.Total)
	require.Len(t, stats.ByCategory, 4, "zero-count categories are still listed")
	for _, cs := range stats.ByCategory {
		assert.Equal(t, 0, cs.Count)
		assert.Equal(t, 0.0, cs.Percentage)
	}
}

func TestWriteEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "action_analysis.xlsx")
	require.NoError(t, Write(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ActionsSheet, StatsSheet}, f.GetSheetList())

	actionRows, err := f.GetRows(ActionsSheet)
	require.NoError(t, err)
	require.Len(t, actionRows, 1, "only the header row for an empty run")

	statRows, err := f.GetRows(StatsSheet)
	require.NoError(t, err)
	require.Len(t, statRows, 6, "header, four categories, total")

	for _, row := range statRows[1:5] {
		require.Len(t, row, 3)
		assert.Equal(t, "0", row[1], "category %s count", row[0])
		assert.Equal(t, "0", row[2], "category %s percentage", row[0])
	}
	assert.Equal(t, []string{"Total", "0"}, statRows[5])
}

func TestWriteRoundTrip(t *testing.T) {
	records := sampleRecords()
	path := filepath.Join(t.TempDir(), "action_analysis.xlsx")
	require.NoError(t, Write(path, records))

	got, err := ReadActions(path)
	require.NoError(t, err)
	require.Len(t, got, len(records))

	for i, rec := range records {
		assert.Equal(t, rec.Text, got[i].Text)
		assert.Equal(t, rec.Category, got[i].Category)
		assert.Equal(t, rec.SourceFile, got[i].SourceFile)
	}

	// The Statistics sheet matches a fresh Compute over the same records.
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	statRows, err := f.GetRows(StatsSheet)
	require.NoError(t, err)
	require.Len(t, statRows, 6)

	stats := Compute(records)
	for i, cs := range stats.ByCategory {
		row := statRows[i+1]
		require.Len(t, row, 3)
		assert.Equal(t, string(cs.Category), row[0])
	}

	var pctSum float64
	for _, cs := range stats.ByCategory {
		pctSum += cs.Percentage
	}
	assert.True(t, math.Abs(pctSum-100.0) < 0.05)
}

func TestWriteBadPath(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "nested", "out.xlsx"), nil)
	assert.Error(t, err, "write into a nonexistent directory should surface an error")
}
