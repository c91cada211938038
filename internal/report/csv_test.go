package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bess-dashboard/internal/analysis"
	"bess-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, raw []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestRevenueFrame(t *testing.T) {
	table := &model.RevenueTable{Rows: []model.RevenueRow{
		model.NewRevenueRow("A", [model.NumLineItems]float64{10, 20, 0, 5, 100}, 8),
		model.NewRevenueRow("B", [model.NumLineItems]float64{1000}, 10),
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, RevenueFrame(analysis.RankRevenue(table, model.MetricTotal))))

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"rank", "resource",
		"Energy", "Non-spinning Reserve", "Responsive Reserve", "Regulation-Up", "Regulation-Down",
		"total_revenue", "max_power_mw", "total_revenue_per_mw",
	}, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "B", records[1][1])
	assert.Equal(t, "A", records[2][1])
	assert.Equal(t, "135.000000", records[2][7])
	assert.Equal(t, "16.875000", records[2][9])
}

func TestVariationFrame_AlignsOnTimestamps(t *testing.T) {
	t0 := time.Date(2021, 1, 1, 6, 0, 0, 0, time.UTC)
	a := model.Series{Name: "nonspin", Index: []time.Time{t0, t0.Add(time.Hour)}, Values: []float64{1, 2}}
	b := model.Series{Name: "rrs", Index: []time.Time{t0.Add(time.Hour)}, Values: []float64{3}}

	path := filepath.Join(t.TempDir(), "variation.csv")
	require.NoError(t, WriteCSVFile(path, VariationFrame([]model.Series{a, b})))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	records := readCSV(t, raw)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"timestamp", "nonspin", "rrs"}, records[0])
	assert.Equal(t, "2021-01-01T06:00:00Z", records[1][0])
	assert.Equal(t, "1.000000", records[1][1])
	assert.Equal(t, "NaN", records[1][2])
	assert.Equal(t, "3.000000", records[2][2])
}

func TestSummaryFrame(t *testing.T) {
	s := analysis.Summarize("energy", []float64{1, 2, 3, 4})
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, SummaryFrame([]analysis.Summary{s})))

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, []string{"name", "count", "min", "p25", "median", "p75", "max", "mean"}, records[0])
	assert.Equal(t, []string{"energy", "4", "1.000000", "1.750000", "2.500000", "3.250000", "4.000000", "2.500000"}, records[1])
}
