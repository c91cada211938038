package chart

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bess-dashboard/internal/analysis"
	"bess-dashboard/internal/model"
	"bess-dashboard/internal/sample"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func renderPNG(t *testing.T, ch *Chart) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, ch.WritePNG(&buf))
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "not a PNG")
	return buf.Bytes()
}

func TestStatusColor_EveryStatusMapped(t *testing.T) {
	seen := map[[4]uint8]model.Status{}
	for _, s := range model.Statuses {
		c, err := StatusColor(s)
		require.NoError(t, err, s)
		key := [4]uint8{c.R, c.G, c.B, c.A}
		_, dup := seen[key]
		assert.False(t, dup, "%s shares a color with %s", s, seen[key])
		seen[key] = s
	}

	_, err := StatusColor(model.Status("SLEEPING"))
	var statusErr *model.StatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestStatusTimeline(t *testing.T) {
	t0 := time.Date(2021, 1, 1, 6, 0, 0, 0, time.UTC)
	runs := []analysis.StatusRun{
		{Status: model.StatusOff, Start: t0, End: t0.Add(3 * time.Hour), Hours: 3},
		{Status: model.StatusOnRegulation, Start: t0.Add(3 * time.Hour), End: t0.Add(5 * time.Hour), Hours: 2},
		{Status: model.StatusOff, Start: t0.Add(5 * time.Hour), End: t0.Add(6 * time.Hour), Hours: 1},
	}
	ch, err := StatusTimeline("BATT_ALPHA", runs)
	require.NoError(t, err)
	assert.Equal(t, "Status timeline of the battery BATT_ALPHA", ch.Title)
	renderPNG(t, ch)

	runs = append(runs, analysis.StatusRun{Status: "BROKEN", Start: t0.Add(6 * time.Hour), End: t0.Add(7 * time.Hour)})
	_, err = StatusTimeline("BATT_ALPHA", runs)
	assert.Error(t, err)
}

func TestEnergyPriceBoxes(t *testing.T) {
	ds := sample.Generate(sample.DefaultOptions())
	prices, err := analysis.EnergyPrices(ds)
	require.NoError(t, err)
	before := prices.Values[0][0]

	ch, err := EnergyPriceBoxes(prices)
	require.NoError(t, err)
	assert.Contains(t, ch.Title, "in 2021")
	renderPNG(t, ch)
	assert.Equal(t, before, prices.Values[0][0])
}

func TestVariationBoxes(t *testing.T) {
	s := model.Series{Name: "energy", Values: []float64{0, 10, math.NaN(), math.Inf(1), 30}}
	ch, err := VariationBoxes("energy", s)
	require.NoError(t, err)
	renderPNG(t, ch)

	_, err = VariationBoxes("energy", model.Series{Name: "empty", Values: []float64{math.NaN()}})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRevenueBars(t *testing.T) {
	table := &model.RevenueTable{Rows: []model.RevenueRow{
		model.NewRevenueRow("A", [model.NumLineItems]float64{100}, 10),
		model.NewRevenueRow("B", [model.NumLineItems]float64{300}, 0),
	}}
	for _, m := range []model.RevenueMetric{model.MetricTotal, model.MetricPerMW} {
		ch, err := RevenueBars(table, m)
		require.NoError(t, err, m)
		assert.Equal(t, m.Label(), ch.Title)
		renderPNG(t, ch)
	}
	assert.Equal(t, "A", table.Rows[0].Resource, "input untouched")
}

func TestWaterfallSteps(t *testing.T) {
	steps, err := WaterfallSteps(
		[]string{"Energy", "Non-spin", "RRS"},
		[]float64{10, -4, math.NaN()},
		"Total",
	)
	require.NoError(t, err)
	require.Len(t, steps, 4)

	assert.Equal(t, Step{Label: "Energy", Value: 10, Bottom: 0, Top: 10}, steps[0])
	assert.Equal(t, Step{Label: "Non-spin", Value: -4, Bottom: 10, Top: 6}, steps[1])
	assert.Equal(t, Step{Label: "RRS", Value: 0, Bottom: 6, Top: 6}, steps[2])
	assert.Equal(t, Step{Label: "Total", Value: 6, Bottom: 0, Top: 6, Net: true}, steps[3])

	_, err = WaterfallSteps([]string{"a"}, nil, "Total")
	assert.Error(t, err)
}

func TestRevenueWaterfall_SaveAndSize(t *testing.T) {
	row := model.NewRevenueRow("BATT_ALPHA", [model.NumLineItems]float64{1.5e6, 2e5, -1e5, 0, 3e5}, 10)
	ch, err := RevenueWaterfall(row, 2021)
	require.NoError(t, err)
	assert.Equal(t, "Yearly Revenue of the battery BATT_ALPHA in 2021", ch.Title)
	assert.Equal(t, DefaultWidth, ch.Width)

	ch.WithSize(6, 0)
	assert.Equal(t, 6*72.0, float64(ch.Width))
	assert.Equal(t, DefaultHeight, ch.Height)

	path := filepath.Join(t.TempDir(), "waterfall.png")
	require.NoError(t, ch.Save(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, pngMagic))
}
