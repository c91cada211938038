package chart

import (
	"errors"
	"fmt"
	"math"

	"bess-dashboard/internal/analysis"
	"bess-dashboard/internal/model"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when every input column is empty after dropping
// non-finite values.
var ErrNoData = errors.New("no finite values to plot")

type boxInput struct {
	name   string
	values []float64
}

// boxes draws black boxes with an orange median and no outlier glyphs. The
// y range covers the whiskers only. Empty inputs are skipped.
func boxes(ch *Chart, inputs []boxInput) error {
	p := ch.Plot
	names := []string{}
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, in := range inputs {
		vals := analysis.FiniteSorted(in.values)
		if len(vals) == 0 {
			continue
		}
		b, err := plotter.NewBoxPlot(vg.Points(20), float64(len(names)), plotter.Values(vals))
		if err != nil {
			return fmt.Errorf("box %s: %w", in.name, err)
		}
		b.BoxStyle.Color = black
		b.WhiskerStyle.Color = black
		b.MedianStyle.Color = orange
		b.Outside = nil
		p.Add(b)
		names = append(names, in.name)
		ymin = math.Min(ymin, b.AdjLow)
		ymax = math.Max(ymax, b.AdjHigh)
	}
	if len(names) == 0 {
		return ErrNoData
	}
	pad := (ymax - ymin) * 0.05
	if pad == 0 {
		pad = 1
	}
	p.Y.Min, p.Y.Max = ymin-pad, ymax+pad
	p.NominalX(names...)
	return nil
}

// EnergyPriceBoxes draws one box per resource of an interval × resource price
// table, ordered from highest to lowest median.
func EnergyPriceBoxes(prices *model.Pivot) (*Chart, error) {
	title := "Median hourly price of energy for each battery, from highest to lowest"
	if len(prices.Index) > 0 {
		title = fmt.Sprintf("Median hourly price of energy in %d for each battery, from highest to lowest", prices.Index[0].Year())
	}
	ch := newChart(title)
	ch.Plot.Y.Label.Text = "Price of energy ($/MWh)"

	inputs := []boxInput{}
	for _, s := range analysis.SortByMedianDesc(analysis.SummarizeColumns(prices)) {
		vals, _ := prices.Column(s.Name)
		inputs = append(inputs, boxInput{name: s.Name, values: vals})
	}
	if err := boxes(ch, inputs); err != nil {
		return nil, err
	}
	rotateXLabels(ch.Plot, 75)
	return ch, nil
}

// VariationBoxes draws one box per variation series.
func VariationBoxes(priceType string, series ...model.Series) (*Chart, error) {
	ch := newChart(fmt.Sprintf("Median variation of %s prices between the different batteries", priceType))
	ch.Plot.Y.Label.Text = "Percentage variation (%)"

	inputs := make([]boxInput, 0, len(series))
	for _, s := range series {
		inputs = append(inputs, boxInput{name: s.Name, values: s.Values})
	}
	if err := boxes(ch, inputs); err != nil {
		return nil, err
	}
	return ch, nil
}

// RevenueBars draws one bar per resource for the chosen metric, highest
// first. Resources with a non-finite value are left out.
func RevenueBars(table *model.RevenueTable, metric model.RevenueMetric) (*Chart, error) {
	ch := newChart(metric.Label())
	p := ch.Plot
	p.Y.Label.Text = metric.Unit()

	names := []string{}
	vals := plotter.Values{}
	for _, r := range analysis.RankRevenue(table, metric) {
		if !finite(r.Value) {
			continue
		}
		names = append(names, r.Resource)
		vals = append(vals, r.Value)
	}
	if len(vals) == 0 {
		return nil, ErrNoData
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(12))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = tabBlue
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	rotateXLabels(p, 75)
	return ch, nil
}
