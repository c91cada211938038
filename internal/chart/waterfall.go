package chart

import (
	"fmt"
	"image/color"
	"math"

	"bess-dashboard/internal/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Step is one bar of a waterfall. Bottom and Top are the running total
// before and after the step; the net bar spans 0 to the final total.
type Step struct {
	Label  string
	Value  float64
	Bottom float64
	Top    float64
	Net    bool
}

// WaterfallSteps turns line items into running-total steps followed by a net
// bar. Non-finite values count as 0.
func WaterfallSteps(labels []string, values []float64, netLabel string) ([]Step, error) {
	if len(labels) != len(values) {
		return nil, fmt.Errorf("waterfall: %d labels for %d values", len(labels), len(values))
	}
	steps := make([]Step, 0, len(values)+1)
	total := 0.0
	for i, v := range values {
		if !finite(v) {
			v = 0
		}
		steps = append(steps, Step{Label: labels[i], Value: v, Bottom: total, Top: total + v})
		total += v
	}
	steps = append(steps, Step{Label: netLabel, Value: total, Bottom: 0, Top: total, Net: true})
	return steps, nil
}

const barWidth = 0.8

type waterfallBars struct{ steps []Step }

func (w waterfallBars) Plot(c draw.Canvas, plt *plot.Plot) {
	for i, s := range w.steps {
		var clr color.Color = stepUp
		switch {
		case s.Net:
			clr = netColor
		case s.Value < 0:
			clr = stepDown
		}
		x := float64(i)
		rect(c, plt, x-barWidth/2, x+barWidth/2, s.Bottom, s.Top, clr)
	}
}

func (w waterfallBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	ymin, ymax = 0, 0
	for _, s := range w.steps {
		ymin = math.Min(ymin, math.Min(s.Bottom, s.Top))
		ymax = math.Max(ymax, math.Max(s.Bottom, s.Top))
	}
	return -barWidth / 2, float64(len(w.steps)-1) + barWidth/2, ymin, ymax
}

// Waterfall decomposes a total into its line items: each item is a step from
// the running total (green up, red down) and a final net bar shows the total.
// Every bar is labelled with its value.
func Waterfall(title string, labels []string, values []float64, netLabel, yLabel string) (*Chart, error) {
	steps, err := WaterfallSteps(labels, values, netLabel)
	if err != nil {
		return nil, err
	}
	ch := newChart(title)
	p := ch.Plot
	p.Y.Label.Text = yLabel
	p.Add(waterfallBars{steps: steps})

	xys := make(plotter.XYs, len(steps))
	texts := make([]string, len(steps))
	names := make([]string, len(steps))
	for i, s := range steps {
		xys[i] = plotter.XY{X: float64(i), Y: math.Max(s.Bottom, s.Top)}
		texts[i] = fmt.Sprintf("%.2f", s.Value)
		names[i] = s.Label
	}
	valueLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("waterfall labels: %w", err)
	}
	for i := range valueLabels.TextStyle {
		valueLabels.TextStyle[i].Font.Size = labelSize
		valueLabels.TextStyle[i].XAlign = text.XCenter
	}
	valueLabels.Offset = vg.Point{Y: vg.Points(2)}
	p.Add(valueLabels)

	p.NominalX(names...)
	rotateXLabels(p, 70)
	return ch, nil
}

// RevenueWaterfall shows one resource's revenue line items in millions of
// dollars.
func RevenueWaterfall(row model.RevenueRow, year int) (*Chart, error) {
	labels := make([]string, 0, model.NumLineItems)
	values := make([]float64, 0, model.NumLineItems)
	for _, item := range model.LineItems {
		labels = append(labels, item.String())
		values = append(values, row.Items[item]/1e6)
	}
	title := fmt.Sprintf("Yearly Revenue of the battery %s in %d", row.Resource, year)
	return Waterfall(title, labels, values, "Total", "Revenue (M$)")
}
