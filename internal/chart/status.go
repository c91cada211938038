package chart

import (
	"fmt"
	"image/color"

	"bess-dashboard/internal/analysis"
	"bess-dashboard/internal/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
)

var statusColors = map[model.Status]color.RGBA{
	model.StatusUnknown:         rgb(0xc0c0c0), // silver
	model.StatusOut:             rgb(0xffd700), // gold
	model.StatusOnTest:          rgb(0x3cb371), // mediumseagreen
	model.StatusOn:              tabGreen,
	model.StatusOff:             tabRed,
	model.StatusOnRegulation:    tabBlue,
	model.StatusOnOutageService: rgb(0x008000), // green
}

// StatusColor returns the fixed color of a status.
func StatusColor(s model.Status) (color.RGBA, error) {
	c, ok := statusColors[s]
	if !ok {
		return color.RGBA{}, &model.StatusError{Value: string(s)}
	}
	return c, nil
}

type statusBands struct {
	runs   []analysis.StatusRun
	colors []color.RGBA
}

func (b statusBands) Plot(c draw.Canvas, plt *plot.Plot) {
	for i, r := range b.runs {
		rect(c, plt, float64(r.Start.Unix()), float64(r.End.Unix()), 0, 1, b.colors[i])
	}
}

func (b statusBands) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(b.runs) == 0 {
		return 0, 1, 0, 1
	}
	return float64(b.runs[0].Start.Unix()), float64(b.runs[len(b.runs)-1].End.Unix()), 0, 1
}

// StatusTimeline draws one unit-height band per status run, colored by status,
// with a legend entry per status in order of first appearance.
func StatusTimeline(resource string, runs []analysis.StatusRun) (*Chart, error) {
	bands := statusBands{runs: runs, colors: make([]color.RGBA, len(runs))}
	seen := map[model.Status]bool{}
	ch := newChart(fmt.Sprintf("Status timeline of the battery %s", resource))
	p := ch.Plot
	for i, r := range runs {
		clr, err := StatusColor(r.Status)
		if err != nil {
			return nil, err
		}
		bands.colors[i] = clr
		if !seen[r.Status] {
			seen[r.Status] = true
			p.Legend.Add(string(r.Status), swatch{clr})
		}
	}
	p.Add(bands)
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.HideY()
	p.Legend.Top = true
	p.Legend.Left = true
	return ch, nil
}
