// Package chart renders the dashboard charts with gonum/plot. Builders take
// computed tables and series and never modify them.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default figure size, 10 × 3 inches.
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 3 * vg.Inch
)

// Chart is a rendered-on-demand figure.
type Chart struct {
	Title  string
	Plot   *plot.Plot
	Width  vg.Length
	Height vg.Length
}

func newChart(title string) *Chart {
	p := plot.New()
	p.Title.Text = title
	return &Chart{Title: title, Plot: p, Width: DefaultWidth, Height: DefaultHeight}
}

// WithSize sets the figure size in inches. Non-positive values keep the
// current size.
func (c *Chart) WithSize(widthIn, heightIn float64) *Chart {
	if widthIn > 0 {
		c.Width = vg.Length(widthIn) * vg.Inch
	}
	if heightIn > 0 {
		c.Height = vg.Length(heightIn) * vg.Inch
	}
	return c
}

// WritePNG encodes the chart as PNG.
func (c *Chart) WritePNG(w io.Writer) error {
	wt, err := c.Plot.WriterTo(c.Width, c.Height, "png")
	if err != nil {
		return fmt.Errorf("render %q: %w", c.Title, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %q: %w", c.Title, err)
	}
	return nil
}

// Save writes the chart to path; the format follows the file extension.
func (c *Chart) Save(path string) error {
	return c.Plot.Save(c.Width, c.Height, path)
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

var (
	black     = rgb(0x000000)
	orange    = rgb(0xffa500)
	tabBlue   = rgb(0x1f77b4)
	tabGreen  = rgb(0x2ca02c)
	tabRed    = rgb(0xd62728)
	netColor  = tabBlue
	stepUp    = tabGreen
	stepDown  = tabRed
	labelSize = vg.Points(8)
)

// rotateXLabels tilts the nominal x tick labels by deg degrees.
func rotateXLabels(p *plot.Plot, deg float64) {
	p.X.Tick.Label.Rotation = deg * math.Pi / 180
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// rect fills the data-space rectangle [x0,x1]×[y0,y1].
func rect(c draw.Canvas, plt *plot.Plot, x0, x1, y0, y1 float64, clr color.Color) {
	trX, trY := plt.Transforms(&c)
	pts := []vg.Point{
		{X: trX(x0), Y: trY(y0)},
		{X: trX(x0), Y: trY(y1)},
		{X: trX(x1), Y: trY(y1)},
		{X: trX(x1), Y: trY(y0)},
	}
	c.FillPolygon(clr, c.ClipPolygonXY(pts))
}

// swatch is a solid legend thumbnail.
type swatch struct{ color.Color }

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.Color, pts)
}
