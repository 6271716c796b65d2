// Package chart renders simulation results as a line chart.
package chart

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/kilianp07/gridsim/core/grid"
)

const (
	Width  = 8 * vg.Inch
	Height = 4 * vg.Inch
)

// Series labels, in drawing order.
const (
	LabelDemand     = "Demand"
	LabelGeneration = "Solar Energy"
	LabelStorage    = "Energy Storage"
)

// New builds the plot for r: one line with markers per output series.
// Non-finite values are left out, so the affected series shows a gap.
func New(r grid.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Smart Home Simulation"
	p.X.Label.Text = "Time Steps"
	p.Y.Label.Text = "Power(KW)"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	series := []struct {
		label  string
		values []float64
	}{
		{LabelDemand, r.Demand},
		{LabelGeneration, r.Generation},
		{LabelStorage, r.Storage},
	}
	for i, sr := range series {
		line := &plotter.Line{LineStyle: plotter.DefaultLineStyle}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		marks := &plotter.Scatter{GlyphStyle: plotter.DefaultGlyphStyle}
		marks.Color = plotutil.Color(i)
		marks.Shape = plotutil.Shape(i)

		for _, seg := range segments(r.TimeSteps, sr.values) {
			l, s, err := plotter.NewLinePoints(seg)
			if err != nil {
				return nil, fmt.Errorf("chart series %s: %w", sr.label, err)
			}
			l.LineStyle = line.LineStyle
			s.GlyphStyle = marks.GlyphStyle
			p.Add(l, s)
		}
		p.Legend.Add(sr.label, line, marks)
	}
	return p, nil
}

// Render writes r as an image in the given format ("png", "svg", "pdf", ...).
func Render(w io.Writer, r grid.Result, format string) error {
	p, err := New(r)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// RenderPNG writes r as a PNG image.
func RenderPNG(w io.Writer, r grid.Result) error {
	return Render(w, r, "png")
}

// segments splits a series into runs of consecutive finite points.
func segments(steps []int, values []float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(steps[i]), Y: v})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
