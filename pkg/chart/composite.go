package chart

import (
	"math"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// Composite draws bars against a left axis and a line against an
// independent right axis over one shared band x scale.
type Composite struct {
	Common
	Data      data.Dataset
	X         data.StringFunc
	Bar       Series
	Line      Series
	BarColor  string // default #3b82f6
	LineColor string // default #ef4444
}

func (c *Composite) Kind() Kind { return KindComposite }

// compositeMargins scales the margins down on small surfaces.
func compositeMargins(size Size) Margins {
	return Margins{
		Top:    math.Min(40, size.Height*0.15),
		Right:  math.Min(50, size.Width*0.1),
		Bottom: math.Min(50, size.Height*0.2),
		Left:   math.Min(50, size.Width*0.1),
	}
}

// Build lays out the bars, the line and both y axes. The chart is
// suppressed when the plot area is under 50px in either direction.
func (c *Composite) Build(size Size) (*Scene, error) {
	if err := requireString(KindComposite, "x", c.X); err != nil {
		return nil, err
	}
	if err := checkSeries(KindComposite, []Series{c.Bar, c.Line}); err != nil {
		return nil, err
	}
	plot := c.margins(compositeMargins(size)).Plot(size)
	s, done, err := begin(c, size, plot)
	if done {
		return s, err
	}
	if plot.Width() < 50 || plot.Height() < 50 {
		s.Suppressed = true
		return s, nil
	}
	if len(c.Data) == 0 {
		return s, nil
	}
	s.Rows = c.Data

	vals := values(c.Data, []Series{c.Bar, c.Line})
	bars := make([]float64, len(vals))
	line := make([]float64, len(vals))
	for i, row := range vals {
		bars[i], line[i] = row[0], row[1]
	}

	x := scale.NewBand(c.Data.Strings(c.X), plot.X0, plot.X1, scale.WithPadding(0.4))
	y1 := scale.NewLinear(0, headroom(scale.Max(bars), 1.1), plot.Y1, plot.Y0)
	y2 := scale.NewLinear(0, headroom(scale.Max(line), 1.1), plot.Y1, plot.Y0)
	barColor := c.BarColor
	if barColor == "" {
		barColor = "#3b82f6"
	}
	lineColor := c.LineColor
	if lineColor == "" {
		lineColor = "#ef4444"
	}

	pts := make([]geom.Point, len(c.Data))
	for i, r := range c.Data {
		x0, _ := x.Map(c.X(r))
		rect := geom.Rect{
			Mark: geom.Mark{Datum: i, Series: c.Bar.Name, Fill: barColor, Opacity: 0.8},
			X:    x0, W: x.Bandwidth(), RX: 4,
		}
		rect.Y, rect.H = barSpan(y1, 0, bars[i], bars[i])
		s.Shapes = append(s.Shapes, rect)
		pts[i] = geom.Point{X: x0 + x.Bandwidth()/2, Y: y2.Map(line[i])}
	}
	segs := geom.Segments(pts, geom.CurveMonotoneX)
	s.Shapes = append(s.Shapes, geom.Path{
		Mark:    geom.Mark{Datum: geom.NoDatum, Series: c.Line.Name, Class: "line", Stroke: lineColor, StrokeWidth: 3},
		D:       linePathD(pts, segs),
		Outline: geom.Flatten(segs, 8),
	})
	for i, p := range pts {
		s.Shapes = append(s.Shapes, geom.Circle{
			Mark: geom.Mark{Datum: i, Series: c.Line.Name, Fill: lineColor, Stroke: "#ffffff", StrokeWidth: 2},
			CX:   p.X, CY: p.Y, R: 4,
		})
	}

	if !c.HideGrid {
		s.Grid = gridRows(y1, 5, plot)
	}
	if !c.HideXAxis {
		s.Axes = append(s.Axes, bandAxis(OrientBottom, x, plot, c.XLabel))
	}
	if !c.HideYAxis {
		left := linearAxis(OrientLeft, y1, 5, plot, c.YLabel)
		left.Color = barColor
		right := linearAxis(OrientRight, y2, 5, plot, "")
		right.Color = lineColor
		s.Axes = append(s.Axes, left, right)
	}
	s.Legend = []LegendEntry{{Label: c.Bar.Name, Color: barColor}, {Label: c.Line.Name, Color: lineColor}}

	rows := bandRows(x, c.Data, c.X)
	s.Locator = tooltip.BandLocator{
		Index: func(px float64) int { return rowAt(x, rows, px) },
		Anchor: func(i int) geom.Point {
			x0, _ := x.Map(c.X(c.Data[i]))
			return geom.Point{X: x0 + x.Bandwidth()/2, Y: y1.Map(bars[i])}
		},
		Plot: plot,
	}
	s.Describe = func(h tooltip.Hit) []string {
		if h.Index < 0 || h.Index >= len(c.Data) {
			return nil
		}
		return []string{
			c.X(c.Data[h.Index]),
			c.Bar.Name + ": " + formatNumber(bars[h.Index]),
			c.Line.Name + ": " + formatNumber(line[h.Index]),
		}
	}
	return s, nil
}
