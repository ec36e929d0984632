package chart

import (
	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

const pointColor = "#a855f7"

// Scatter draws one point per row on two linear axes.
type Scatter struct {
	Common
	Data   data.Dataset
	X, Y   data.NumberFunc
	Radius float64 // default 6
	Color  string  // default #a855f7
}

func (sc *Scatter) Kind() Kind { return KindScatter }

// Build lays out one circle per row.
func (sc *Scatter) Build(size Size) (*Scene, error) {
	if err := requireNumber(KindScatter, "x", sc.X); err != nil {
		return nil, err
	}
	if err := requireNumber(KindScatter, "y", sc.Y); err != nil {
		return nil, err
	}
	plot := sc.margins(AxisMargins).Plot(size)
	s, done, err := begin(sc, size, plot)
	if done || len(sc.Data) == 0 {
		return s, err
	}
	s.Rows = sc.Data

	x, y := pointScales(sc.Data, sc.X, sc.Y, plot)
	color := sc.Color
	if color == "" {
		color = sc.palette(scale.Palette{pointColor}).At(0)
	}
	r := positive(sc.Radius, 6)
	for i, row := range sc.Data {
		s.Shapes = append(s.Shapes, geom.Circle{
			Mark: geom.Mark{Datum: i, Fill: color, Opacity: 0.8},
			CX:   x.Map(sc.X(row)), CY: y.Map(sc.Y(row)), R: r,
		})
	}
	pointAxes(s, &sc.Common, x, y, plot)
	s.Locator = tooltip.ShapeLocator{Shapes: s.Shapes}
	s.Describe = func(h tooltip.Hit) []string {
		if h.Index < 0 || h.Index >= len(sc.Data) {
			return nil
		}
		row := sc.Data[h.Index]
		return []string{"x: " + formatNumber(sc.X(row)), "y: " + formatNumber(sc.Y(row))}
	}
	return s, nil
}

// Bubble is a scatter chart whose third value is mapped to the radius.
type Bubble struct {
	Common
	Data      data.Dataset
	X, Y, Z   data.NumberFunc
	MinRadius float64 // default 4
	MaxRadius float64 // default 30
	Color     string  // single color; Colors cycles per row instead
}

func (b *Bubble) Kind() Kind { return KindBubble }

// Build lays out one circle per row with radius scaled linearly from the
// z extent onto [MinRadius, MaxRadius].
func (b *Bubble) Build(size Size) (*Scene, error) {
	for _, req := range []struct {
		name string
		f    data.NumberFunc
	}{{"x", b.X}, {"y", b.Y}, {"z", b.Z}} {
		if err := requireNumber(KindBubble, req.name, req.f); err != nil {
			return nil, err
		}
	}
	plot := b.margins(AxisMargins).Plot(size)
	s, done, err := begin(b, size, plot)
	if done || len(b.Data) == 0 {
		return s, err
	}
	s.Rows = b.Data

	x, y := pointScales(b.Data, b.X, b.Y, plot)
	z0, z1, _ := scale.Extent(b.Data.Values(b.Z))
	rMin := positive(b.MinRadius, 4)
	rMax := max(positive(b.MaxRadius, 30), rMin)
	z := scale.NewLinear(z0, z1, rMin, rMax)

	for i, row := range b.Data {
		color := b.Color
		switch {
		case len(b.Colors) > 0:
			color = b.Colors.At(i)
		case color == "":
			color = pointColor
		}
		s.Shapes = append(s.Shapes, geom.Circle{
			Mark: geom.Mark{Datum: i, Fill: color, Stroke: color, StrokeWidth: 1, Opacity: 0.6},
			CX:   x.Map(b.X(row)), CY: y.Map(b.Y(row)), R: z.Map(b.Z(row)),
		})
	}
	pointAxes(s, &b.Common, x, y, plot)
	s.Locator = tooltip.ShapeLocator{Shapes: s.Shapes}
	s.Describe = func(h tooltip.Hit) []string {
		if h.Index < 0 || h.Index >= len(b.Data) {
			return nil
		}
		row := b.Data[h.Index]
		return []string{
			"x: " + formatNumber(b.X(row)),
			"y: " + formatNumber(b.Y(row)),
			"z: " + formatNumber(b.Z(row)),
		}
	}
	return s, nil
}

// pointScales returns x and y scales over [0, max*1.1].
func pointScales(rows data.Dataset, xf, yf data.NumberFunc, plot geom.Box) (scale.Linear, scale.Linear) {
	x := scale.NewLinear(0, headroom(scale.Max(rows.Values(xf)), 1.1), plot.X0, plot.X1, scale.WithRound())
	y := scale.NewLinear(0, headroom(scale.Max(rows.Values(yf)), 1.1), plot.Y1, plot.Y0, scale.WithRound())
	return x, y
}

func pointAxes(s *Scene, c *Common, x, y scale.Linear, plot geom.Box) {
	if !c.HideGrid {
		s.Grid = gridRows(y, 5, plot)
	}
	if !c.HideXAxis {
		s.Axes = append(s.Axes, linearAxis(OrientBottom, x, 5, plot, c.XLabel))
	}
	if !c.HideYAxis {
		s.Axes = append(s.Axes, linearAxis(OrientLeft, y, 5, plot, c.YLabel))
	}
}
