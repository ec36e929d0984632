package chart

import (
	"math"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// Funnel stacks one centered trapezoid per step. A step's top edge is
// proportional to its own value and its bottom edge to the next step's
// value; the last step is a rectangle.
type Funnel struct {
	Common
	Data  data.Dataset
	Step  data.StringFunc
	Value data.NumberFunc
}

func (f *Funnel) Kind() Kind { return KindFunnel }

func (f *Funnel) MinSize() Size { return Size{Width: 50, Height: 10} }

// Build lays out the trapezoids top to bottom in data order.
func (f *Funnel) Build(size Size) (*Scene, error) {
	if err := requireNumber(KindFunnel, "value", f.Value); err != nil {
		return nil, err
	}
	if err := requireString(KindFunnel, "step", f.Step); err != nil {
		return nil, err
	}
	plot := f.margins(RadialMargins).Plot(size)
	s, done, err := begin(f, size, plot)
	if done || len(f.Data) == 0 {
		return s, err
	}
	s.Rows = f.Data

	vals := f.Data.Values(f.Value)
	for i := range vals {
		vals[i] = nonNegative(vals[i])
	}
	n := len(vals)
	stepH := plot.Height() / float64(n)
	tops, bottoms := FunnelWidths(vals, plot.Width())
	palette := f.palette(scale.Funnel)

	for i, v := range vals {
		top, bottom := tops[i], bottoms[i]
		y := plot.Y0 + float64(i)*stepH
		tx := plot.X0 + (plot.Width()-top)/2
		bx := plot.X0 + (plot.Width()-bottom)/2
		s.Shapes = append(s.Shapes, geom.Polygon{
			Mark: geom.Mark{Datum: i, Series: f.Step(f.Data[i]), Fill: palette.At(i), Opacity: 0.8},
			Points: []geom.Point{
				{X: tx, Y: y},
				{X: tx + top, Y: y},
				{X: bx + bottom, Y: y + stepH},
				{X: bx, Y: y + stepH},
			},
		})
		if stepH >= 20 {
			s.Labels = append(s.Labels, geom.Text{
				Mark:    geom.Mark{Datum: geom.NoDatum, Class: "funnel-label", Fill: "#ffffff"},
				X:       plot.X0 + plot.Width()/2,
				Y:       y + stepH/2,
				Content: f.Step(f.Data[i]) + " (" + formatNumber(v) + ")",
				Align:   "middle",
				Size:    12,
				DY:      "0.35em",
			})
		}
	}

	first := vals[0]
	s.Locator = tooltip.ShapeLocator{Shapes: s.Shapes}
	s.Describe = func(h tooltip.Hit) []string {
		if h.Index < 0 || h.Index >= n {
			return nil
		}
		lines := []string{f.Step(f.Data[h.Index]), formatNumber(vals[h.Index])}
		if h.Index > 0 {
			lines = append(lines, percent(vals[h.Index], first)+" of first step")
		}
		return lines
	}
	return s, nil
}

// FunnelWidths returns the top and bottom edge widths of every step for a
// plot of the given width.
func FunnelWidths(vals []float64, width float64) (top, bottom []float64) {
	maxVal := 0.0
	for _, v := range vals {
		maxVal = math.Max(maxVal, nonNegative(v))
	}
	maxVal = headroom(maxVal, 1)
	top = make([]float64, len(vals))
	bottom = make([]float64, len(vals))
	for i, v := range vals {
		top[i] = nonNegative(v) / maxVal * width
	}
	for i := range vals {
		if i+1 < len(vals) {
			bottom[i] = top[i+1]
		} else {
			bottom[i] = top[i]
		}
	}
	return top, bottom
}
