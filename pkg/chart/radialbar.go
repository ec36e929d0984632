package chart

import (
	"math"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

const (
	ringGap    = 4
	trackColor = "#94a3b8"
)

// RadialBar draws one concentric ring per row, outermost first. Each ring
// has a background track over [StartAngle, EndAngle] and a value arc from
// StartAngle proportional to value/Max.
type RadialBar struct {
	Common
	Data        data.Dataset
	Value       data.NumberFunc
	Label       data.StringFunc
	Max         float64 // default max of values
	StartAngle  float64 // degrees, clockwise from 12 o'clock
	EndAngle    float64 // degrees; default StartAngle + 360
	InnerRadius float64 // empty center as a fraction of the radius; default 0.2
}

func (rb *RadialBar) Kind() Kind { return KindRadialBar }

func (rb *RadialBar) MinSize() Size { return Size{Width: 50, Height: 10} }

// Build lays out the tracks and the value arcs.
func (rb *RadialBar) Build(size Size) (*Scene, error) {
	if err := requireNumber(KindRadialBar, "value", rb.Value); err != nil {
		return nil, err
	}
	plot := rb.margins(RadialMargins).Plot(size)
	s, done, err := begin(rb, size, plot)
	if done || len(rb.Data) == 0 {
		return s, err
	}
	s.Rows = rb.Data

	c := plot.Center()
	radius := math.Min(plot.Width(), plot.Height()) / 2
	n := len(rb.Data)
	fraction := math.Min(1, positive(rb.InnerRadius, 0.2))
	ringW := math.Max(0, (radius-radius*fraction-ringGap*float64(n-1))/float64(n))

	vals := rb.Data.Values(rb.Value)
	maxVal := rb.Max
	if maxVal <= 0 {
		maxVal = scale.Max(vals)
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	start, end := rb.angles()
	angle := scale.NewLinear(0, maxVal, start, end, scale.WithClamp())
	palette := rb.palette(scale.Radial)

	var bars []geom.Shape
	for i, v := range vals {
		outer := radius - float64(i)*(ringW+ringGap)
		inner := math.Max(0, outer-ringW)
		s.Shapes = append(s.Shapes, geom.Arc{
			Mark: geom.Mark{Datum: geom.NoDatum, Class: "track", Fill: trackColor, Opacity: 0.2},
			CX:   c.X, CY: c.Y, Inner: inner, Outer: outer, Start: start, End: end, Corner: 3,
		})
		a := angle.Map(nonNegative(v))
		if a == start {
			continue
		}
		bar := geom.Arc{
			Mark: geom.Mark{Datum: i, Fill: palette.At(i)},
			CX:   c.X, CY: c.Y, Inner: inner, Outer: outer, Start: start, End: a, Corner: 3,
		}
		if rb.Label != nil {
			bar.Series = rb.Label(rb.Data[i])
			s.Legend = append(s.Legend, LegendEntry{Label: bar.Series, Color: bar.Fill})
		}
		bars = append(bars, bar)
	}
	s.Shapes = append(s.Shapes, bars...)

	s.Locator = tooltip.ShapeLocator{Shapes: bars}
	s.Describe = func(h tooltip.Hit) []string {
		if h.Index < 0 || h.Index >= n {
			return nil
		}
		line := formatNumber(vals[h.Index]) + " / " + formatNumber(maxVal)
		if rb.Label == nil {
			return []string{line}
		}
		return []string{rb.Label(rb.Data[h.Index]), line}
	}
	return s, nil
}

func (rb *RadialBar) angles() (float64, float64) {
	start, end := rb.StartAngle, rb.EndAngle
	if end == start {
		end = start + 360
	}
	return start * math.Pi / 180, end * math.Pi / 180
}
