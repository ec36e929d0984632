package chart

import (
	"math"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// Pie partitions an angular range into slices proportional to value. A
// positive InnerRadius turns it into a donut.
//
// Zero-valued PadAngle, CornerRadius and ActiveOffset select their
// defaults; a negative value disables them.
type Pie struct {
	Common
	Data           data.Dataset
	Value          data.NumberFunc
	Label          data.StringFunc
	InnerRadius    float64 // pixels
	PadAngle       float64 // radians between slices; default 0.02
	CornerRadius   float64 // default 3
	ActiveOffset   float64 // outer radius growth of the hovered slice; default 5
	StartAngle     float64 // degrees, clockwise from 12 o'clock
	EndAngle       float64 // degrees; default StartAngle + 360
	CenterTitle    string  // donut center text
	CenterSubtitle string
}

func (p *Pie) Kind() Kind { return KindPie }

func (p *Pie) MinSize() Size { return Size{Width: 10, Height: 100} }

// Slice is the angular extent of one pie row, before padding is applied.
type Slice struct {
	Index      int
	Value      float64
	Start, End float64 // radians
	Pad        float64
}

// Slices computes the slice angles of vals over [start, end]: each slice
// spans value*k + pad, where k spreads the range left after padding over
// the total. Negative values count as zero.
func Slices(vals []float64, start, end, pad float64) []Slice {
	n := len(vals)
	if n == 0 {
		return nil
	}
	span := end - start
	pa := math.Min(math.Abs(span)/float64(n), math.Max(0, pad))
	if span < 0 {
		pa = -pa
	}
	total := 0.0
	for _, v := range vals {
		total += nonNegative(v)
	}
	k := 0.0
	if total > 0 {
		k = (span - float64(n)*pa) / total
	}
	out := make([]Slice, n)
	a := start
	for i, v := range vals {
		v = nonNegative(v)
		a1 := a + v*k + pa
		out[i] = Slice{Index: i, Value: v, Start: a, End: a1, Pad: pa}
		a = a1
	}
	return out
}

// Build lays out one arc per row in data order.
func (p *Pie) Build(size Size) (*Scene, error) {
	if err := requireNumber(KindPie, "value", p.Value); err != nil {
		return nil, err
	}
	plot := p.margins(RadialMargins).Plot(size)
	s, done, err := begin(p, size, plot)
	if done || len(p.Data) == 0 {
		return s, err
	}
	s.Rows = p.Data

	c := plot.Center()
	radius := math.Min(plot.Width(), plot.Height()) / 2
	inner := math.Min(math.Max(0, p.InnerRadius), radius)
	start, end := p.angles()
	vals := p.Data.Values(p.Value)
	palette := p.palette(scale.Slate)

	total := 0.0
	for _, sl := range Slices(vals, start, end, positive(p.PadAngle, 0.02)) {
		total += sl.Value
		a0, a1 := sl.Start+sl.Pad/2, sl.End-sl.Pad/2
		if a1-a0 <= 0 {
			continue
		}
		arc := geom.Arc{
			Mark:      geom.Mark{Datum: sl.Index, Fill: palette.At(sl.Index)},
			CX:        c.X,
			CY:        c.Y,
			Inner:     inner,
			Outer:     radius,
			Start:     a0,
			End:       a1,
			Corner:    positive(p.CornerRadius, 3),
			HoverGrow: positive(p.ActiveOffset, 5),
		}
		if p.Label != nil {
			arc.Series = p.Label(p.Data[sl.Index])
		}
		s.Shapes = append(s.Shapes, arc)
	}

	if inner > 0 && p.CenterTitle != "" {
		s.Labels = append(s.Labels, geom.Text{
			Mark: geom.Mark{Datum: geom.NoDatum, Class: "center-title"},
			X:    c.X, Y: c.Y, Content: p.CenterTitle, Align: "middle", Size: 24, Weight: "bold",
		})
		if p.CenterSubtitle != "" {
			s.Labels = append(s.Labels, geom.Text{
				Mark: geom.Mark{Datum: geom.NoDatum, Class: "center-subtitle"},
				X:    c.X, Y: c.Y + 20, Content: p.CenterSubtitle, Align: "middle", Size: 12,
			})
		}
	}
	if p.Label != nil {
		for i, r := range p.Data {
			s.Legend = append(s.Legend, LegendEntry{Label: p.Label(r), Color: palette.At(i)})
		}
	}

	s.Locator = tooltip.ShapeLocator{Shapes: s.Shapes}
	s.Describe = func(h tooltip.Hit) []string {
		if h.Index < 0 || h.Index >= len(vals) {
			return nil
		}
		v := nonNegative(vals[h.Index])
		lines := []string{formatNumber(v) + " (" + percent(v, total) + ")"}
		if p.Label != nil {
			lines = append([]string{p.Label(p.Data[h.Index])}, lines...)
		}
		return lines
	}
	return s, nil
}

func (p *Pie) angles() (float64, float64) {
	start, end := p.StartAngle, p.EndAngle
	if end == start {
		end = start + 360
	}
	return start * math.Pi / 180, end * math.Pi / 180
}
