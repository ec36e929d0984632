package chart

import (
	"math"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// Radar maps each row to a spoke; spokes are 2π/n apart starting at 12
// o'clock and the value polygon closes back to its first vertex.
type Radar struct {
	Common
	Data   data.Dataset
	Angle  data.StringFunc // spoke label
	Radius data.NumberFunc // spoke value
	Levels int             // concentric grid levels; default 5
	Color  string          // polygon color; default #a855f7
}

func (r *Radar) Kind() Kind { return KindRadar }

// Build lays out the grid, the spokes and the value polygon.
func (r *Radar) Build(size Size) (*Scene, error) {
	if err := requireNumber(KindRadar, "radius", r.Radius); err != nil {
		return nil, err
	}
	if err := requireString(KindRadar, "angle", r.Angle); err != nil {
		return nil, err
	}
	plot := r.margins(RadarMargins).Plot(size)
	s, done, err := begin(r, size, plot)
	if done || len(r.Data) == 0 {
		return s, err
	}
	s.Rows = r.Data

	c := plot.Center()
	radius := math.Min(plot.Width(), plot.Height()) / 2
	vals := r.Data.Values(r.Radius)
	rs := scale.NewLinear(0, headroom(scale.Max(vals), 1.1), 0, radius)
	n := len(r.Data)
	step := geom.Tau / float64(n)
	levels := r.Levels
	if levels <= 0 {
		levels = 5
	}
	color := r.Color
	if color == "" {
		color = r.palette(scale.Palette{"#a855f7"}).At(0)
	}

	if !r.HideGrid {
		for lv := 1; lv <= levels; lv++ {
			lr := radius / float64(levels) * float64(lv)
			ring := make([]geom.Point, n)
			for i := range ring {
				ring[i] = geom.Polar(c.X, c.Y, lr, float64(i)*step)
			}
			s.Shapes = append(s.Shapes, geom.Polygon{
				Mark:   geom.Mark{Datum: geom.NoDatum, Class: "grid", Stroke: gridStroke, StrokeWidth: 1},
				Points: ring,
			})
		}
		for i := 0; i < n; i++ {
			end := geom.Polar(c.X, c.Y, radius, float64(i)*step)
			s.Grid = append(s.Grid, geom.Line{
				Mark: geom.Mark{Datum: geom.NoDatum, Class: "grid", Stroke: gridStroke, StrokeWidth: 1},
				X1:   c.X, Y1: c.Y, X2: end.X, Y2: end.Y,
			})
		}
	}
	if !r.HideXAxis {
		for i, row := range r.Data {
			p := geom.Polar(c.X, c.Y, radius+20, float64(i)*step)
			s.Labels = append(s.Labels, geom.Text{
				Mark: geom.Mark{Datum: geom.NoDatum, Class: "axis-label"},
				X:    p.X, Y: p.Y, Content: r.Angle(row), Align: "middle", Size: 11, DY: "0.33em",
			})
		}
	}

	pts := make([]geom.Point, n)
	for i, v := range vals {
		pts[i] = geom.Polar(c.X, c.Y, rs.Map(nonNegative(v)), float64(i)*step)
	}
	s.Shapes = append(s.Shapes, geom.Polygon{
		Mark:   geom.Mark{Datum: geom.NoDatum, Class: "radar", Fill: color, Stroke: color, StrokeWidth: 2, Opacity: 0.3},
		Points: pts,
	})
	var dots []geom.Shape
	for i, p := range pts {
		dots = append(dots, geom.Circle{
			Mark: geom.Mark{Datum: i, Series: r.Angle(r.Data[i]), Fill: color},
			CX:   p.X, CY: p.Y, R: 4,
		})
	}
	s.Shapes = append(s.Shapes, dots...)

	s.Locator = tooltip.ShapeLocator{Shapes: dots, Radius: 12}
	s.Describe = func(h tooltip.Hit) []string {
		if h.Index < 0 || h.Index >= n {
			return nil
		}
		return []string{r.Angle(r.Data[h.Index]), formatNumber(vals[h.Index])}
	}
	return s, nil
}
