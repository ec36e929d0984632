package geom

import (
	"fmt"
	"math"
	"strings"
)

// Ribbon connects two angular spans on a circle of radius R through the
// center, as drawn between chord groups.
type Ribbon struct {
	Mark
	CX, CY                 float64
	R                      float64
	SourceStart, SourceEnd float64
	TargetStart, TargetEnd float64
	outline                []Point
}

// NewRibbon builds a ribbon and precomputes its hit-test outline.
func NewRibbon(m Mark, cx, cy, r, s0, s1, t0, t1 float64) Ribbon {
	rb := Ribbon{Mark: m, CX: cx, CY: cy, R: r, SourceStart: s0, SourceEnd: s1, TargetStart: t0, TargetEnd: t1}
	rb.outline = rb.flatten()
	return rb
}

// D returns the SVG path data: source arc, quadratic through the center to
// the target arc, target arc, quadratic back.
func (rb Ribbon) D() string {
	c := Point{rb.CX, rb.CY}
	s0 := Polar(rb.CX, rb.CY, rb.R, rb.SourceStart)
	s1 := Polar(rb.CX, rb.CY, rb.R, rb.SourceEnd)
	t0 := Polar(rb.CX, rb.CY, rb.R, rb.TargetStart)
	t1 := Polar(rb.CX, rb.CY, rb.R, rb.TargetEnd)

	var sb strings.Builder
	fmt.Fprintf(&sb, "M%s", pt(s0))
	fmt.Fprintf(&sb, "A%s,%s 0 %d 1 %s", F(rb.R), F(rb.R), largeArc(rb.SourceEnd-rb.SourceStart), pt(s1))
	if rb.SourceStart != rb.TargetStart || rb.SourceEnd != rb.TargetEnd {
		fmt.Fprintf(&sb, "Q%s,%s", pt(c), pt(t0))
		fmt.Fprintf(&sb, "A%s,%s 0 %d 1 %s", F(rb.R), F(rb.R), largeArc(rb.TargetEnd-rb.TargetStart), pt(t1))
	}
	fmt.Fprintf(&sb, "Q%s,%sZ", pt(c), pt(s0))
	return sb.String()
}

func largeArc(span float64) int {
	if math.Abs(span) > math.Pi {
		return 1
	}
	return 0
}

const ribbonSteps = 16

func (rb Ribbon) flatten() []Point {
	const steps = ribbonSteps
	var pts []Point
	arc := func(a0, a1 float64) {
		for i := 0; i <= steps; i++ {
			pts = append(pts, Polar(rb.CX, rb.CY, rb.R, a0+(a1-a0)*float64(i)/steps))
		}
	}
	quad := func(from, to Point) {
		c := Point{rb.CX, rb.CY}
		for i := 1; i < steps; i++ {
			t := float64(i) / steps
			u := 1 - t
			pts = append(pts, Point{
				X: u*u*from.X + 2*u*t*c.X + t*t*to.X,
				Y: u*u*from.Y + 2*u*t*c.Y + t*t*to.Y,
			})
		}
	}
	arc(rb.SourceStart, rb.SourceEnd)
	quad(Polar(rb.CX, rb.CY, rb.R, rb.SourceEnd), Polar(rb.CX, rb.CY, rb.R, rb.TargetStart))
	arc(rb.TargetStart, rb.TargetEnd)
	quad(Polar(rb.CX, rb.CY, rb.R, rb.TargetEnd), Polar(rb.CX, rb.CY, rb.R, rb.SourceStart))
	return pts
}

// Outline returns the sampled hit-test outline.
func (rb Ribbon) Outline() []Point { return rb.outline }

func (rb Ribbon) Bounds() Box { return BoundsOf(rb.outline) }

func (rb Ribbon) Contains(x, y float64) bool { return pointInPolygon(x, y, rb.outline) }

// Anchor is the middle of the curve leading from the source arc to the
// target arc.
func (rb Ribbon) Anchor() Point {
	const mid = ribbonSteps + 1 + (ribbonSteps-1)/2
	if len(rb.outline) <= mid {
		return Point{rb.CX, rb.CY}
	}
	return rb.outline[mid]
}

func (rb Ribbon) Meta() Mark { return rb.Mark }

// Link is a horizontal sankey band from (X0, Y0) to (X1, Y1) drawn as a
// thick cubic stroke of the given Width.
type Link struct {
	Mark
	X0, Y0, X1, Y1 float64
	Width          float64
}

func (l Link) curve() Cubic {
	xi := (l.X0 + l.X1) / 2
	return Cubic{
		From: Point{l.X0, l.Y0},
		C1:   Point{xi, l.Y0},
		C2:   Point{xi, l.Y1},
		To:   Point{l.X1, l.Y1},
	}
}

// D returns the center line of the band.
func (l Link) D() string { return CurveD([]Cubic{l.curve()}) }

func (l Link) Bounds() Box {
	b := BoundsOf([]Point{{l.X0, l.Y0}, {l.X1, l.Y1}})
	b.Y0 -= l.Width / 2
	b.Y1 += l.Width / 2
	return b
}

// Contains reports whether (x, y) lies within half the band width of the
// sampled center line.
func (l Link) Contains(x, y float64) bool {
	pts := Flatten([]Cubic{l.curve()}, 24)
	tol := math.Max(1, l.Width/2)
	p := Point{x, y}
	for i := 1; i < len(pts); i++ {
		if segmentDistance(p, pts[i-1], pts[i]) <= tol {
			return true
		}
	}
	return false
}

func (l Link) Anchor() Point { return l.curve().At(0.5) }

func (l Link) Meta() Mark { return l.Mark }

var (
	_ Shape = Ribbon{}
	_ Shape = Link{}
)
