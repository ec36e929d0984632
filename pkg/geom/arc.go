package geom

import (
	"fmt"
	"math"
	"strings"
)

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// Polar returns the point at radius r and angle a around (cx, cy), with
// a = 0 pointing up and angles increasing clockwise.
func Polar(cx, cy, r, a float64) Point {
	return Point{cx + r*math.Sin(a), cy - r*math.Cos(a)}
}

// Angle returns the clockwise-from-up angle of (x, y) around (cx, cy),
// normalised to [0, 2π).
func Angle(cx, cy, x, y float64) float64 {
	a := math.Atan2(x-cx, cy-y)
	if a < 0 {
		a += Tau
	}
	return a
}

// Arc is an annular sector: a pie slice, donut segment, radial bar or
// chord group.
type Arc struct {
	Mark
	CX, CY       float64
	Inner, Outer float64
	Start, End   float64 // radians, clockwise from 12 o'clock
	Corner       float64 // corner radius
	HoverGrow    float64 // outer radius added while hovered
}

// Span returns the angular extent of the arc.
func (a Arc) Span() float64 { return math.Abs(a.End - a.Start) }

// Bounds samples the outline; arcs are small enough that 32 steps suffice.
func (a Arc) Bounds() Box {
	const steps = 32
	pts := make([]Point, 0, 2*(steps+1))
	for i := 0; i <= steps; i++ {
		t := a.Start + (a.End-a.Start)*float64(i)/steps
		pts = append(pts, Polar(a.CX, a.CY, a.Outer, t), Polar(a.CX, a.CY, a.Inner, t))
	}
	return BoundsOf(pts)
}

// Contains reports whether (x, y) lies within the radii and angular span.
func (a Arc) Contains(x, y float64) bool {
	r := math.Hypot(x-a.CX, y-a.CY)
	if r < a.Inner || r > a.Outer {
		return false
	}
	span := a.End - a.Start
	if span >= Tau {
		return true
	}
	if span <= 0 {
		return false
	}
	d := math.Mod(Angle(a.CX, a.CY, x, y)-a.Start, Tau)
	if d < 0 {
		d += Tau
	}
	return d <= span
}

// Centroid returns the midpoint of the mid angle and mid radius.
func (a Arc) Centroid() Point {
	return Polar(a.CX, a.CY, (a.Inner+a.Outer)/2, (a.Start+a.End)/2)
}

// Anchor is the centroid.
func (a Arc) Anchor() Point { return a.Centroid() }

func (a Arc) Meta() Mark { return a.Mark }

// Grown returns a copy with the outer radius extended by HoverGrow.
func (a Arc) Grown() Arc {
	a.Outer += a.HoverGrow
	return a
}

// D returns the SVG path data of the arc.
func (a Arc) D() string { return ArcPath(a) }

// ArcPath renders an annular sector as SVG path data. Corners are rounded
// with radius a.Corner, limited by the ring thickness and the arc length.
func ArcPath(a Arc) string {
	start, end := a.Start, a.End
	if end < start {
		start, end = end, start
	}
	span := end - start
	outer := math.Max(0, a.Outer)
	inner := math.Max(0, math.Min(a.Inner, outer))
	if outer == 0 || span <= 0 {
		return ""
	}
	if span >= Tau-1e-9 {
		return ringPath(a.CX, a.CY, inner, outer)
	}

	cr := math.Min(math.Max(0, a.Corner), (outer-inner)/2)
	if cr > 0 {
		// The corner circles must fit inside the sector on both edges.
		do := math.Asin(math.Min(1, cr/(outer-cr)))
		if 2*do > span {
			cr = 0
		}
		if inner > 0 && cr > 0 {
			di := math.Asin(math.Min(1, cr/(inner+cr)))
			if 2*di > span {
				cr = 0
			}
		}
	}

	large := 0
	if span > math.Pi {
		large = 1
	}
	var sb strings.Builder
	p := func(pt Point) string { return F(pt.X) + "," + F(pt.Y) }
	cx, cy := a.CX, a.CY

	if cr == 0 {
		fmt.Fprintf(&sb, "M%s", p(Polar(cx, cy, outer, start)))
		fmt.Fprintf(&sb, "A%s,%s 0 %d 1 %s", F(outer), F(outer), large, p(Polar(cx, cy, outer, end)))
		if inner > 0 {
			fmt.Fprintf(&sb, "L%s", p(Polar(cx, cy, inner, end)))
			fmt.Fprintf(&sb, "A%s,%s 0 %d 0 %s", F(inner), F(inner), large, p(Polar(cx, cy, inner, start)))
		} else {
			fmt.Fprintf(&sb, "L%s", p(Point{cx, cy}))
		}
		sb.WriteString("Z")
		return sb.String()
	}

	rco := outer - cr
	do := math.Asin(cr / rco)
	footO := math.Sqrt(rco*rco - cr*cr)
	corner := func(to Point) {
		fmt.Fprintf(&sb, "A%s,%s 0 0 1 %s", F(cr), F(cr), p(to))
	}

	fmt.Fprintf(&sb, "M%s", p(Polar(cx, cy, footO, start)))
	corner(Polar(cx, cy, outer, start+do))
	fmt.Fprintf(&sb, "A%s,%s 0 %d 1 %s", F(outer), F(outer), large, p(Polar(cx, cy, outer, end-do)))
	corner(Polar(cx, cy, footO, end))

	if inner > 0 {
		rci := inner + cr
		di := math.Asin(cr / rci)
		footI := math.Sqrt(rci*rci - cr*cr)
		fmt.Fprintf(&sb, "L%s", p(Polar(cx, cy, footI, end)))
		corner(Polar(cx, cy, inner, end-di))
		fmt.Fprintf(&sb, "A%s,%s 0 %d 0 %s", F(inner), F(inner), large, p(Polar(cx, cy, inner, start+di)))
		corner(Polar(cx, cy, footI, start))
	} else {
		fmt.Fprintf(&sb, "L%s", p(Point{cx, cy}))
	}
	sb.WriteString("Z")
	return sb.String()
}

// ringPath draws a full annulus (or disc) as two half circles per radius.
func ringPath(cx, cy, inner, outer float64) string {
	var sb strings.Builder
	top := Polar(cx, cy, outer, 0)
	bottom := Polar(cx, cy, outer, math.Pi)
	fmt.Fprintf(&sb, "M%s,%sA%s,%s 0 1 1 %s,%sA%s,%s 0 1 1 %s,%sZ",
		F(top.X), F(top.Y), F(outer), F(outer), F(bottom.X), F(bottom.Y),
		F(outer), F(outer), F(top.X), F(top.Y))
	if inner > 0 {
		top = Polar(cx, cy, inner, 0)
		bottom = Polar(cx, cy, inner, math.Pi)
		fmt.Fprintf(&sb, "M%s,%sA%s,%s 0 1 0 %s,%sA%s,%s 0 1 0 %s,%sZ",
			F(top.X), F(top.Y), F(inner), F(inner), F(bottom.X), F(bottom.Y),
			F(inner), F(inner), F(top.X), F(top.Y))
	}
	return sb.String()
}

var _ Shape = Arc{}
