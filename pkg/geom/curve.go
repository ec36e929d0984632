package geom

import (
	"math"
	"strings"
)

// Cubic is one cubic Bézier segment of a curve.
type Cubic struct {
	From, C1, C2, To Point
}

// Reverse returns the same segment traversed backwards.
func (c Cubic) Reverse() Cubic {
	return Cubic{From: c.To, C1: c.C2, C2: c.C1, To: c.From}
}

// At evaluates the segment at t in [0, 1].
func (c Cubic) At(t float64) Point {
	u := 1 - t
	a, b, cc, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*c.From.X + b*c.C1.X + cc*c.C2.X + d*c.To.X,
		Y: a*c.From.Y + b*c.C1.Y + cc*c.C2.Y + d*c.To.Y,
	}
}

// Curve selects how consecutive points are joined.
type Curve string

const (
	CurveLinear    Curve = "linear"
	CurveMonotoneX Curve = "monotone"
)

// Segments joins pts using the given curve.
func Segments(pts []Point, curve Curve) []Cubic {
	if curve == CurveLinear {
		return LinearSegments(pts)
	}
	return MonotoneX(pts)
}

// LinearSegments joins consecutive points with straight segments.
func LinearSegments(pts []Point) []Cubic {
	if len(pts) < 2 {
		return nil
	}
	out := make([]Cubic, len(pts)-1)
	for i := range out {
		a, b := pts[i], pts[i+1]
		out[i] = Cubic{From: a, C1: a, C2: b, To: b}
	}
	return out
}

// MonotoneX interpolates pts (sorted by x) with a cubic spline that
// preserves monotonicity in y: between two points the curve never leaves
// the vertical interval they span.
func MonotoneX(pts []Point) []Cubic {
	n := len(pts)
	if n < 2 {
		return nil
	}
	if n == 2 {
		return LinearSegments(pts)
	}

	m := make([]float64, n)
	for i := 1; i < n-1; i++ {
		m[i] = slope3(pts[i-1], pts[i], pts[i+1])
	}
	m[0] = slope2(pts[0], pts[1], m[1])
	m[n-1] = slope2(pts[n-2], pts[n-1], m[n-2])

	out := make([]Cubic, n-1)
	for i := range out {
		a, b := pts[i], pts[i+1]
		dx := (b.X - a.X) / 3
		out[i] = Cubic{
			From: a,
			C1:   Point{a.X + dx, a.Y + dx*m[i]},
			C2:   Point{b.X - dx, b.Y - dx*m[i+1]},
			To:   b,
		}
	}
	return out
}

func sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// slope3 is the Steffen tangent at b.
func slope3(a, b, c Point) float64 {
	h0, h1 := b.X-a.X, c.X-b.X
	var s0, s1 float64
	if h0 != 0 {
		s0 = (b.Y - a.Y) / h0
	}
	if h1 != 0 {
		s1 = (c.Y - b.Y) / h1
	}
	var p float64
	if h0+h1 != 0 {
		p = (s0*h1 + s1*h0) / (h0 + h1)
	}
	v := (sign(s0) + sign(s1)) * math.Min(math.Min(math.Abs(s0), math.Abs(s1)), 0.5*math.Abs(p))
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// slope2 derives an end tangent from the neighbouring tangent t.
func slope2(a, b Point, t float64) float64 {
	h := b.X - a.X
	if h == 0 {
		return t
	}
	return (3*(b.Y-a.Y)/h - t) / 2
}

// CurveD renders connected segments as SVG path data starting with a move.
func CurveD(segs []Cubic) string {
	if len(segs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("M" + pt(segs[0].From))
	appendSegments(&sb, segs)
	return sb.String()
}

// PointD renders a single point as a zero-length path, so that a
// one-element series is still visible with round line caps.
func PointD(p Point) string {
	return "M" + pt(p) + "Z"
}

// AreaD closes the region between a top curve and a base curve. Both are
// given left to right; the base is traversed backwards.
func AreaD(top, base []Cubic) string {
	if len(top) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("M" + pt(top[0].From))
	appendSegments(&sb, top)
	if len(base) == 0 {
		sb.WriteString("Z")
		return sb.String()
	}
	sb.WriteString("L" + pt(base[len(base)-1].To))
	rev := make([]Cubic, len(base))
	for i, c := range base {
		rev[len(base)-1-i] = c.Reverse()
	}
	appendSegments(&sb, rev)
	sb.WriteString("Z")
	return sb.String()
}

// Flatten samples segments into a polyline for hit-testing.
func Flatten(segs []Cubic, steps int) []Point {
	if len(segs) == 0 {
		return nil
	}
	if steps < 1 {
		steps = 1
	}
	out := []Point{segs[0].From}
	for _, s := range segs {
		for i := 1; i <= steps; i++ {
			out = append(out, s.At(float64(i)/float64(steps)))
		}
	}
	return out
}

func appendSegments(sb *strings.Builder, segs []Cubic) {
	for _, s := range segs {
		if s.C1 == s.From && s.C2 == s.To {
			sb.WriteString("L" + pt(s.To))
			continue
		}
		sb.WriteString("C" + pt(s.C1) + "," + pt(s.C2) + "," + pt(s.To))
	}
}

func pt(p Point) string { return F(p.X) + "," + F(p.Y) }
