// Package geom defines the renderer-agnostic primitives chart layouts emit.
//
// Every primitive is a plain value in absolute chart coordinates (pixels,
// origin top-left, y down) and carries a [Mark] linking it back to the
// dataset row it represents. Primitives implement [Shape] so that tooltip
// locators can hit-test them without knowing the chart kind.
//
// Angles follow the convention 0 = 12 o'clock, increasing clockwise.
package geom

import (
	"math"
	"strconv"
)

// Point is a position in chart coordinates.
type Point struct {
	X, Y float64
}

// Box is an axis-aligned rectangle spanning [X0, X1] × [Y0, Y1].
type Box struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent.
func (b Box) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent.
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// Center returns the middle of the box.
func (b Box) Center() Point { return Point{(b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2} }

// Contains reports whether (x, y) lies inside b, edges included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Union returns the smallest box covering b and o.
func (b Box) Union(o Box) Box {
	return Box{
		X0: math.Min(b.X0, o.X0), Y0: math.Min(b.Y0, o.Y0),
		X1: math.Max(b.X1, o.X1), Y1: math.Max(b.Y1, o.Y1),
	}
}

// BoundsOf returns the bounding box of pts.
func BoundsOf(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{X0: pts[0].X, Y0: pts[0].Y, X1: pts[0].X, Y1: pts[0].Y}
	for _, p := range pts[1:] {
		b.X0 = math.Min(b.X0, p.X)
		b.Y0 = math.Min(b.Y0, p.Y)
		b.X1 = math.Max(b.X1, p.X)
		b.Y1 = math.Max(b.Y1, p.Y)
	}
	return b
}

// NoDatum marks decorative primitives that belong to no dataset row.
const NoDatum = -1

// Mark is the presentation and identity shared by all primitives.
type Mark struct {
	Datum       int     // dataset row index, or NoDatum
	Series      string  // series or group name
	Class       string  // extra CSS class
	Fill        string  // fill color; "" means none
	Stroke      string  // stroke color; "" means none
	StrokeWidth float64 // stroke width in pixels
	Opacity     float64 // 0 means fully opaque
}

// Shape is a hit-testable primitive.
type Shape interface {
	Bounds() Box
	Contains(x, y float64) bool
	Anchor() Point
	Meta() Mark
}

// F formats a coordinate with at most two decimals, the precision used by
// every emitted path.
func F(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	v = math.Round(v*100) / 100
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// pointInPolygon implements the even-odd ray casting rule.
func pointInPolygon(x, y float64, pts []Point) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		pi, pj := pts[i], pts[j]
		if (pi.Y > y) != (pj.Y > y) && x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			in = !in
		}
	}
	return in
}

// segmentDistance returns the distance from p to the segment ab.
func segmentDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}
