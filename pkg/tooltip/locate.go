// Package tooltip resolves pointer positions to dataset rows and tracks the
// hover state of a chart.
//
// A [Locator] answers "which row is under (x, y)?". Axis-aligned charts use
// a [Bisector] over their sorted x values or a [BandLocator] over category
// bands; every other chart hit-tests its geometry with a [ShapeLocator].
// The [Controller] turns pointer events into the idle/hovering state
// machine that drives tooltip display.
package tooltip

import (
	"math"
	"sort"

	"github.com/matzehuels/waffle/pkg/geom"
)

// Hit is the result of locating a pointer position.
type Hit struct {
	Index  int        // dataset row index
	Anchor geom.Point // where the tooltip attaches
	Series string     // series or group of the hit primitive, if any
}

// Locator maps a pointer position to a dataset row.
type Locator interface {
	Locate(x, y float64) (Hit, bool)
}

// LocatorFunc adapts a function to [Locator].
type LocatorFunc func(x, y float64) (Hit, bool)

// Locate implements [Locator].
func (f LocatorFunc) Locate(x, y float64) (Hit, bool) { return f(x, y) }

// None never locates anything. Empty charts use it.
var None Locator = LocatorFunc(func(float64, float64) (Hit, bool) { return Hit{}, false })

// Nearest returns the index of the value in xs (ascending) closest to x.
// Of the two values bracketing x the closer wins; an exact tie resolves to
// the left-hand value. Returns -1 for an empty slice.
func Nearest(xs []float64, x float64) int {
	n := len(xs)
	if n == 0 {
		return -1
	}
	i := sort.SearchFloat64s(xs, x)
	if i <= 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	if x-xs[i-1] > xs[i]-x {
		return i
	}
	return i - 1
}

// Bisector locates the row whose x value is nearest to the pointer's
// inverted x coordinate. Xs must be ascending; callers pass data that is
// already sorted by x.
type Bisector struct {
	Xs     []float64                // data-space x per row
	Invert func(px float64) float64 // pixel to data space
	Anchor func(i int) geom.Point   // tooltip anchor per row
	Plot   geom.Box                 // pointer must be inside when non-empty
}

// Locate implements [Locator].
func (b Bisector) Locate(x, y float64) (Hit, bool) {
	if len(b.Xs) == 0 || b.Invert == nil {
		return Hit{}, false
	}
	if b.Plot.Width() > 0 && !b.Plot.Contains(x, y) {
		return Hit{}, false
	}
	x0 := b.Invert(x)
	if math.IsNaN(x0) {
		return Hit{}, false
	}
	i := Nearest(b.Xs, x0)
	h := Hit{Index: i}
	if b.Anchor != nil {
		h.Anchor = b.Anchor(i)
	}
	return h, true
}

// BandLocator maps the pointer's x coordinate to a category band.
type BandLocator struct {
	Index  func(px float64) int // band index at px, or -1
	Anchor func(i int) geom.Point
	Plot   geom.Box
}

// Locate implements [Locator].
func (b BandLocator) Locate(x, y float64) (Hit, bool) {
	if b.Index == nil {
		return Hit{}, false
	}
	if b.Plot.Width() > 0 && !b.Plot.Contains(x, y) {
		return Hit{}, false
	}
	i := b.Index(x)
	if i < 0 {
		return Hit{}, false
	}
	h := Hit{Index: i}
	if b.Anchor != nil {
		h.Anchor = b.Anchor(i)
	}
	return h, true
}

// ShapeLocator hit-tests primitives in render order; the first primitive
// containing the pointer wins. Decorative primitives (no datum) are skipped.
// With a positive Radius, a pointer outside every primitive still hits the
// primitive whose anchor is nearest, if that anchor is within Radius.
type ShapeLocator struct {
	Shapes []geom.Shape
	Radius float64
}

// Locate implements [Locator].
func (s ShapeLocator) Locate(x, y float64) (Hit, bool) {
	for _, sh := range s.Shapes {
		m := sh.Meta()
		if m.Datum < 0 {
			continue
		}
		if sh.Contains(x, y) {
			return Hit{Index: m.Datum, Anchor: sh.Anchor(), Series: m.Series}, true
		}
	}
	if s.Radius <= 0 {
		return Hit{}, false
	}

	best, bestDist := -1, math.Inf(1)
	for i, sh := range s.Shapes {
		if sh.Meta().Datum < 0 {
			continue
		}
		a := sh.Anchor()
		if d := math.Hypot(a.X-x, a.Y-y); d <= s.Radius && d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Hit{}, false
	}
	sh := s.Shapes[best]
	return Hit{Index: sh.Meta().Datum, Anchor: sh.Anchor(), Series: sh.Meta().Series}, true
}

// Chain tries each locator in turn.
type Chain []Locator

// Locate implements [Locator].
func (c Chain) Locate(x, y float64) (Hit, bool) {
	for _, l := range c {
		if l == nil {
			continue
		}
		if h, ok := l.Locate(x, y); ok {
			return h, true
		}
	}
	return Hit{}, false
}
