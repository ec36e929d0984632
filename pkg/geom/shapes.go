package geom

import (
	"math"
	"strings"
)

// Rect is an axis-aligned rectangle with optional rounded corners.
type Rect struct {
	Mark
	X, Y, W, H float64
	RX         float64
}

func (r Rect) Bounds() Box { return Box{r.X, r.Y, r.X + r.W, r.Y + r.H} }

func (r Rect) Contains(x, y float64) bool { return r.Bounds().Contains(x, y) }

// Anchor is the top-center of the rectangle.
func (r Rect) Anchor() Point { return Point{r.X + r.W/2, r.Y} }

func (r Rect) Meta() Mark { return r.Mark }

// Circle is a filled disc.
type Circle struct {
	Mark
	CX, CY, R float64
}

func (c Circle) Bounds() Box { return Box{c.CX - c.R, c.CY - c.R, c.CX + c.R, c.CY + c.R} }

func (c Circle) Contains(x, y float64) bool {
	return math.Hypot(x-c.CX, y-c.CY) <= c.R
}

func (c Circle) Anchor() Point { return Point{c.CX, c.CY} }

func (c Circle) Meta() Mark { return c.Mark }

// Line is a straight segment, used for axes, grid lines and wicks.
type Line struct {
	Mark
	X1, Y1, X2, Y2 float64
	Dash           string
}

func (l Line) Bounds() Box {
	return BoundsOf([]Point{{l.X1, l.Y1}, {l.X2, l.Y2}})
}

// Contains reports whether (x, y) is within half a stroke of the segment.
func (l Line) Contains(x, y float64) bool {
	tol := math.Max(2, l.StrokeWidth/2)
	return segmentDistance(Point{x, y}, Point{l.X1, l.Y1}, Point{l.X2, l.Y2}) <= tol
}

func (l Line) Anchor() Point { return Point{(l.X1 + l.X2) / 2, math.Min(l.Y1, l.Y2)} }

func (l Line) Meta() Mark { return l.Mark }

// Polygon is a closed straight-edged outline. The last vertex connects back
// to the first.
type Polygon struct {
	Mark
	Points []Point
}

func (p Polygon) Bounds() Box { return BoundsOf(p.Points) }

func (p Polygon) Contains(x, y float64) bool {
	return len(p.Points) >= 3 && pointInPolygon(x, y, p.Points)
}

// Anchor is the top-center of the bounding box.
func (p Polygon) Anchor() Point {
	b := p.Bounds()
	return Point{(b.X0 + b.X1) / 2, b.Y0}
}

func (p Polygon) Meta() Mark { return p.Mark }

// D returns the SVG path data of the closed outline.
func (p Polygon) D() string {
	if len(p.Points) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, pt := range p.Points {
		if i == 0 {
			sb.WriteString("M")
		} else {
			sb.WriteString("L")
		}
		sb.WriteString(F(pt.X) + "," + F(pt.Y))
	}
	sb.WriteString("Z")
	return sb.String()
}

// Path is an arbitrary SVG path. Outline approximates the drawn shape for
// hit-testing and bounds; it is only used for containment when Closed.
type Path struct {
	Mark
	D       string
	Outline []Point
	Closed  bool
}

func (p Path) Bounds() Box { return BoundsOf(p.Outline) }

func (p Path) Contains(x, y float64) bool {
	return p.Closed && len(p.Outline) >= 3 && pointInPolygon(x, y, p.Outline)
}

func (p Path) Anchor() Point {
	b := p.Bounds()
	return Point{(b.X0 + b.X1) / 2, b.Y0}
}

func (p Path) Meta() Mark { return p.Mark }

// Text is a label. It never takes part in hit-testing.
type Text struct {
	Mark
	X, Y    float64
	Content string
	Align   string // start, middle or end
	Size    float64
	Weight  string
	Rotate  float64
	DY      string
}

func (t Text) Bounds() Box {
	w := float64(len(t.Content)) * t.Size * 0.6
	return Box{t.X - w/2, t.Y - t.Size, t.X + w/2, t.Y}
}

func (t Text) Contains(float64, float64) bool { return false }

func (t Text) Anchor() Point { return Point{t.X, t.Y} }

func (t Text) Meta() Mark { return t.Mark }

var (
	_ Shape = Rect{}
	_ Shape = Circle{}
	_ Shape = Line{}
	_ Shape = Polygon{}
	_ Shape = Path{}
	_ Shape = Text{}
)
