package tooltip

import (
	"testing"

	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
)

func TestNearest(t *testing.T) {
	xs := []float64{0, 10, 20, 30}
	tests := []struct {
		x    float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{4, 0},
		{5, 0}, // tie goes left
		{6, 1},
		{10, 1},
		{24.9, 2},
		{29, 3},
		{100, 3},
	}
	for _, tt := range tests {
		if got := Nearest(xs, tt.x); got != tt.want {
			t.Errorf("Nearest(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
	if got := Nearest(nil, 3); got != -1 {
		t.Errorf("Nearest(nil) = %d, want -1", got)
	}
}

func TestBisector(t *testing.T) {
	x := scale.NewLinear(0, 3, 0, 300)
	b := Bisector{
		Xs:     []float64{0, 1, 2, 3},
		Invert: x.Invert,
		Anchor: func(i int) geom.Point { return geom.Point{X: x.Map(float64(i)), Y: 10} },
		Plot:   geom.Box{X0: 0, Y0: 0, X1: 300, Y1: 200},
	}

	h, ok := b.Locate(140, 50)
	if !ok || h.Index != 1 {
		t.Fatalf("Locate(140, 50) = %+v, %v; want index 1", h, ok)
	}
	if h.Anchor != (geom.Point{X: 100, Y: 10}) {
		t.Errorf("Anchor = %+v", h.Anchor)
	}

	if _, ok := b.Locate(140, 250); ok {
		t.Error("pointer below the plot area should miss")
	}
	if _, ok := (Bisector{}).Locate(1, 1); ok {
		t.Error("empty bisector should miss")
	}
}

func TestBandLocator(t *testing.T) {
	band := scale.NewBand([]string{"a", "b", "c"}, 0, 300, scale.WithPadding(0.4))
	l := BandLocator{
		Index:  band.Index,
		Anchor: func(i int) geom.Point { return geom.Point{X: band.At(i) + band.Bandwidth()/2} },
	}

	cx, _ := band.Center("c")
	h, ok := l.Locate(cx, 0)
	if !ok || h.Index != 2 {
		t.Fatalf("Locate(center of c) = %+v, %v", h, ok)
	}
	if _, ok := l.Locate(-10, 0); ok {
		t.Error("pointer left of every band should miss")
	}
}

func TestShapeLocator(t *testing.T) {
	shapes := []geom.Shape{
		geom.Rect{Mark: geom.Mark{Datum: geom.NoDatum}, X: 0, Y: 0, W: 100, H: 100},
		geom.Rect{Mark: geom.Mark{Datum: 0, Series: "north"}, X: 0, Y: 0, W: 10, H: 10},
		geom.Circle{Mark: geom.Mark{Datum: 1}, CX: 50, CY: 50, R: 5},
	}

	tests := []struct {
		name   string
		radius float64
		x, y   float64
		want   int
		hit    bool
	}{
		{"inside rect", 0, 5, 5, 0, true},
		{"inside circle", 0, 52, 50, 1, true},
		{"decorative only", 0, 80, 80, 0, false},
		{"near circle with radius", 10, 60, 50, 1, true},
		{"too far with radius", 3, 60, 50, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := ShapeLocator{Shapes: shapes, Radius: tt.radius}.Locate(tt.x, tt.y)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && h.Index != tt.want {
				t.Errorf("Index = %d, want %d", h.Index, tt.want)
			}
		})
	}

	h, _ := ShapeLocator{Shapes: shapes}.Locate(5, 5)
	if h.Series != "north" {
		t.Errorf("Series = %q, want north", h.Series)
	}
}

func TestChain(t *testing.T) {
	first := LocatorFunc(func(x, y float64) (Hit, bool) { return Hit{Index: 1}, x < 0 })
	second := LocatorFunc(func(float64, float64) (Hit, bool) { return Hit{Index: 2}, true })
	c := Chain{nil, first, second}

	if h, _ := c.Locate(-1, 0); h.Index != 1 {
		t.Errorf("Index = %d, want 1", h.Index)
	}
	if h, _ := c.Locate(1, 0); h.Index != 2 {
		t.Errorf("Index = %d, want 2", h.Index)
	}
	if _, ok := (Chain{None}).Locate(0, 0); ok {
		t.Error("None should never hit")
	}
}
