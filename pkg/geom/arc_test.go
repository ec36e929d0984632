package geom

import (
	"math"
	"strings"
	"testing"
)

func TestPolarConvention(t *testing.T) {
	tests := []struct {
		angle float64
		want  Point
	}{
		{0, Point{0, -10}},
		{math.Pi / 2, Point{10, 0}},
		{math.Pi, Point{0, 10}},
		{3 * math.Pi / 2, Point{-10, 0}},
	}
	for _, tt := range tests {
		got := Polar(0, 0, 10, tt.angle)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("Polar(%v) = %v, want %v", tt.angle, got, tt.want)
		}
		if a := Angle(0, 0, got.X, got.Y); math.Abs(a-tt.angle) > 1e-9 {
			t.Errorf("Angle round trip %v -> %v", tt.angle, a)
		}
	}
}

func TestArcContains(t *testing.T) {
	quarter := Arc{CX: 0, CY: 0, Inner: 10, Outer: 50, Start: 0, End: math.Pi / 2}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 20, -20, true},
		{"inside hole", 2, -2, false},
		{"beyond outer", 40, -40, false},
		{"other quadrant", -20, -20, false},
		{"lower right", 20, 20, false},
	}
	for _, tt := range tests {
		if got := quarter.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: Contains(%v, %v) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}

	wrap := Arc{Outer: 50, Start: -math.Pi / 4, End: math.Pi / 4}
	if !wrap.Contains(-5, -30) {
		t.Error("arc spanning 12 o'clock should contain points left of up")
	}
	full := Arc{Outer: 50, Start: 0, End: Tau}
	if !full.Contains(-30, 10) {
		t.Error("full circle should contain everything within its radius")
	}
}

func TestArcCentroid(t *testing.T) {
	a := Arc{Inner: 0, Outer: 100, Start: 0, End: math.Pi}
	c := a.Centroid()
	if math.Abs(c.X-50) > 1e-9 || math.Abs(c.Y) > 1e-9 {
		t.Errorf("Centroid = %v, want (50, 0)", c)
	}
}

func TestArcPath(t *testing.T) {
	plain := ArcPath(Arc{CX: 100, CY: 100, Outer: 50, Start: 0, End: math.Pi / 2})
	want := "M100,50A50,50 0 0 1 150,100L100,100Z"
	if plain != want {
		t.Errorf("ArcPath = %s, want %s", plain, want)
	}

	donut := ArcPath(Arc{CX: 0, CY: 0, Inner: 20, Outer: 50, Start: 0, End: 3 * math.Pi / 2})
	if !strings.Contains(donut, "0 1 1") || !strings.Contains(donut, "0 1 0") {
		t.Errorf("large donut arc should use large-arc flags: %s", donut)
	}

	rounded := ArcPath(Arc{Outer: 50, Inner: 20, Start: 0, End: math.Pi / 2, Corner: 3})
	if strings.Count(rounded, "A3,3") != 4 {
		t.Errorf("rounded arc should have four corner arcs: %s", rounded)
	}

	tiny := ArcPath(Arc{Outer: 50, Start: 0, End: 0.01, Corner: 10})
	if strings.Contains(tiny, "A10,10") {
		t.Errorf("corners wider than the arc should be dropped: %s", tiny)
	}

	if ArcPath(Arc{Outer: 50, Start: 1, End: 1}) != "" {
		t.Error("zero-span arc should render nothing")
	}

	ring := ArcPath(Arc{Outer: 50, Inner: 30, Start: 0, End: Tau})
	if strings.Count(ring, "Z") != 2 {
		t.Errorf("full ring should have two subpaths: %s", ring)
	}
}

func TestArcGrown(t *testing.T) {
	a := Arc{Outer: 80, HoverGrow: 5}
	if a.Grown().Outer != 85 || a.Outer != 80 {
		t.Error("Grown should return an enlarged copy")
	}
}
