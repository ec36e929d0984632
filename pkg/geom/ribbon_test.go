package geom

import (
	"math"
	"strings"
	"testing"
)

func TestRibbon(t *testing.T) {
	rb := NewRibbon(Mark{Datum: 3}, 0, 0, 100, 0, math.Pi/4, math.Pi, math.Pi+math.Pi/4)

	d := rb.D()
	if !strings.HasPrefix(d, "M0,-100") || !strings.Contains(d, "Q0,0") || !strings.HasSuffix(d, "Z") {
		t.Errorf("unexpected ribbon path: %s", d)
	}
	if !rb.Contains(20, -90) {
		t.Error("point just inside the source arc should be contained")
	}
	if rb.Contains(-90, -20) {
		t.Error("point on the far side should not be contained")
	}
	if rb.Meta().Datum != 3 {
		t.Error("Meta should carry the datum")
	}
}

func TestLinkContains(t *testing.T) {
	l := Link{X0: 0, Y0: 10, X1: 100, Y1: 90, Width: 10}
	if !l.Contains(0, 14) {
		t.Error("point within the band at the source not contained")
	}
	if !l.Contains(50, 50) {
		t.Error("midpoint not contained")
	}
	if l.Contains(50, 80) {
		t.Error("point far from the band contained")
	}
	if a := l.Anchor(); math.Abs(a.X-50) > 1e-9 || math.Abs(a.Y-50) > 1e-9 {
		t.Errorf("Anchor = %v, want (50, 50)", a)
	}
	if l.D() != "M0,10C50,10,50,90,100,90" {
		t.Errorf("D = %s", l.D())
	}
}
