package scale

import "testing"

func TestBandEqualWidths(t *testing.T) {
	b := NewBand([]string{"A", "B", "C"}, 0, 300, WithPadding(0.4))

	step := 300 / (3 - 0.4 + 0.8)
	if !approx(b.Step(), step) {
		t.Errorf("Step = %v, want %v", b.Step(), step)
	}
	if !approx(b.Bandwidth(), step*0.6) {
		t.Errorf("Bandwidth = %v, want %v", b.Bandwidth(), step*0.6)
	}

	a, _ := b.Map("A")
	c, _ := b.Map("C")
	if a < 0 || c+b.Bandwidth() > 300 {
		t.Errorf("bands overflow range: A=%v C=%v bw=%v", a, c, b.Bandwidth())
	}
	if !approx(a-0, 300-(c+b.Bandwidth())) {
		t.Errorf("bands not centered: left gap %v, right gap %v", a, 300-(c+b.Bandwidth()))
	}
}

func TestBandUnknownAndDuplicates(t *testing.T) {
	b := NewBand([]string{"x", "y", "x"}, 0, 100)
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
	if _, ok := b.Map("z"); ok {
		t.Error("unknown category should not map")
	}
}

func TestBandIndex(t *testing.T) {
	b := NewBand([]string{"a", "b", "c", "d"}, 0, 400)
	tests := []struct {
		px   float64
		want int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{250, 2},
		{399, 3},
		{400, -1},
		{-1, -1},
	}
	for _, tt := range tests {
		if got := b.Index(tt.px); got != tt.want {
			t.Errorf("Index(%v) = %d, want %d", tt.px, got, tt.want)
		}
	}
}

func TestBandReversed(t *testing.T) {
	b := NewBand([]string{"a", "b"}, 200, 0)
	a, _ := b.Map("a")
	bb, _ := b.Map("b")
	if a <= bb {
		t.Errorf("reversed band should place a after b: a=%v b=%v", a, bb)
	}
	if got := b.Index(a + 1); got != 0 {
		t.Errorf("Index inside a = %d, want 0", got)
	}
}

func TestBandEmpty(t *testing.T) {
	b := NewBand(nil, 0, 100)
	if b.Index(50) != -1 {
		t.Error("empty band should not index")
	}
}
