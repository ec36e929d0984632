package scale

import "testing"

func TestPaletteAt(t *testing.T) {
	p := Palette{"red", "green", "blue"}
	tests := []struct {
		i    int
		want string
	}{
		{0, "red"}, {2, "blue"}, {3, "red"}, {7, "green"}, {-1, "blue"},
	}
	for _, tt := range tests {
		if got := p.At(tt.i); got != tt.want {
			t.Errorf("At(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
	if got := (Palette{}).At(3); got != "" {
		t.Errorf("empty palette At = %q", got)
	}
	if got := Palette(nil).Or(Vivid).At(0); got != Vivid[0] {
		t.Errorf("Or fallback = %q", got)
	}
}

func TestOrdinalCycles(t *testing.T) {
	o := NewOrdinal([]string{"a", "b", "c"}, []string{"#1", "#2"})
	if got := o.Map("a"); got != "#1" {
		t.Errorf("Map(a) = %q", got)
	}
	if got := o.Map("c"); got != "#1" {
		t.Errorf("Map(c) = %q, want cycling back to #1", got)
	}
	if _, ok := o.Lookup("zzz"); ok {
		t.Error("Lookup of unknown key should fail")
	}
	if got := o.Map("zzz"); got != "#2" {
		t.Errorf("Map(unknown) = %q, want #2", got)
	}
}
