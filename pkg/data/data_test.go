package data

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 3.5, 3.5},
		{"int", 7, 7},
		{"int64", int64(-2), -2},
		{"numeric string", " 12.5 ", 12.5},
		{"json number", json.Number("42"), 42},
		{"bool", true, 1},
		{"missing", nil, 0},
		{"non-numeric string", "abc", 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(-1), 0},
		{"nested", map[string]any{"a": 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToFloat(tt.in); got != tt.want {
				t.Errorf("ToFloat(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAccessorsOnMissingFields(t *testing.T) {
	r := Row{"name": "Jan"}
	if got := Number("sales")(r); got != 0 {
		t.Errorf("Number on missing field = %v, want 0", got)
	}
	if got := String("region")(r); got != "" {
		t.Errorf("String on missing field = %q, want empty", got)
	}
	if got := Time("date")(r); !got.IsZero() {
		t.Errorf("Time on missing field = %v, want zero", got)
	}
	if got := String("name")(r); got != "Jan" {
		t.Errorf("String(name) = %q, want Jan", got)
	}
}

func TestToTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
	}{
		{"date string", "2024-03-01"},
		{"rfc3339", "2024-03-01T00:00:00Z"},
		{"unix seconds", float64(want.Unix())},
		{"unix millis", float64(want.UnixMilli())},
		{"time value", want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToTime(tt.in); !got.Equal(want) {
				t.Errorf("ToTime(%v) = %v, want %v", tt.in, got, want)
			}
		})
	}

	if got := ToTime("not a date"); !got.IsZero() {
		t.Errorf("unparsable time = %v, want zero", got)
	}
}

func TestTimeMillis(t *testing.T) {
	r := Row{"date": "2024-01-01"}
	want := float64(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli())
	if got := TimeMillis("date")(r); got != want {
		t.Errorf("TimeMillis = %v, want %v", got, want)
	}
	if got := TimeMillis("missing")(r); got != 0 {
		t.Errorf("TimeMillis(missing) = %v, want 0", got)
	}
}

func TestDistinct(t *testing.T) {
	d := Dataset{{"c": "b"}, {"c": "a"}, {"c": "b"}, {"c": "c"}}
	got := d.Distinct(String("c"))
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Distinct = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Distinct[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSortedByDoesNotMutate(t *testing.T) {
	d := Dataset{{"x": 3.0}, {"x": 1.0}, {"x": 2.0}}
	sorted := d.SortedBy(Number("x"))

	if d[0]["x"] != 3.0 {
		t.Error("SortedBy mutated the input")
	}
	if !sorted.IsSortedBy(Number("x")) {
		t.Errorf("SortedBy result not sorted: %v", sorted)
	}
	if d.IsSortedBy(Number("x")) {
		t.Error("IsSortedBy should be false for unsorted input")
	}
}

func TestKeys(t *testing.T) {
	d := Dataset{{"b": 1, "a": 2}, {"c": 3}}
	got := d.Keys()
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("Keys = %v", got)
	}
}

func TestClone(t *testing.T) {
	d := Dataset{{"v": 1.0}}
	c := d.Clone()
	c[0]["v"] = 2.0
	if d[0]["v"] != 1.0 {
		t.Error("Clone shares row maps with the original")
	}
	if Dataset(nil).Clone() != nil {
		t.Error("Clone(nil) should be nil")
	}
}
