package scale

import (
	"testing"
	"time"
)

func TestTimeMapInvert(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	s := NewTime(t0, t1, 0, 1000)

	if got := s.Map(t0); got != 0 {
		t.Errorf("Map(t0) = %v", got)
	}
	if got := s.Map(t1); got != 1000 {
		t.Errorf("Map(t1) = %v", got)
	}
	mid := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	if got := s.Invert(500); !got.Equal(mid) {
		t.Errorf("Invert(500) = %v, want %v", got, mid)
	}
}

func TestTimeTicks(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	ticks, iv := NewTime(t0, t1, 0, 1000).Ticks(5)

	if iv != 2*24*time.Hour {
		t.Errorf("interval = %v, want 48h", iv)
	}
	if len(ticks) == 0 || ticks[0].Before(t0) || ticks[len(ticks)-1].After(t1) {
		t.Errorf("ticks outside domain: %v", ticks)
	}
	if TimeLayout(iv) != "Jan 02" {
		t.Errorf("layout = %q", TimeLayout(iv))
	}
}

func TestTimeTicksMonthly(t *testing.T) {
	t0 := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC)
	ticks, _ := NewTime(t0, t1, 0, 1000).Ticks(10)
	for _, tk := range ticks {
		if tk.Day() != 1 {
			t.Errorf("monthly tick not on the first: %v", tk)
		}
	}
}
