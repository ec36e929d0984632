package scale

import (
	"math"
	"time"
)

// Time is a linear scale over timestamps. Values are carried as unix
// milliseconds so that it can share axes and bisection with [Linear].
type Time struct {
	lin Linear
}

// NewTime builds a time scale mapping [t0, t1] onto [r0, r1].
func NewTime(t0, t1 time.Time, r0, r1 float64, opts ...LinearOption) Time {
	return Time{lin: NewLinear(millis(t0), millis(t1), r0, r1, opts...)}
}

// NewTimeMillis builds a time scale from a domain in unix milliseconds.
func NewTimeMillis(d0, d1, r0, r1 float64, opts ...LinearOption) Time {
	return Time{lin: NewLinear(d0, d1, r0, r1, opts...)}
}

// Map converts a timestamp to a range value.
func (s Time) Map(t time.Time) float64 { return s.lin.Map(millis(t)) }

// MapMillis converts unix milliseconds to a range value.
func (s Time) MapMillis(ms float64) float64 { return s.lin.Map(ms) }

// Invert converts a range value back to a timestamp.
func (s Time) Invert(px float64) time.Time {
	return time.UnixMilli(int64(math.Round(s.lin.Invert(px)))).UTC()
}

// Linear exposes the underlying millisecond scale.
func (s Time) Linear() Linear { return s.lin }

// timeIntervals are the candidate tick spacings, smallest first.
var timeIntervals = []time.Duration{
	time.Second,
	5 * time.Second,
	15 * time.Second,
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
	time.Hour,
	3 * time.Hour,
	6 * time.Hour,
	12 * time.Hour,
	24 * time.Hour,
	2 * 24 * time.Hour,
	7 * 24 * time.Hour,
	30 * 24 * time.Hour,
	91 * 24 * time.Hour,
	365 * 24 * time.Hour,
}

// TickInterval picks the spacing closest to span/count.
func TickInterval(span time.Duration, count int) time.Duration {
	if count < 1 {
		count = 1
	}
	target := span / time.Duration(count)
	best := timeIntervals[0]
	for _, iv := range timeIntervals {
		if math.Abs(float64(iv-target)) < math.Abs(float64(best-target)) {
			best = iv
		}
	}
	return best
}

// Ticks returns roughly count timestamps aligned to a calendar-friendly
// interval, together with that interval.
func (s Time) Ticks(count int) ([]time.Time, time.Duration) {
	d0, d1 := s.lin.Domain()
	if d1 < d0 {
		d0, d1 = d1, d0
	}
	start := time.UnixMilli(int64(d0)).UTC()
	stop := time.UnixMilli(int64(d1)).UTC()
	if !stop.After(start) {
		return []time.Time{start}, time.Second
	}

	iv := TickInterval(stop.Sub(start), count)
	var out []time.Time
	switch {
	case iv >= 365*24*time.Hour:
		t := time.Date(start.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		for ; !t.After(stop); t = t.AddDate(1, 0, 0) {
			if !t.Before(start) {
				out = append(out, t)
			}
		}
	case iv >= 30*24*time.Hour:
		months := int(iv / (30 * 24 * time.Hour))
		t := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		for ; !t.After(stop); t = t.AddDate(0, months, 0) {
			if !t.Before(start) {
				out = append(out, t)
			}
		}
	default:
		t := start.Truncate(iv)
		if t.Before(start) {
			t = t.Add(iv)
		}
		for ; !t.After(stop); t = t.Add(iv) {
			out = append(out, t)
		}
	}
	return out, iv
}

// TimeLayout returns a display layout suited to ticks spaced iv apart.
func TimeLayout(iv time.Duration) string {
	switch {
	case iv >= 365*24*time.Hour:
		return "2006"
	case iv >= 30*24*time.Hour:
		return "Jan 2006"
	case iv >= 24*time.Hour:
		return "Jan 02"
	case iv >= time.Minute:
		return "15:04"
	default:
		return "15:04:05"
	}
}

func millis(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixMilli())
}
