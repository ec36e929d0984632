package scale

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// TickIncrement returns the tick spacing for roughly count ticks over
// [start, stop]. A positive result is the step itself; a negative result -k
// means a step of 1/k, which keeps small steps exact.
func TickIncrement(start, stop float64, count int) float64 {
	if count < 1 {
		count = 1
	}
	step := (stop - start) / float64(count)
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0
	}
	power := math.Floor(math.Log10(step))
	ratio := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case ratio >= e10:
		factor = 10
	case ratio >= e5:
		factor = 5
	case ratio >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// TickStep returns the absolute tick spacing for [start, stop].
func TickStep(start, stop float64, count int) float64 {
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	inc := TickIncrement(start, stop, count)
	if inc < 0 {
		inc = 1 / -inc
	}
	return inc
}

// Ticks returns roughly count evenly spaced, human-friendly values within
// [start, stop], inclusive. The result is descending when stop < start.
func Ticks(start, stop float64, count int) []float64 {
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	inc := TickIncrement(start, stop, count)
	if inc == 0 {
		return nil
	}

	var out []float64
	if inc > 0 {
		i0, i1 := math.Ceil(start/inc), math.Floor(stop/inc)
		for i := i0; i <= i1; i++ {
			out = append(out, i*inc)
		}
	} else {
		inc = -inc
		i0, i1 := math.Ceil(start*inc), math.Floor(stop*inc)
		for i := i0; i <= i1; i++ {
			out = append(out, i/inc)
		}
	}

	if reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Nice extends [d0, d1] outward to tick-aligned bounds. Reversed domains
// stay reversed; degenerate domains are returned unchanged.
func Nice(d0, d1 float64, count int) (float64, float64) {
	if d0 == d1 {
		return d0, d1
	}
	reverse := d1 < d0
	start, stop := d0, d1
	if reverse {
		start, stop = stop, start
	}

	prev := math.NaN()
	for range 10 {
		step := TickIncrement(start, stop, count)
		if step == prev || step == 0 {
			break
		}
		if step > 0 {
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		} else {
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		}
		prev = step
	}

	if reverse {
		return stop, start
	}
	return start, stop
}
