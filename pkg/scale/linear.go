package scale

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linear maps a continuous domain [D0, D1] onto a range [R0, R1].
type Linear struct {
	d0, d1 float64
	r0, r1 float64
	round  bool
	clamp  bool
}

// LinearOption configures a Linear scale.
type LinearOption func(*linearConfig)

type linearConfig struct {
	nice      bool
	niceCount int
	round     bool
	clamp     bool
}

// WithNice extends the domain to tick-aligned bounds for roughly count ticks.
func WithNice(count int) LinearOption {
	return func(c *linearConfig) {
		c.nice = true
		c.niceCount = count
	}
}

// WithRound rounds mapped values to whole pixels.
func WithRound() LinearOption {
	return func(c *linearConfig) { c.round = true }
}

// WithClamp restricts mapped values to the range.
func WithClamp() LinearOption {
	return func(c *linearConfig) { c.clamp = true }
}

// NewLinear builds a scale mapping [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64, opts ...LinearOption) Linear {
	cfg := linearConfig{niceCount: 10}
	for _, opt := range opts {
		opt(&cfg)
	}
	d0, d1 = finite(d0), finite(d1)
	if cfg.nice {
		d0, d1 = Nice(d0, d1, cfg.niceCount)
	}
	return Linear{
		d0: d0, d1: d1,
		r0: finite(r0), r1: finite(r1),
		round: cfg.round,
		clamp: cfg.clamp,
	}
}

// Identity returns the scale used for empty datasets: [0, 1] onto [0, 1].
func Identity() Linear {
	return Linear{d1: 1, r1: 1}
}

// Map converts a domain value to a range value. A degenerate domain maps
// every value to the midpoint of the range.
func (s Linear) Map(v float64) float64 {
	v = finite(v)
	var out float64
	if s.d0 == s.d1 {
		out = (s.r0 + s.r1) / 2
	} else {
		t := (v - s.d0) / (s.d1 - s.d0)
		if s.clamp {
			t = math.Max(0, math.Min(1, t))
		}
		out = s.r0 + t*(s.r1-s.r0)
	}
	if s.round {
		out = math.Round(out)
	}
	return out
}

// Invert converts a range value back to the domain.
func (s Linear) Invert(px float64) float64 {
	px = finite(px)
	if s.r0 == s.r1 {
		return s.d0
	}
	t := (px - s.r0) / (s.r1 - s.r0)
	if s.clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return s.d0 + t*(s.d1-s.d0)
}

// Domain returns the (possibly niced) domain.
func (s Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the output range.
func (s Linear) Range() (float64, float64) { return s.r0, s.r1 }

// Ticks returns roughly count tick values within the domain.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.d0, s.d1, count)
}

// Extent returns the minimum and maximum finite values. ok is false when
// no finite value exists.
func Extent(values []float64) (lo, hi float64, ok bool) {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return 0, 0, false
	}
	return floats.Min(clean), floats.Max(clean), true
}

// Max returns the largest finite value, or zero for an empty slice.
func Max(values []float64) float64 {
	_, hi, ok := Extent(values)
	if !ok {
		return 0
	}
	return hi
}

// Min returns the smallest finite value, or zero for an empty slice.
func Min(values []float64) float64 {
	lo, _, ok := Extent(values)
	if !ok {
		return 0
	}
	return lo
}

// Sum returns the sum of finite values.
func Sum(values []float64) float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		clean = append(clean, finite(v))
	}
	return floats.Sum(clean)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
