package scale

import "math"

// Band divides a continuous range into uniform bands, one per category.
//
// With n categories, inner padding pi and outer padding po:
//
//	step      = (r1 - r0) / max(1, n - pi + 2*po)
//	bandwidth = step * (1 - pi)
type Band struct {
	domain       []string
	index        map[string]int
	r0, r1       float64
	paddingInner float64
	paddingOuter float64
	align        float64
	round        bool

	step      float64
	bandwidth float64
	start     float64
	reverse   bool
}

// BandOption configures a Band scale.
type BandOption func(*Band)

// WithPadding sets both inner and outer padding, as a fraction of the step.
func WithPadding(p float64) BandOption {
	return func(b *Band) {
		b.paddingInner = clampUnit(p)
		b.paddingOuter = clampUnit(p)
	}
}

// WithPaddingInner sets the gap between bands, as a fraction of the step.
func WithPaddingInner(p float64) BandOption {
	return func(b *Band) { b.paddingInner = clampUnit(p) }
}

// WithPaddingOuter sets the space before the first and after the last band.
func WithPaddingOuter(p float64) BandOption {
	return func(b *Band) { b.paddingOuter = math.Max(0, finite(p)) }
}

// WithAlign distributes the outer space; 0.5 centers the bands.
func WithAlign(a float64) BandOption {
	return func(b *Band) { b.align = clampUnit(a) }
}

// WithBandRound snaps the step and band starts to whole pixels.
func WithBandRound() BandOption {
	return func(b *Band) { b.round = true }
}

// NewBand builds a band scale. Duplicate categories keep their first position.
func NewBand(categories []string, r0, r1 float64, opts ...BandOption) Band {
	b := Band{
		index: make(map[string]int, len(categories)),
		r0:    finite(r0),
		r1:    finite(r1),
		align: 0.5,
	}
	for _, c := range categories {
		if _, ok := b.index[c]; ok {
			continue
		}
		b.index[c] = len(b.domain)
		b.domain = append(b.domain, c)
	}
	for _, opt := range opts {
		opt(&b)
	}
	b.rescale()
	return b
}

func (b *Band) rescale() {
	n := float64(len(b.domain))
	start, stop := b.r0, b.r1
	b.reverse = stop < start
	if b.reverse {
		start, stop = stop, start
	}
	b.step = (stop - start) / math.Max(1, n-b.paddingInner+b.paddingOuter*2)
	if b.round {
		b.step = math.Floor(b.step)
	}
	start += (stop - start - b.step*(n-b.paddingInner)) * b.align
	b.bandwidth = b.step * (1 - b.paddingInner)
	if b.round {
		start = math.Round(start)
		b.bandwidth = math.Round(b.bandwidth)
	}
	b.start = start
}

// Map returns the start of the band for category c.
func (b Band) Map(c string) (float64, bool) {
	i, ok := b.index[c]
	if !ok {
		return 0, false
	}
	return b.At(i), true
}

// At returns the start of the i-th band.
func (b Band) At(i int) float64 {
	if b.reverse {
		i = len(b.domain) - 1 - i
	}
	return b.start + b.step*float64(i)
}

// Center returns the middle of the band for category c.
func (b Band) Center(c string) (float64, bool) {
	x, ok := b.Map(c)
	return x + b.bandwidth/2, ok
}

// Index returns the category index whose step contains px, or -1.
func (b Band) Index(px float64) int {
	if len(b.domain) == 0 || b.step <= 0 {
		return -1
	}
	i := int(math.Floor((px - b.start) / b.step))
	if i < 0 || i >= len(b.domain) {
		return -1
	}
	if b.reverse {
		i = len(b.domain) - 1 - i
	}
	return i
}

// Bandwidth returns the width of each band.
func (b Band) Bandwidth() float64 { return b.bandwidth }

// Step returns the distance between the starts of adjacent bands.
func (b Band) Step() float64 { return b.step }

// Domain returns the categories in band order.
func (b Band) Domain() []string { return b.domain }

// Len returns the number of categories.
func (b Band) Len() int { return len(b.domain) }

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, finite(v)))
}
