package scale

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/waffle/pkg/errors"
)

// Sequential maps a numeric domain onto a color ramp interpolated in
// CIE-Lab space.
type Sequential struct {
	lin      Linear
	from, to colorful.Color
}

// NewSequential builds a color ramp from hex colors from and to.
func NewSequential(d0, d1 float64, from, to string) (Sequential, error) {
	c0, err := colorful.Hex(from)
	if err != nil {
		return Sequential{}, errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid color %q", from)
	}
	c1, err := colorful.Hex(to)
	if err != nil {
		return Sequential{}, errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid color %q", to)
	}
	return Sequential{lin: NewLinear(d0, d1, 0, 1, WithClamp()), from: c0, to: c1}, nil
}

// Map returns the hex color for v.
func (s Sequential) Map(v float64) string {
	t := math.Max(0, math.Min(1, s.lin.Map(v)))
	switch t {
	case 0:
		return s.from.Hex()
	case 1:
		return s.to.Hex()
	}
	return s.from.BlendLab(s.to, t).Clamped().Hex()
}

// Lighten returns hex shifted toward white by amount in [0, 1]. Invalid
// colors are returned unchanged.
func Lighten(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	amount = clampUnit(amount)
	if amount == 1 {
		return "#ffffff"
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendLab(white, amount).Clamped().Hex()
}
