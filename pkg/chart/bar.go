package chart

import (
	"math"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// BarMode selects how multiple series share a category.
type BarMode string

// Bar modes.
const (
	BarSimple  BarMode = "simple"
	BarGrouped BarMode = "grouped"
	BarStacked BarMode = "stacked"
)

// Bar draws vertical bars per category.
type Bar struct {
	Common
	Data    data.Dataset
	X       data.StringFunc
	Series  []Series
	Mode    BarMode // default simple; grouped when several series are given
	Padding float64 // band padding; default 0.4
}

func (b *Bar) Kind() Kind { return KindBar }

func (b *Bar) MinSize() Size { return Size{Width: 10, Height: 100} }

func (b *Bar) mode() (BarMode, error) {
	switch b.Mode {
	case "":
		if len(b.Series) > 1 {
			return BarGrouped, nil
		}
		return BarSimple, nil
	case BarSimple, BarGrouped, BarStacked:
		return b.Mode, nil
	}
	return "", errors.New(errors.ErrCodeInvalidOption, "unknown bar mode %q", b.Mode)
}

// Build lays out one rectangle per row and series.
func (b *Bar) Build(size Size) (*Scene, error) {
	if err := requireString(KindBar, "x", b.X); err != nil {
		return nil, err
	}
	if err := checkSeries(KindBar, b.Series); err != nil {
		return nil, err
	}
	mode, err := b.mode()
	if err != nil {
		return nil, err
	}

	plot := b.margins(AxisMargins).Plot(size)
	s, done, err := begin(b, size, plot)
	if done || len(b.Data) == 0 {
		return s, err
	}
	s.Rows = b.Data

	vals := values(b.Data, b.Series)
	if mode == BarSimple {
		vals = firstSeries(vals)
	}
	top := 0.0
	if mode == BarStacked {
		top = scale.Max(rowTotals(vals))
	} else {
		for _, row := range vals {
			top = math.Max(top, scale.Max(row))
		}
	}

	x := scale.NewBand(b.Data.Strings(b.X), plot.X0, plot.X1,
		scale.WithPadding(positive(b.Padding, 0.4)), scale.WithBandRound())
	y := scale.NewLinear(0, headroom(top, 1), plot.Y1, plot.Y0, scale.WithRound())
	series := b.Series
	if mode == BarSimple {
		series = series[:1]
	}
	palette := b.palette(scale.Vivid)

	var sub scale.Band
	if mode == BarGrouped {
		sub = scale.NewBand(seriesNames(series), 0, x.Bandwidth(), scale.WithPaddingInner(0.1))
	}
	base := StackBaselines(vals)

	var bars []geom.Shape
	for i, r := range b.Data {
		x0, _ := x.Map(b.X(r))
		for j, ser := range series {
			v := vals[i][j]
			rect := geom.Rect{
				Mark: geom.Mark{Datum: i, Series: ser.Name, Fill: palette.At(j)},
				X:    x0,
				W:    x.Bandwidth(),
			}
			lo := 0.0
			switch mode {
			case BarGrouped:
				rect.X = x0 + sub.At(j)
				rect.W = sub.Bandwidth()
			case BarStacked:
				lo = base[i][j]
			}
			rect.Y, rect.H = barSpan(y, lo, lo+v, v)
			bars = append(bars, rect)
		}
	}
	s.Shapes = bars

	if !b.HideXAxis {
		s.Axes = append(s.Axes, bandAxis(OrientBottom, x, plot, b.XLabel))
	}
	if !b.HideYAxis {
		ax := linearAxis(OrientLeft, y, 5, plot, b.YLabel)
		ax.Hidden = true
		s.Axes = append(s.Axes, ax)
	}
	if !b.HideGrid {
		s.Grid = gridRows(y, 5, plot)
	}
	if len(series) > 1 {
		for j, ser := range series {
			s.Legend = append(s.Legend, LegendEntry{Label: ser.Name, Color: palette.At(j)})
		}
	}

	totals := rowTotals(vals)
	rows := bandRows(x, b.Data, b.X)
	s.Locator = tooltip.Chain{
		tooltip.ShapeLocator{Shapes: bars},
		tooltip.BandLocator{
			Index: func(px float64) int { return rowAt(x, rows, px) },
			Anchor: func(i int) geom.Point {
				x0, _ := x.Map(b.X(b.Data[i]))
				if mode == BarStacked {
					return geom.Point{X: x0 + x.Bandwidth()/2, Y: y.Map(totals[i])}
				}
				return geom.Point{X: x0 + x.Bandwidth()/2, Y: y.Map(scale.Max(vals[i]))}
			},
			Plot: plot,
		},
	}
	s.Describe = func(h tooltip.Hit) []string {
		if h.Index < 0 || h.Index >= len(b.Data) {
			return nil
		}
		r := b.Data[h.Index]
		if len(series) == 1 {
			return []string{formatNumber(vals[h.Index][0]), b.X(r)}
		}
		lines := []string{b.X(r)}
		for j, ser := range series {
			lines = append(lines, ser.Name+": "+formatNumber(vals[h.Index][j]))
		}
		return lines
	}
	return s, nil
}

// barSpan returns the top and height of a bar covering [lo, hi] on y. A
// nonzero value whose height rounds to zero still gets a one pixel sliver.
func barSpan(y scale.Linear, lo, hi, v float64) (top, height float64) {
	y0, y1 := y.Map(lo), y.Map(hi)
	top = math.Min(y0, y1)
	height = math.Abs(y0 - y1)
	if height < 1 && v > 0 {
		height = 1
		top = y0 - 1
	}
	return top, height
}

func firstSeries(vals [][]float64) [][]float64 {
	out := make([][]float64, len(vals))
	for i, row := range vals {
		out[i] = row[:1]
	}
	return out
}
