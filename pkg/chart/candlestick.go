package chart

import (
	"math"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// Candlestick draws one open/high/low/close candle per row over a time
// axis. Rows are sorted by time before layout.
type Candlestick struct {
	Common
	Data      data.Dataset
	X         data.NumberFunc // unix milliseconds, see data.TimeMillis
	Open      data.NumberFunc
	High      data.NumberFunc
	Low       data.NumberFunc
	Close     data.NumberFunc
	UpColor   string // close >= open; default #22c55e
	DownColor string // default #ef4444
}

func (c *Candlestick) Kind() Kind { return KindCandlestick }

func (c *Candlestick) MinSize() Size { return Size{Width: 10, Height: 100} }

type candle struct {
	t, open, high, low, close float64
}

// Build lays out a wick and a body per candle.
func (c *Candlestick) Build(size Size) (*Scene, error) {
	for _, acc := range []struct {
		name string
		f    data.NumberFunc
	}{{"x", c.X}, {"open", c.Open}, {"high", c.High}, {"low", c.Low}, {"close", c.Close}} {
		if err := requireNumber(KindCandlestick, acc.name, acc.f); err != nil {
			return nil, err
		}
	}
	plot := c.margins(AxisMargins).Plot(size)
	s, done, err := begin(c, size, plot)
	if done || len(c.Data) == 0 {
		return s, err
	}

	rows := sortedRows(c.Data, c.X)
	s.Rows = rows
	candles := make([]candle, len(rows))
	xs := make([]float64, len(rows))
	lows := make([]float64, len(rows))
	highs := make([]float64, len(rows))
	for i, r := range rows {
		cd := candle{
			t:     data.Finite(c.X(r)),
			open:  data.Finite(c.Open(r)),
			high:  data.Finite(c.High(r)),
			low:   data.Finite(c.Low(r)),
			close: data.Finite(c.Close(r)),
		}
		candles[i] = cd
		xs[i], lows[i], highs[i] = cd.t, cd.low, cd.high
	}

	t0, t1, _ := scale.Extent(xs)
	x := scale.NewLinear(t0, t1, plot.X0, plot.X1)
	y := scale.NewLinear(scale.Min(lows)*0.95, scale.Max(highs)*1.05, plot.Y1, plot.Y0,
		scale.WithNice(10), scale.WithRound())

	up, down := c.UpColor, c.DownColor
	if up == "" {
		up = "#22c55e"
	}
	if down == "" {
		down = "#ef4444"
	}
	width := math.Max(1, plot.Width()/float64(len(rows))*0.7)

	var bodies []geom.Shape
	for i, cd := range candles {
		color := down
		if cd.close >= cd.open {
			color = up
		}
		cx := x.Map(cd.t)
		s.Shapes = append(s.Shapes, geom.Line{
			Mark: geom.Mark{Datum: i, Class: "wick", Stroke: color, StrokeWidth: 1},
			X1:   cx, Y1: y.Map(cd.high), X2: cx, Y2: y.Map(cd.low),
		})
		top := y.Map(math.Max(cd.open, cd.close))
		body := geom.Rect{
			Mark: geom.Mark{Datum: i, Fill: color},
			X:    cx - width/2,
			Y:    top,
			W:    width,
			H:    math.Max(1, math.Abs(y.Map(cd.open)-y.Map(cd.close))),
		}
		s.Shapes = append(s.Shapes, body)
		bodies = append(bodies, body)
	}

	count := xTickCount(size.Width, len(rows))
	if !c.HideGrid {
		s.Grid = gridRows(y, 5, plot)
	}
	if !c.HideXAxis {
		s.Axes = append(s.Axes, xAxis(x, true, count, plot, c.XLabel))
	}
	if !c.HideYAxis {
		s.Axes = append(s.Axes, linearAxis(OrientLeft, y, 5, plot, c.YLabel))
	}

	s.Locator = tooltip.Chain{
		tooltip.ShapeLocator{Shapes: bodies},
		tooltip.Bisector{
			Xs:     xs,
			Invert: x.Invert,
			Anchor: func(i int) geom.Point { return geom.Point{X: x.Map(xs[i]), Y: y.Map(candles[i].high)} },
			Plot:   plot,
		},
	}
	s.Describe = func(h tooltip.Hit) []string {
		if h.Index < 0 || h.Index >= len(candles) {
			return nil
		}
		cd := candles[h.Index]
		return []string{
			formatTime(cd.t),
			"Open: " + formatNumber(cd.open),
			"High: " + formatNumber(cd.high),
			"Low: " + formatNumber(cd.low),
			"Close: " + formatNumber(cd.close),
		}
	}
	return s, nil
}
