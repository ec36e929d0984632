package chart

import (
	"time"

	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
)

// Orient is the side of the plot area an axis is drawn on.
type Orient string

// Axis orientations.
const (
	OrientBottom Orient = "bottom"
	OrientLeft   Orient = "left"
	OrientRight  Orient = "right"
)

// Tick is one labelled position along an axis, in absolute pixels.
type Tick struct {
	Pos   float64
	Label string
}

// Axis describes an axis line and its ticks. X and Y locate the axis line:
// a bottom axis runs horizontally at Y from X to X+Length, a left or right
// axis runs vertically at X from Y to Y+Length.
type Axis struct {
	Orient Orient
	X, Y   float64
	Length float64
	Ticks  []Tick
	Label  string
	Color  string // tick label color; "" uses the theme default
	Hidden bool   // draw ticks without the axis line
}

const (
	gridDash   = "3,3"
	gridStroke = "#e2e8f0"
)

func axisAt(o Orient, plot geom.Box, label string) Axis {
	switch o {
	case OrientBottom:
		return Axis{Orient: o, X: plot.X0, Y: plot.Y1, Length: plot.Width(), Label: label}
	case OrientRight:
		return Axis{Orient: o, X: plot.X1, Y: plot.Y0, Length: plot.Height(), Label: label}
	default:
		return Axis{Orient: OrientLeft, X: plot.X0, Y: plot.Y0, Length: plot.Height(), Label: label}
	}
}

// linearAxis places roughly count ticks of s along the axis.
func linearAxis(o Orient, s scale.Linear, count int, plot geom.Box, label string) Axis {
	a := axisAt(o, plot, label)
	for _, v := range s.Ticks(count) {
		a.Ticks = append(a.Ticks, Tick{Pos: s.Map(v), Label: formatNumber(v)})
	}
	return a
}

// bandAxis labels the center of every band.
func bandAxis(o Orient, b scale.Band, plot geom.Box, label string) Axis {
	a := axisAt(o, plot, label)
	for i, c := range b.Domain() {
		a.Ticks = append(a.Ticks, Tick{Pos: b.At(i) + b.Bandwidth()/2, Label: c})
	}
	return a
}

// timeAxis places calendar-aligned ticks of s along the axis.
func timeAxis(o Orient, s scale.Time, count int, plot geom.Box, label string) Axis {
	a := axisAt(o, plot, label)
	ticks, iv := s.Ticks(count)
	layout := scale.TimeLayout(iv)
	for _, t := range ticks {
		a.Ticks = append(a.Ticks, Tick{Pos: s.Map(t), Label: t.Format(layout)})
	}
	return a
}

// xAxis builds the bottom axis of a numeric or time x scale.
func xAxis(x scale.Linear, isTime bool, count int, plot geom.Box, label string) Axis {
	if isTime {
		d0, d1 := x.Domain()
		r0, r1 := x.Range()
		return timeAxis(OrientBottom, scale.NewTimeMillis(d0, d1, r0, r1), count, plot, label)
	}
	return linearAxis(OrientBottom, x, count, plot, label)
}

// gridRows draws a dashed horizontal line per tick of y.
func gridRows(y scale.Linear, count int, plot geom.Box) []geom.Line {
	var out []geom.Line
	for _, v := range y.Ticks(count) {
		py := y.Map(v)
		out = append(out, gridLine(plot.X0, py, plot.X1, py))
	}
	return out
}

// gridColumns draws a dashed vertical line per tick of x.
func gridColumns(x scale.Linear, isTime bool, count int, plot geom.Box) []geom.Line {
	var xs []float64
	if isTime {
		d0, d1 := x.Domain()
		r0, r1 := x.Range()
		t := scale.NewTimeMillis(d0, d1, r0, r1)
		ticks, _ := t.Ticks(count)
		for _, tt := range ticks {
			xs = append(xs, t.Map(tt))
		}
	} else {
		for _, v := range x.Ticks(count) {
			xs = append(xs, x.Map(v))
		}
	}
	out := make([]geom.Line, 0, len(xs))
	for _, px := range xs {
		out = append(out, gridLine(px, plot.Y0, px, plot.Y1))
	}
	return out
}

func gridLine(x1, y1, x2, y2 float64) geom.Line {
	return geom.Line{
		Mark: geom.Mark{Datum: geom.NoDatum, Class: "grid", Stroke: gridStroke, StrokeWidth: 1},
		X1:   x1, Y1: y1, X2: x2, Y2: y2,
		Dash: gridDash,
	}
}

// xTickCount mirrors the responsive tick density of the line chart: more
// ticks once the surface is wide enough to hold them.
func xTickCount(width float64, n int) int {
	count := 5
	if width > 520 {
		count = 10
	}
	if n > 0 && n < count {
		count = n
	}
	return count
}

func formatTime(ms float64) string {
	return time.UnixMilli(int64(ms)).UTC().Format("Jan 02, 2006")
}
