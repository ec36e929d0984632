package chart

import (
	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// Line draws one smooth line per series over a numeric or time x axis.
// Rows are sorted by x before layout; the scene exposes the sorted rows.
type Line struct {
	Common
	Data        data.Dataset
	X           data.NumberFunc // use data.TimeMillis for dates
	Time        bool            // x holds unix milliseconds
	Series      []Series
	Curve       geom.Curve // default monotone
	HideArea    bool       // no gradient area under the first series
	ShowColumns bool       // vertical grid lines
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) MinSize() Size { return Size{Width: 10, Height: 100} }

// Build lays out the line paths and a bisecting locator over x.
func (l *Line) Build(size Size) (*Scene, error) {
	if err := requireNumber(KindLine, "x", l.X); err != nil {
		return nil, err
	}
	if err := checkSeries(KindLine, l.Series); err != nil {
		return nil, err
	}
	plot := l.margins(AxisMargins).Plot(size)
	s, done, err := begin(l, size, plot)
	if done || len(l.Data) == 0 {
		return s, err
	}

	rows := sortedRows(l.Data, l.X)
	s.Rows = rows
	xs := rows.Values(l.X)
	vals := values(rows, l.Series)

	x0, x1, _ := scale.Extent(xs)
	x := scale.NewLinear(x0, x1, plot.X0, plot.X1)
	top := 0.0
	for _, row := range vals {
		top = max(top, scale.Max(row))
	}
	y := scale.NewLinear(0, headroom(top, 1.1), plot.Y1, plot.Y0)

	palette := l.palette(scale.Vivid)
	curve := l.curve()
	for j, ser := range l.Series {
		pts := make([]geom.Point, len(rows))
		for i := range rows {
			pts[i] = geom.Point{X: x.Map(xs[i]), Y: y.Map(vals[i][j])}
		}
		segs := geom.Segments(pts, curve)
		color := palette.At(j)
		if j == 0 && !l.HideArea {
			s.Shapes = append(s.Shapes, areaPath(pts, baseline(pts, y.Map(0)), curve, geom.Mark{
				Datum: geom.NoDatum, Series: ser.Name, Class: "area", Fill: color, Opacity: 0.2,
			}))
		}
		s.Shapes = append(s.Shapes, geom.Path{
			Mark:    geom.Mark{Datum: geom.NoDatum, Series: ser.Name, Class: "line", Stroke: color, StrokeWidth: 2},
			D:       linePathD(pts, segs),
			Outline: geom.Flatten(segs, 8),
		})
		if len(l.Series) > 1 {
			s.Legend = append(s.Legend, LegendEntry{Label: ser.Name, Color: color})
		}
	}

	count := xTickCount(size.Width, len(rows))
	if !l.HideGrid {
		s.Grid = gridRows(y, 5, plot)
		if l.ShowColumns {
			s.Grid = append(s.Grid, gridColumns(x, l.Time, count, plot)...)
		}
	}
	if !l.HideXAxis {
		s.Axes = append(s.Axes, xAxis(x, l.Time, count, plot, l.XLabel))
	}
	if !l.HideYAxis {
		ax := linearAxis(OrientLeft, y, 5, plot, l.YLabel)
		ax.Hidden = true
		s.Axes = append(s.Axes, ax)
	}

	s.Locator = tooltip.Bisector{
		Xs:     xs,
		Invert: x.Invert,
		Anchor: func(i int) geom.Point { return geom.Point{X: x.Map(xs[i]), Y: y.Map(vals[i][0])} },
		Plot:   plot,
	}
	s.Describe = seriesDescriber(rows, l.X, l.Time, l.Series, vals)
	return s, nil
}

func (l *Line) curve() geom.Curve {
	if l.Curve == "" {
		return geom.CurveMonotoneX
	}
	return l.Curve
}

// Area stacks one filled band per series over a numeric or time x axis.
type Area struct {
	Common
	Data        data.Dataset
	X           data.NumberFunc
	Time        bool
	Series      []Series   // stacked bottom to top in order
	Curve       geom.Curve // default monotone
	ShowColumns bool
}

func (a *Area) Kind() Kind { return KindArea }

func (a *Area) MinSize() Size { return Size{Width: 10, Height: 100} }

// Build lays out the stacked bands. Each band is closed against the top of
// the band below it, the first one against y = 0.
func (a *Area) Build(size Size) (*Scene, error) {
	if err := requireNumber(KindArea, "x", a.X); err != nil {
		return nil, err
	}
	if err := checkSeries(KindArea, a.Series); err != nil {
		return nil, err
	}
	plot := a.margins(AxisMargins).Plot(size)
	s, done, err := begin(a, size, plot)
	if done || len(a.Data) == 0 {
		return s, err
	}

	rows := sortedRows(a.Data, a.X)
	s.Rows = rows
	xs := rows.Values(a.X)
	vals := values(rows, a.Series)
	base := StackBaselines(vals)
	totals := rowTotals(vals)

	x0, x1, _ := scale.Extent(xs)
	x := scale.NewLinear(x0, x1, plot.X0, plot.X1)
	y := scale.NewLinear(0, headroom(scale.Max(totals), 1.1), plot.Y1, plot.Y0, scale.WithNice(10))

	palette := a.palette(scale.Pair)
	curve := a.curve()
	for j, ser := range a.Series {
		top := make([]geom.Point, len(rows))
		bottom := make([]geom.Point, len(rows))
		for i := range rows {
			px := x.Map(xs[i])
			top[i] = geom.Point{X: px, Y: y.Map(base[i][j] + vals[i][j])}
			bottom[i] = geom.Point{X: px, Y: y.Map(base[i][j])}
		}
		color := palette.At(j)
		s.Shapes = append(s.Shapes, areaPath(top, bottom, curve, geom.Mark{
			Datum: geom.NoDatum, Series: ser.Name, Class: "area", Fill: color, Opacity: 0.8,
		}))
		s.Legend = append(s.Legend, LegendEntry{Label: ser.Name, Color: color})
	}

	count := min(5, len(rows))
	if !a.HideGrid {
		s.Grid = gridRows(y, 5, plot)
		if a.ShowColumns {
			s.Grid = append(s.Grid, gridColumns(x, a.Time, count, plot)...)
		}
	}
	if !a.HideXAxis {
		s.Axes = append(s.Axes, xAxis(x, a.Time, count, plot, a.XLabel))
	}
	if !a.HideYAxis {
		ax := linearAxis(OrientLeft, y, 5, plot, a.YLabel)
		ax.Hidden = true
		s.Axes = append(s.Axes, ax)
	}

	s.Locator = tooltip.Bisector{
		Xs:     xs,
		Invert: x.Invert,
		Anchor: func(i int) geom.Point { return geom.Point{X: x.Map(xs[i]), Y: y.Map(totals[i])} },
		Plot:   plot,
	}
	s.Describe = seriesDescriber(rows, a.X, a.Time, a.Series, vals)
	return s, nil
}

func (a *Area) curve() geom.Curve {
	if a.Curve == "" {
		return geom.CurveMonotoneX
	}
	return a.Curve
}

// sortedRows returns rows ascending by x, copying only when needed.
func sortedRows(rows data.Dataset, x data.NumberFunc) data.Dataset {
	if rows.IsSortedBy(x) {
		return rows
	}
	return rows.SortedBy(x)
}

func baseline(pts []geom.Point, y float64) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Point{X: p.X, Y: y}
	}
	return out
}

// areaPath closes the curve through top against bottom. A single point
// becomes a vertical segment.
func areaPath(top, bottom []geom.Point, curve geom.Curve, m geom.Mark) geom.Path {
	topSegs := geom.Segments(top, curve)
	baseSegs := geom.Segments(bottom, curve)
	outline := append(geom.Flatten(topSegs, 8), reversed(geom.Flatten(baseSegs, 8))...)
	d := geom.AreaD(topSegs, baseSegs)
	if len(top) == 1 {
		outline = []geom.Point{top[0], bottom[0]}
		d = "M" + xy(top[0]) + "L" + xy(bottom[0]) + "Z"
	}
	return geom.Path{Mark: m, D: d, Outline: outline, Closed: true}
}

// linePathD returns the path data of a line; a single point becomes a
// degenerate move so that renderers still emit the element.
func linePathD(pts []geom.Point, segs []geom.Cubic) string {
	if len(segs) == 0 && len(pts) > 0 {
		return geom.PointD(pts[0])
	}
	return geom.CurveD(segs)
}

func xy(p geom.Point) string { return geom.F(p.X) + "," + geom.F(p.Y) }

func reversed(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func seriesDescriber(rows data.Dataset, x data.NumberFunc, isTime bool, ss []Series, vals [][]float64) Describer {
	return func(h tooltip.Hit) []string {
		if h.Index < 0 || h.Index >= len(rows) {
			return nil
		}
		xv := x(rows[h.Index])
		head := formatNumber(xv)
		if isTime {
			head = formatTime(xv)
		}
		lines := []string{head}
		for j, ser := range ss {
			lines = append(lines, ser.Name+": "+formatNumber(vals[h.Index][j]))
		}
		return lines
	}
}
