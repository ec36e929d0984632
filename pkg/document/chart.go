package document

import (
	"strings"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
)

// required lists the keys each tabular kind reads. Treemap, sankey and
// chord take structured input instead of keys.
var required = map[chart.Kind][]string{
	chart.KindBar:         {"x", "series"},
	chart.KindLine:        {"x", "series"},
	chart.KindArea:        {"x", "series"},
	chart.KindPie:         {"value", "label"},
	chart.KindRadar:       {"angle", "radius"},
	chart.KindScatter:     {"x", "y"},
	chart.KindBubble:      {"x", "y", "z"},
	chart.KindHeatmap:     {"column", "row", "count"},
	chart.KindCandlestick: {"x", "open", "high", "low", "close"},
	chart.KindFunnel:      {"step", "value"},
	chart.KindRadialBar:   {"value", "label"},
	chart.KindWaffle:      {"value", "label"},
	chart.KindComposite:   {"x", "bar", "line"},
}

// Required returns the keys a kind reads from its dataset.
func Required(kind chart.Kind) []string {
	return required[kind]
}

// lookup returns the configured field for a key name.
func (k Keys) lookup(name string) []string {
	switch name {
	case "x":
		return nonEmpty(k.X)
	case "y":
		return nonEmpty(k.Y)
	case "z":
		return nonEmpty(k.Z)
	case "series":
		return k.Series
	case "value":
		return nonEmpty(k.Value)
	case "label":
		return nonEmpty(k.Label)
	case "step":
		return nonEmpty(k.Step)
	case "angle":
		return nonEmpty(k.Angle)
	case "radius":
		return nonEmpty(k.Radius)
	case "column":
		return nonEmpty(k.Column)
	case "row":
		return nonEmpty(k.Row)
	case "count":
		return nonEmpty(k.Count)
	case "open":
		return nonEmpty(k.Open)
	case "high":
		return nonEmpty(k.High)
	case "low":
		return nonEmpty(k.Low)
	case "close":
		return nonEmpty(k.Close)
	case "bar":
		return nonEmpty(k.Bar)
	case "line":
		return nonEmpty(k.Line)
	}
	return nil
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// Validate checks the kind, the keys it requires, colors and dimensions.
// Dataset contents are checked when the chart is built.
func (d *Document) Validate() error {
	kind, err := chart.ParseKind(d.Kind)
	if err != nil {
		return err
	}
	if err := errors.ValidateDimensions(d.Width, d.Height); err != nil {
		return err
	}
	if err := errors.ValidatePalette(d.Options.Colors); err != nil {
		return err
	}
	if err := errors.ValidatePalette(d.Options.ColorRange); err != nil {
		return err
	}
	for _, c := range []string{d.Options.Color, d.Options.UpColor, d.Options.DownColor, d.Options.BarColor, d.Options.LineColor} {
		if c == "" {
			continue
		}
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	if n := len(d.Options.ColorRange); n != 0 && n != 2 {
		return errors.New(errors.ErrCodeInvalidOption, "color_range needs a low and a high color, got %d", n)
	}

	for _, name := range required[kind] {
		if kind == chart.KindHeatmap && d.Keys.Bins != "" {
			break
		}
		fields := d.Keys.lookup(name)
		if len(fields) == 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "%s chart requires key %q", kind, name)
		}
		for _, f := range fields {
			if err := errors.ValidateKey(f); err != nil {
				return err
			}
		}
	}

	switch kind {
	case chart.KindTreemap:
		if d.Hierarchy == nil {
			return errors.New(errors.ErrCodeInvalidDocument, "treemap requires a hierarchy")
		}
		if _, err := chart.ParseTile(d.Options.Tile); err != nil {
			return err
		}
		return d.Hierarchy.Validate()
	case chart.KindSankey:
		if d.Flow == nil {
			return errors.New(errors.ErrCodeInvalidDocument, "sankey requires a flow")
		}
		return d.Flow.Validate()
	case chart.KindChord:
		if len(d.Matrix) == 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "chord requires a matrix")
		}
		if len(d.Labels) > 0 && len(d.Labels) != len(d.Matrix) {
			return errors.New(errors.ErrCodeInvalidDataset, "chord has %d labels for a %dx%[2]d matrix", len(d.Labels), len(d.Matrix))
		}
		return data.ValidateMatrix(d.Matrix)
	case chart.KindBar:
		switch chart.BarMode(d.Options.Mode) {
		case "", chart.BarSimple, chart.BarGrouped, chart.BarStacked:
		default:
			return errors.New(errors.ErrCodeInvalidOption, "unknown bar mode %q", d.Options.Mode)
		}
	case chart.KindLine, chart.KindArea:
		if _, err := parseCurve(d.Options.Curve); err != nil {
			return err
		}
	}
	return nil
}

func parseCurve(s string) (geom.Curve, error) {
	switch c := geom.Curve(strings.ToLower(s)); c {
	case "":
		return geom.CurveMonotoneX, nil
	case geom.CurveLinear, geom.CurveMonotoneX:
		return c, nil
	}
	return "", errors.New(errors.ErrCodeInvalidOption, "unknown curve %q", s)
}

// Chart validates d and returns the chart it describes.
func (d *Document) Chart() (chart.Chart, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	kind, _ := chart.ParseKind(d.Kind)
	k, o := d.Keys, d.Options
	common := chart.Common{
		Colors:    scale.Palette(o.Colors),
		Margins:   o.Margins,
		HideXAxis: o.HideXAxis,
		HideYAxis: o.HideYAxis,
		HideGrid:  o.HideGrid,
		XLabel:    o.XLabel,
		YLabel:    o.YLabel,
	}
	rows := d.Data

	switch kind {
	case chart.KindBar:
		return &chart.Bar{
			Common:  common,
			Data:    rows,
			X:       data.String(k.X),
			Series:  chart.SeriesOf(k.Series...),
			Mode:    chart.BarMode(o.Mode),
			Padding: o.Padding,
		}, nil
	case chart.KindLine:
		curve, _ := parseCurve(o.Curve)
		x, isTime := d.xAxis()
		return &chart.Line{
			Common:      common,
			Data:        rows,
			X:           x,
			Time:        isTime,
			Series:      chart.SeriesOf(k.Series...),
			Curve:       curve,
			HideArea:    o.HideArea,
			ShowColumns: o.ShowColumns,
		}, nil
	case chart.KindArea:
		curve, _ := parseCurve(o.Curve)
		x, isTime := d.xAxis()
		return &chart.Area{
			Common:      common,
			Data:        rows,
			X:           x,
			Time:        isTime,
			Series:      chart.SeriesOf(k.Series...),
			Curve:       curve,
			ShowColumns: o.ShowColumns,
		}, nil
	case chart.KindPie:
		return &chart.Pie{
			Common:         common,
			Data:           rows,
			Value:          data.Number(k.Value),
			Label:          data.String(k.Label),
			InnerRadius:    o.InnerRadius,
			PadAngle:       o.PadAngle,
			CornerRadius:   o.CornerRadius,
			ActiveOffset:   o.ActiveOffset,
			StartAngle:     o.StartAngle,
			EndAngle:       o.EndAngle,
			CenterTitle:    o.CenterTitle,
			CenterSubtitle: o.CenterSubtitle,
		}, nil
	case chart.KindRadar:
		return &chart.Radar{
			Common: common,
			Data:   rows,
			Angle:  data.String(k.Angle),
			Radius: data.Number(k.Radius),
			Levels: o.Levels,
			Color:  o.Color,
		}, nil
	case chart.KindScatter:
		return &chart.Scatter{
			Common: common,
			Data:   rows,
			X:      data.Number(k.X),
			Y:      data.Number(k.Y),
			Radius: o.Radius,
			Color:  o.Color,
		}, nil
	case chart.KindBubble:
		return &chart.Bubble{
			Common:    common,
			Data:      rows,
			X:         data.Number(k.X),
			Y:         data.Number(k.Y),
			Z:         data.Number(k.Z),
			MinRadius: o.MinRadius,
			MaxRadius: o.MaxRadius,
			Color:     o.Color,
		}, nil
	case chart.KindHeatmap:
		h := &chart.Heatmap{Common: common, Data: rows, Gap: o.Gap}
		if len(o.ColorRange) == 2 {
			h.ColorRange = [2]string{o.ColorRange[0], o.ColorRange[1]}
		}
		if k.Bins != "" {
			count := k.Count
			if count == "" {
				count = "count"
			}
			h.Data = chart.FlattenBins(rows, k.Bins, count)
			h.Column, h.Row, h.Count = data.Number("column"), data.Number("row"), data.Number("count")
		} else {
			h.Column, h.Row, h.Count = data.Number(k.Column), data.Number(k.Row), data.Number(k.Count)
		}
		return h, nil
	case chart.KindTreemap:
		tile, _ := chart.ParseTile(o.Tile)
		return &chart.Treemap{Common: common, Root: d.Hierarchy, Tile: tile, Padding: o.Padding}, nil
	case chart.KindSankey:
		return &chart.Sankey{
			Common:      common,
			Flow:        d.Flow,
			NodeWidth:   o.NodeWidth,
			NodePadding: o.NodePadding,
			Iterations:  o.Iterations,
		}, nil
	case chart.KindChord:
		return &chart.Chord{Common: common, Matrix: d.Matrix, Keys: d.ChordLabels(), PadAngle: o.PadAngle}, nil
	case chart.KindCandlestick:
		return &chart.Candlestick{
			Common:    common,
			Data:      rows,
			X:         d.timeOrNumber(k.X),
			Open:      data.Number(k.Open),
			High:      data.Number(k.High),
			Low:       data.Number(k.Low),
			Close:     data.Number(k.Close),
			UpColor:   o.UpColor,
			DownColor: o.DownColor,
		}, nil
	case chart.KindFunnel:
		return &chart.Funnel{Common: common, Data: rows, Step: data.String(k.Step), Value: data.Number(k.Value)}, nil
	case chart.KindRadialBar:
		return &chart.RadialBar{
			Common:      common,
			Data:        rows,
			Value:       data.Number(k.Value),
			Label:       data.String(k.Label),
			Max:         o.Max,
			StartAngle:  o.StartAngle,
			EndAngle:    o.EndAngle,
			InnerRadius: o.InnerRadius,
		}, nil
	case chart.KindWaffle:
		return &chart.Waffle{
			Common:   common,
			Data:     rows,
			Label:    data.String(k.Label),
			Value:    data.Number(k.Value),
			Total:    o.Total,
			Rows:     o.Rows,
			Columns:  o.Columns,
			Gap:      o.Gap,
			Rounding: o.Rounding,
		}, nil
	case chart.KindComposite:
		return &chart.Composite{
			Common:    common,
			Data:      rows,
			X:         data.String(k.X),
			Bar:       chart.Series{Name: k.Bar, Value: data.Number(k.Bar)},
			Line:      chart.Series{Name: k.Line, Value: data.Number(k.Line)},
			BarColor:  o.BarColor,
			LineColor: o.LineColor,
		}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "no document mapping for %s", kind)
}

// xAxis returns the x accessor of line and area charts. The axis is a time
// axis when requested, or when the first row holds a date string.
// ChordLabels returns the chord group labels, defaulting to A, B, C...
func (d *Document) ChordLabels() []string {
	if len(d.Labels) > 0 {
		return d.Labels
	}
	labels := make([]string, len(d.Matrix))
	for i := range labels {
		labels[i] = string(rune('A' + i%26))
	}
	return labels
}

func (d *Document) xAxis() (data.NumberFunc, bool) {
	if d.Options.Time || d.firstIsTime(d.Keys.X) {
		return data.TimeMillis(d.Keys.X), true
	}
	return data.Number(d.Keys.X), false
}

func (d *Document) timeOrNumber(key string) data.NumberFunc {
	if d.firstIsTime(key) {
		return data.TimeMillis(key)
	}
	return data.Number(key)
}

func (d *Document) firstIsTime(key string) bool {
	return len(d.Data) > 0 && data.IsTimeLike(d.Data[0][key])
}
