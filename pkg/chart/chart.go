package chart

import (
	"math"
	"strings"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// Kind identifies a chart type.
type Kind string

// Supported chart kinds.
const (
	KindBar         Kind = "bar"
	KindLine        Kind = "line"
	KindArea        Kind = "area"
	KindPie         Kind = "pie"
	KindRadar       Kind = "radar"
	KindScatter     Kind = "scatter"
	KindBubble      Kind = "bubble"
	KindHeatmap     Kind = "heatmap"
	KindTreemap     Kind = "treemap"
	KindSankey      Kind = "sankey"
	KindChord       Kind = "chord"
	KindCandlestick Kind = "candlestick"
	KindFunnel      Kind = "funnel"
	KindRadialBar   Kind = "radial-bar"
	KindWaffle      Kind = "waffle"
	KindComposite   Kind = "composite"
)

// Kinds lists every chart kind in gallery order.
var Kinds = []Kind{
	KindBar, KindLine, KindArea, KindPie, KindRadar, KindScatter, KindBubble,
	KindHeatmap, KindTreemap, KindSankey, KindChord, KindCandlestick,
	KindFunnel, KindRadialBar, KindWaffle, KindComposite,
}

var kindDescriptions = map[Kind]string{
	KindBar:         "Bars per category; simple, grouped or stacked",
	KindLine:        "Monotone lines over a numeric or time axis",
	KindArea:        "Stacked areas over a numeric or time axis",
	KindPie:         "Pie or donut slices proportional to value",
	KindRadar:       "Polygon over equally spaced category spokes",
	KindScatter:     "One point per row on two linear axes",
	KindBubble:      "Scatter with a third value mapped to radius",
	KindHeatmap:     "Grid of bins colored by count",
	KindTreemap:     "Nested rectangles sized by subtree value",
	KindSankey:      "Layered flow diagram with weighted links",
	KindChord:       "Circular flow matrix with ribbons",
	KindCandlestick: "Open/high/low/close candles over time",
	KindFunnel:      "Stacked trapezoids between successive steps",
	KindRadialBar:   "Concentric value rings",
	KindWaffle:      "Proportions as cells of a fixed grid",
	KindComposite:   "Bars and a line on two independent y axes",
}

var kindAliases = map[string]Kind{
	"donut":      KindPie,
	"doughnut":   KindPie,
	"radialbar":  KindRadialBar,
	"radial_bar": KindRadialBar,
	"ohlc":       KindCandlestick,
	"dual-axis":  KindComposite,
}

// Describe returns a one-line description of the kind.
func (k Kind) Describe() string { return kindDescriptions[k] }

// ParseKind resolves a kind name, case-insensitively and including aliases
// such as "donut".
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if _, ok := kindDescriptions[Kind(name)]; ok {
		return Kind(name), nil
	}
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "unknown chart kind %q", s)
}

// Size is a drawing surface in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Below reports whether s is smaller than limit in either dimension.
func (s Size) Below(limit Size) bool {
	return s.Width < limit.Width || s.Height < limit.Height
}

// Margins is the space reserved around the plot area.
type Margins struct {
	Top    float64 `json:"top" yaml:"top" toml:"top"`
	Right  float64 `json:"right" yaml:"right" toml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom" toml:"bottom"`
	Left   float64 `json:"left" yaml:"left" toml:"left"`
}

// Uniform returns margins of v on every side.
func Uniform(v float64) Margins { return Margins{v, v, v, v} }

// Default margins per family of charts.
var (
	AxisMargins    = Margins{Top: 40, Right: 30, Bottom: 50, Left: 50}
	RadialMargins  = Uniform(20)
	RadarMargins   = Uniform(40)
	HeatmapMargins = Margins{Top: 10, Right: 10, Bottom: 20, Left: 20}
)

// Plot returns the plot area inside size. An area that would be inverted
// collapses to zero extent.
func (m Margins) Plot(size Size) geom.Box {
	x0, y0 := m.Left, m.Top
	x1 := math.Max(x0, size.Width-m.Right)
	y1 := math.Max(y0, size.Height-m.Bottom)
	return geom.Box{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Common holds the display options shared by every kind.
type Common struct {
	Colors    scale.Palette // palette override
	Margins   *Margins      // nil selects the kind's default
	HideXAxis bool
	HideYAxis bool
	HideGrid  bool
	XLabel    string
	YLabel    string
}

func (c Common) margins(def Margins) Margins {
	if c.Margins != nil {
		return *c.Margins
	}
	return def
}

func (c Common) palette(def scale.Palette) scale.Palette {
	return c.Colors.Or(def)
}

// Chart is implemented by every chart kind.
type Chart interface {
	Kind() Kind
	Build(size Size) (*Scene, error)
}

// Sizer is implemented by charts with a minimum size other than
// [DefaultMinSize].
type Sizer interface {
	MinSize() Size
}

// DefaultMinSize is the smallest surface any chart renders into.
var DefaultMinSize = Size{Width: 10, Height: 10}

// MinSize returns the minimum size of c.
func MinSize(c Chart) Size {
	if s, ok := c.(Sizer); ok {
		return s.MinSize()
	}
	return DefaultMinSize
}

// LegendEntry is one series of a multi-series chart.
type LegendEntry struct {
	Label string
	Color string
}

// Describer produces the tooltip lines of a hit.
type Describer func(h tooltip.Hit) []string

// Scene is the output of a build: everything a renderer needs to draw the
// chart and everything a host needs to drive its tooltip.
type Scene struct {
	Kind       Kind
	Width      float64
	Height     float64
	Plot       geom.Box
	Suppressed bool // below the minimum size; nothing to draw

	Grid   []geom.Line
	Axes   []Axis
	Shapes []geom.Shape
	Labels []geom.Text
	Legend []LegendEntry

	// Rows are the rows that Mark.Datum and Hit.Index refer to. Charts that
	// reorder their input or synthesize rows (flows, hierarchies) expose
	// the reordered or synthesized rows here.
	Rows     data.Dataset
	Locator  tooltip.Locator
	Describe Describer
}

// Empty reports whether the scene has no data primitives.
func (s *Scene) Empty() bool {
	return s == nil || s.Suppressed || len(s.Shapes) == 0
}

// Locate resolves a pointer position against the scene.
func (s *Scene) Locate(x, y float64) (tooltip.Hit, bool) {
	if s == nil || s.Locator == nil {
		return tooltip.Hit{}, false
	}
	return s.Locator.Locate(x, y)
}

// TooltipLines returns the lines shown for h.
func (s *Scene) TooltipLines(h tooltip.Hit) []string {
	if s == nil {
		return nil
	}
	if s.Describe != nil {
		return s.Describe(h)
	}
	if h.Index < 0 || h.Index >= len(s.Rows) {
		return nil
	}
	return describeRow(s.Rows[h.Index])
}

// ShapesFor returns the primitives bound to row i.
func (s *Scene) ShapesFor(i int) []geom.Shape {
	var out []geom.Shape
	for _, sh := range s.Shapes {
		if sh.Meta().Datum == i {
			out = append(out, sh)
		}
	}
	return out
}

func newScene(kind Kind, size Size, plot geom.Box) *Scene {
	return &Scene{
		Kind:    kind,
		Width:   size.Width,
		Height:  size.Height,
		Plot:    plot,
		Locator: tooltip.None,
	}
}

// begin validates size and returns the scene skeleton. done is true when
// the caller must return the scene as is.
func begin(c Chart, size Size, plot geom.Box) (s *Scene, done bool, err error) {
	if err := errors.ValidateDimensions(size.Width, size.Height); err != nil {
		return nil, true, err
	}
	s = newScene(c.Kind(), size, plot)
	if size.Below(MinSize(c)) {
		s.Suppressed = true
		return s, true, nil
	}
	return s, false, nil
}

func requireNumber(kind Kind, name string, f data.NumberFunc) error {
	if f == nil {
		return errors.New(errors.ErrCodeInvalidOption, "%s chart: %s accessor is required", kind, name)
	}
	return nil
}

func requireString(kind Kind, name string, f data.StringFunc) error {
	if f == nil {
		return errors.New(errors.ErrCodeInvalidOption, "%s chart: %s accessor is required", kind, name)
	}
	return nil
}

// positive returns v, def when v is zero, and zero when v is negative.
func positive(v, def float64) float64 {
	switch {
	case v == 0:
		return def
	case v < 0:
		return 0
	}
	return v
}

// nonNegative clamps v at zero and drops non-finite values.
func nonNegative(v float64) float64 {
	return math.Max(0, data.Finite(v))
}

// headroom returns max*factor, or 1 when the data has no positive extent.
func headroom(max, factor float64) float64 {
	if max <= 0 {
		return 1
	}
	return max * factor
}
