package chart

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

func sales() data.Dataset {
	return data.Dataset{
		{"month": "Jan", "revenue": 120.0, "cost": 80.0, "ts": 1704067200000.0},
		{"month": "Feb", "revenue": 90.0, "cost": 60.0, "ts": 1706745600000.0},
		{"month": "Mar", "revenue": 150.0, "cost": 70.0, "ts": 1709251200000.0},
		{"month": "Apr", "revenue": 60.0, "cost": 65.0, "ts": 1711929600000.0},
	}
}

func candles() data.Dataset {
	return data.Dataset{
		{"date": 1704153600000.0, "open": 100.0, "high": 110.0, "low": 95.0, "close": 105.0},
		{"date": 1704067200000.0, "open": 98.0, "high": 102.0, "low": 90.0, "close": 100.0},
		{"date": 1704240000000.0, "open": 105.0, "high": 108.0, "low": 96.0, "close": 97.0},
	}
}

func sampleTree() *data.Node {
	return &data.Node{Name: "root", Children: []*data.Node{
		{Name: "A", Children: []*data.Node{{Name: "a1", Size: 6}, {Name: "a2", Size: 4}}},
		{Name: "B", Size: 5},
		{Name: "C", Children: []*data.Node{{Name: "c1", Size: 3}, {Name: "c2", Size: 2}}},
	}}
}

func sampleFlow() *data.Flow {
	return &data.Flow{
		Nodes: []data.FlowNode{{Name: "Solar"}, {Name: "Wind"}, {Name: "Grid"}, {Name: "Homes"}, {Name: "Industry"}},
		Links: []data.FlowLink{
			{Source: 0, Target: 2, Value: 5},
			{Source: 1, Target: 2, Value: 3},
			{Source: 2, Target: 3, Value: 6},
			{Source: 2, Target: 4, Value: 2},
		},
	}
}

// allCharts returns one configured chart of every kind over rows.
func allCharts(rows data.Dataset) []Chart {
	revenue := SeriesOf("revenue")
	return []Chart{
		&Bar{Data: rows, X: data.String("month"), Series: revenue},
		&Line{Data: rows, X: data.Number("ts"), Time: true, Series: SeriesOf("revenue", "cost")},
		&Area{Data: rows, X: data.Number("ts"), Series: SeriesOf("revenue", "cost")},
		&Pie{Data: rows, Value: data.Number("revenue"), Label: data.String("month")},
		&Radar{Data: rows, Angle: data.String("month"), Radius: data.Number("revenue")},
		&Scatter{Data: rows, X: data.Number("cost"), Y: data.Number("revenue")},
		&Bubble{Data: rows, X: data.Number("cost"), Y: data.Number("revenue"), Z: data.Number("revenue")},
		&Funnel{Data: rows, Step: data.String("month"), Value: data.Number("revenue")},
		&RadialBar{Data: rows, Value: data.Number("revenue"), Label: data.String("month")},
		&Waffle{Data: rows, Value: data.Number("revenue"), Label: data.String("month")},
		&Composite{Data: rows, X: data.String("month"), Bar: Series{Name: "revenue", Value: data.Number("revenue")}, Line: Series{Name: "cost", Value: data.Number("cost")}},
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"bar", KindBar},
		{"Donut", KindPie},
		{" RADIALBAR ", KindRadialBar},
		{"radial-bar", KindRadialBar},
		{"ohlc", KindCandlestick},
		{"composite", KindComposite},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil {
			t.Errorf("ParseKind(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseKind("gantt"); !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("ParseKind(gantt) error = %v, want INVALID_KIND", err)
	}
}

func TestEveryKindIsDescribed(t *testing.T) {
	for _, k := range Kinds {
		if k.Describe() == "" {
			t.Errorf("kind %q has no description", k)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{1234, "1,234"},
		{-1234567.891, "-1,234,567.89"},
		{0.5, "0.5"},
		{math.NaN(), "0"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStackBaselines(t *testing.T) {
	vals := [][]float64{{1, 2, 3}, {4, 0, 1}}
	got := StackBaselines(vals)
	want := [][]float64{{0, 1, 3}, {0, 4, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StackBaselines = %v, want %v", got, want)
	}

	// Each band starts where the one below ends.
	for i, row := range vals {
		for j := 1; j < len(row); j++ {
			if got[i][j] != got[i][j-1]+row[j-1] {
				t.Errorf("row %d series %d: base %v, want %v", i, j, got[i][j], got[i][j-1]+row[j-1])
			}
		}
	}
}

func TestSlices(t *testing.T) {
	slices := Slices([]float64{25, 35, 20, 20}, 0, geom.Tau, 0)
	want := []float64{0.25, 0.35, 0.2, 0.2}
	if len(slices) != len(want) {
		t.Fatalf("got %d slices, want %d", len(slices), len(want))
	}
	for i, s := range slices {
		if span := (s.End - s.Start) / geom.Tau; math.Abs(span-want[i]) > 1e-9 {
			t.Errorf("slice %d spans %.4f of the circle, want %.2f", i, span, want[i])
		}
	}
	if last := slices[len(slices)-1].End; math.Abs(last-geom.Tau) > 1e-9 {
		t.Errorf("last slice ends at %v, want 2π", last)
	}
}

func TestSlicesWithPadding(t *testing.T) {
	slices := Slices([]float64{1, 1}, 0, geom.Tau, 0.1)
	for _, s := range slices {
		if s.Pad != 0.1 {
			t.Errorf("Pad = %v, want 0.1", s.Pad)
		}
		if math.Abs(s.End-s.Start-math.Pi) > 1e-9 {
			t.Errorf("slice %d spans %v, want π", s.Index, s.End-s.Start)
		}
	}
}

func TestAllocateCells(t *testing.T) {
	tests := []struct {
		name      string
		vals      []float64
		total     float64
		cells     int
		want      []int
		wantEmpty int
	}{
		{"exact", []float64{30, 20, 50}, 100, 100, []int{30, 20, 50}, 0},
		{"rounding leaves a gap", []float64{1, 1, 1}, 3, 10, []int{3, 3, 3}, 1},
		{"overflow is capped", []float64{2, 2}, 3, 10, []int{7, 3}, 0},
		{"explicit total", []float64{10}, 40, 100, []int{25}, 75},
		{"zero total", []float64{0, 0}, 0, 100, []int{0, 0}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, empty := AllocateCells(tt.vals, tt.total, tt.cells)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("counts = %v, want %v", got, tt.want)
			}
			if empty != tt.wantEmpty {
				t.Errorf("empty = %d, want %d", empty, tt.wantEmpty)
			}
		})
	}
}

func TestWaffleGrid(t *testing.T) {
	rows := data.Dataset{{"v": 30.0}, {"v": 20.0}, {"v": 50.0}}
	w := &Waffle{Data: rows, Value: data.Number("v")}
	s, err := w.Build(Size{Width: 200, Height: 200})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Shapes) != 100 {
		t.Fatalf("got %d cells, want 100", len(s.Shapes))
	}
	for i, want := range []int{30, 20, 50} {
		if got := len(s.ShapesFor(i)); got != want {
			t.Errorf("row %d has %d cells, want %d", i, got, want)
		}
	}
	if got := len(s.ShapesFor(geom.NoDatum)); got != 0 {
		t.Errorf("%d empty cells, want 0", got)
	}

	first := s.Shapes[0].(geom.Rect)
	if first.X != 0 || first.Y != 0 {
		t.Errorf("first cell at (%v, %v), want top-left", first.X, first.Y)
	}
	if want := (200.0 - 2*9) / 10; first.W != want {
		t.Errorf("cell width = %v, want %v", first.W, want)
	}
}

func TestFunnelWidths(t *testing.T) {
	top, bottom := FunnelWidths([]float64{100, 60, 30}, 300)
	if want := []float64{300, 180, 90}; !reflect.DeepEqual(top, want) {
		t.Errorf("top = %v, want %v", top, want)
	}
	// Each step ends exactly as wide as the next one begins.
	for i := 0; i+1 < len(top); i++ {
		if bottom[i] != top[i+1] {
			t.Errorf("step %d bottom = %v, want %v", i, bottom[i], top[i+1])
		}
	}
}

func TestTreemapPartitions(t *testing.T) {
	box := geom.Box{X1: 400, Y1: 300}
	for _, tile := range Tiles {
		t.Run(string(tile), func(t *testing.T) {
			root, err := Layout(sampleTree(), box, tile, 0)
			if err != nil {
				t.Fatal(err)
			}
			var leaves []*Cell
			var walk func(c *Cell)
			walk = func(c *Cell) {
				if c.Leaf() {
					leaves = append(leaves, c)
				}
				for _, ch := range c.Children {
					walk(ch)
				}
			}
			walk(root)
			if len(leaves) != 5 {
				t.Fatalf("got %d leaves, want 5", len(leaves))
			}

			area := 0.0
			for i, a := range leaves {
				area += a.Box.Width() * a.Box.Height()
				if a.Box.X0 < box.X0 || a.Box.Y0 < box.Y0 || a.Box.X1 > box.X1 || a.Box.Y1 > box.Y1 {
					t.Errorf("leaf %s %v outside %v", a.Name, a.Box, box)
				}
				for _, b := range leaves[i+1:] {
					w := math.Min(a.Box.X1, b.Box.X1) - math.Max(a.Box.X0, b.Box.X0)
					h := math.Min(a.Box.Y1, b.Box.Y1) - math.Max(a.Box.Y0, b.Box.Y0)
					if w > 0 && h > 0 {
						t.Errorf("leaves %s and %s overlap", a.Name, b.Name)
					}
				}
			}
			if area != box.Width()*box.Height() {
				t.Errorf("leaves cover %v px², want %v", area, box.Width()*box.Height())
			}
		})
	}
}

func TestTreemapSortsByValue(t *testing.T) {
	root, err := Layout(sampleTree(), geom.Box{X1: 100, Y1: 100}, TileSquarify, 0)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(names, want) {
		t.Errorf("children = %v, want %v", names, want)
	}
	if root.Children[0].Value != 10 {
		t.Errorf("A = %v, want 10", root.Children[0].Value)
	}
}

func TestParseTile(t *testing.T) {
	if tile, err := ParseTile(""); err != nil || tile != TileSquarify {
		t.Errorf("ParseTile(\"\") = %v, %v", tile, err)
	}
	if tile, err := ParseTile("slicedice"); err != nil || tile != TileSliceDice {
		t.Errorf("ParseTile(slicedice) = %v, %v", tile, err)
	}
	if _, err := ParseTile("spiral"); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("ParseTile(spiral) error = %v, want INVALID_OPTION", err)
	}
}

func TestTreemapRows(t *testing.T) {
	tm := &Treemap{Root: sampleTree()}
	s, err := tm.Build(Size{Width: 400, Height: 300})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Rows) != 5 {
		t.Fatalf("got %d rows, want one per leaf", len(s.Rows))
	}
	if got := s.Rows[0]["path"]; got != "A/a1" {
		t.Errorf("first leaf path = %v, want A/a1", got)
	}
	// Inner nodes are drawn but never hit.
	for _, sh := range s.Shapes {
		if sh.Meta().Class == "group" && sh.Meta().Datum != geom.NoDatum {
			t.Errorf("group %s carries datum %d", sh.Meta().Series, sh.Meta().Datum)
		}
	}
}

func TestLayoutSankey(t *testing.T) {
	box := geom.Box{X0: 20, Y0: 20, X1: 580, Y1: 380}
	g, err := LayoutSankey(sampleFlow(), box, SankeyOptions{NodeWidth: 15, NodePadding: 10, Iterations: 6})
	if err != nil {
		t.Fatal(err)
	}
	if g.Layers != 3 {
		t.Errorf("Layers = %d, want 3", g.Layers)
	}
	for name, want := range map[string]int{"Solar": 0, "Wind": 0, "Grid": 1, "Homes": 2, "Industry": 2} {
		for _, n := range g.Nodes {
			if n.Name == name && n.Layer != want {
				t.Errorf("%s in layer %d, want %d", name, n.Layer, want)
			}
		}
	}

	grid := g.Nodes[2]
	if grid.Value != 8 {
		t.Errorf("Grid value = %v, want 8", grid.Value)
	}
	if grid.Box.Width() != 15 {
		t.Errorf("node width = %v, want 15", grid.Box.Width())
	}
	var in, out float64
	for _, l := range g.Links {
		if l.Target == grid {
			in += l.Width
		}
		if l.Source == grid {
			out += l.Width
		}
	}
	if math.Abs(in-out) > 1e-9 {
		t.Errorf("Grid inflow %v px, outflow %v px", in, out)
	}

	ratio := g.Links[0].Width / g.Links[0].Value
	for _, l := range g.Links {
		if math.Abs(l.Width/l.Value-ratio) > 1e-9 {
			t.Errorf("link %d width not proportional to value", l.Index)
		}
		if l.Y0 < l.Source.Box.Y0-1e-9 || l.Y0 > l.Source.Box.Y1+1e-9 {
			t.Errorf("link %d leaves outside its source", l.Index)
		}
	}
	for _, n := range g.Nodes {
		if n.Box.Y0 < box.Y0-1e-5 || n.Box.Y1 > box.Y1+1e-5 {
			t.Errorf("node %s %v outside %v", n.Name, n.Box, box)
		}
	}
}

func TestLayoutSankeyRejectsCycles(t *testing.T) {
	flow := &data.Flow{
		Nodes: []data.FlowNode{{Name: "a"}, {Name: "b"}},
		Links: []data.FlowLink{{Source: 0, Target: 1, Value: 1}, {Source: 1, Target: 0, Value: 1}},
	}
	_, err := LayoutSankey(flow, geom.Box{X1: 100, Y1: 100}, SankeyOptions{NodeWidth: 15})
	if !errors.Is(err, errors.ErrCodeInvalidHierarchy) {
		t.Errorf("error = %v, want INVALID_HIERARCHY", err)
	}
}

func TestSankeyDescribesLinks(t *testing.T) {
	s, err := (&Sankey{Flow: sampleFlow()}).Build(Size{Width: 600, Height: 400})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Rows) != 5+4 {
		t.Fatalf("got %d rows, want nodes then links", len(s.Rows))
	}
	lines := s.TooltipLines(tooltip.Hit{Index: 5})
	if len(lines) == 0 || lines[0] != "Solar → Grid" {
		t.Errorf("link tooltip = %v", lines)
	}
}

func TestChordLayout(t *testing.T) {
	groups, links, err := ChordLayout([][]float64{{0, 2}, {1, 0}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 || len(links) != 2 {
		t.Fatalf("got %d groups, %d links", len(groups), len(links))
	}
	for _, g := range groups {
		if g.Value != 3 {
			t.Errorf("group %d value = %v, want 3", g.Index, g.Value)
		}
		if math.Abs(g.End-g.Start-math.Pi) > 1e-9 {
			t.Errorf("group %d spans %v, want π", g.Index, g.End-g.Start)
		}
	}
	// Outgoing subgroups come first within a group, largest first.
	first := links[0]
	if first.Source.Index != 0 || first.Target.Index != 1 || first.Source.Start != 0 {
		t.Errorf("first ribbon = %+v", first)
	}
	if first.Source.Value != first.Target.Value {
		t.Errorf("ribbon ends carry %v and %v", first.Source.Value, first.Target.Value)
	}
}

func TestChordLayoutRejectsRaggedMatrix(t *testing.T) {
	_, _, err := ChordLayout([][]float64{{0, 1}, {1}}, 0.05)
	if !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("error = %v, want INVALID_DATASET", err)
	}
}

func TestSuppression(t *testing.T) {
	rows := sales()
	tests := []struct {
		name  string
		chart Chart
		size  Size
		want  bool
	}{
		{"bar too short", &Bar{Data: rows, X: data.String("month"), Series: SeriesOf("revenue")}, Size{Width: 300, Height: 90}, true},
		{"bar ok", &Bar{Data: rows, X: data.String("month"), Series: SeriesOf("revenue")}, Size{Width: 300, Height: 200}, false},
		{"funnel too narrow", &Funnel{Data: rows, Step: data.String("month"), Value: data.Number("revenue")}, Size{Width: 40, Height: 200}, true},
		{"scatter tiny", &Scatter{Data: rows, X: data.Number("cost"), Y: data.Number("revenue")}, Size{Width: 9, Height: 200}, true},
		{"composite small plot", &Composite{Data: rows, X: data.String("month"), Bar: Series{Name: "r", Value: data.Number("revenue")}, Line: Series{Name: "c", Value: data.Number("cost")}}, Size{Width: 60, Height: 60}, true},
		{"composite ok", &Composite{Data: rows, X: data.String("month"), Bar: Series{Name: "r", Value: data.Number("revenue")}, Line: Series{Name: "c", Value: data.Number("cost")}}, Size{Width: 100, Height: 100}, false},
		{"chord too narrow", &Chord{Matrix: [][]float64{{0, 1}, {1, 0}}, Keys: []string{"a", "b"}}, Size{Width: 40, Height: 200}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.chart.Build(tt.size)
			if err != nil {
				t.Fatal(err)
			}
			if s.Suppressed != tt.want {
				t.Errorf("Suppressed = %v, want %v", s.Suppressed, tt.want)
			}
			if tt.want && len(s.Shapes) != 0 {
				t.Errorf("suppressed scene has %d shapes", len(s.Shapes))
			}
		})
	}
}

func TestEmptyData(t *testing.T) {
	for _, c := range allCharts(nil) {
		t.Run(string(c.Kind()), func(t *testing.T) {
			s, err := c.Build(Size{Width: 400, Height: 300})
			if err != nil {
				t.Fatal(err)
			}
			if !s.Empty() {
				t.Errorf("scene has %d shapes, want none", len(s.Shapes))
			}
			if _, ok := s.Locate(200, 150); ok {
				t.Error("empty scene located a row")
			}
		})
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	charts := append(allCharts(sales()),
		&Candlestick{Data: candles(), X: data.Number("date"), Open: data.Number("open"), High: data.Number("high"), Low: data.Number("low"), Close: data.Number("close")},
		&Treemap{Root: sampleTree()},
		&Sankey{Flow: sampleFlow()},
		&Chord{Matrix: [][]float64{{0, 5, 2}, {3, 0, 1}, {4, 2, 0}}, Keys: []string{"x", "y", "z"}},
	)
	size := Size{Width: 640, Height: 400}
	for _, c := range charts {
		t.Run(string(c.Kind()), func(t *testing.T) {
			a, err := c.Build(size)
			if err != nil {
				t.Fatal(err)
			}
			b, err := c.Build(size)
			if err != nil {
				t.Fatal(err)
			}
			if a.Empty() {
				t.Fatal("scene is empty")
			}
			if !reflect.DeepEqual(a.Shapes, b.Shapes) {
				t.Error("shapes differ between builds")
			}
			if !reflect.DeepEqual(a.Axes, b.Axes) {
				t.Error("axes differ between builds")
			}
		})
	}
}

func TestInvalidDimensions(t *testing.T) {
	c := &Bar{Data: sales(), X: data.String("month"), Series: SeriesOf("revenue")}
	if _, err := c.Build(Size{Width: -1, Height: 200}); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("error = %v, want INVALID_OPTION", err)
	}
}

func TestMissingAccessor(t *testing.T) {
	c := &Candlestick{Data: candles(), X: data.Number("date"), Open: data.Number("open")}
	_, err := c.Build(Size{Width: 400, Height: 300})
	if !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("error = %v, want INVALID_OPTION", err)
	}
}

func TestCandlestickSortsByTime(t *testing.T) {
	c := &Candlestick{Data: candles(), X: data.Number("date"), Open: data.Number("open"), High: data.Number("high"), Low: data.Number("low"), Close: data.Number("close")}
	s, err := c.Build(Size{Width: 400, Height: 300})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(s.Rows); i++ {
		if data.ToFloat(s.Rows[i-1]["date"]) > data.ToFloat(s.Rows[i]["date"]) {
			t.Fatal("rows are not sorted by date")
		}
	}
	// The first candle closes above its open.
	body := s.ShapesFor(0)[1].(geom.Rect)
	if body.Fill != "#22c55e" {
		t.Errorf("up candle fill = %s", body.Fill)
	}
}

func TestBarLocate(t *testing.T) {
	c := &Bar{Data: sales(), X: data.String("month"), Series: SeriesOf("revenue")}
	s, err := c.Build(Size{Width: 400, Height: 300})
	if err != nil {
		t.Fatal(err)
	}
	for i := range s.Rows {
		bar := s.ShapesFor(i)[0].(geom.Rect)
		h, ok := s.Locate(bar.X+bar.W/2, bar.Y+bar.H/2)
		if !ok || h.Index != i {
			t.Errorf("bar %d located as %d (%v)", i, h.Index, ok)
		}
	}
	if _, ok := s.Locate(1, 1); ok {
		t.Error("pointer outside the plot located a row")
	}
}

func TestRadialBarRings(t *testing.T) {
	c := &RadialBar{Data: sales(), Value: data.Number("revenue")}
	s, err := c.Build(Size{Width: 240, Height: 240})
	if err != nil {
		t.Fatal(err)
	}
	prev := math.Inf(1)
	for i := range s.Rows {
		arc := s.ShapesFor(i)[0].(geom.Arc)
		if arc.Outer >= prev {
			t.Errorf("ring %d outer %v not inside ring %d", i, arc.Outer, i-1)
		}
		prev = arc.Inner
	}
	// The largest value sweeps the full circle.
	top := s.ShapesFor(2)[0].(geom.Arc)
	if math.Abs(top.End-top.Start-geom.Tau) > 1e-9 {
		t.Errorf("max ring spans %v, want 2π", top.End-top.Start)
	}
}

func TestTreemapZeroLeaf(t *testing.T) {
	box := geom.Box{X1: 300, Y1: 200}
	tree := func() *data.Node {
		return &data.Node{Name: "root", Children: []*data.Node{
			{Name: "a", Size: 10},
			{Name: "b", Size: 5},
			{Name: "z"},
		}}
	}
	finite := func(b geom.Box) bool {
		for _, v := range []float64{b.X0, b.Y0, b.X1, b.Y1} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}
	for _, tile := range Tiles {
		t.Run(string(tile), func(t *testing.T) {
			root, err := Layout(tree(), box, tile, 0)
			if err != nil {
				t.Fatal(err)
			}
			area := 0.0
			for _, c := range root.Children {
				if !finite(c.Box) {
					t.Fatalf("cell %s has box %+v", c.Name, c.Box)
				}
				if c.Box.X0 < box.X0 || c.Box.Y0 < box.Y0 || c.Box.X1 > box.X1 || c.Box.Y1 > box.Y1 {
					t.Errorf("cell %s %+v outside %+v", c.Name, c.Box, box)
				}
				a := c.Box.Width() * c.Box.Height()
				if c.Name == "z" && a != 0 {
					t.Errorf("zero leaf covers %v px²", a)
				}
				area += a
			}
			if area != box.Width()*box.Height() {
				t.Errorf("leaves cover %v px², want %v", area, box.Width()*box.Height())
			}
		})
	}
}

func TestBarSpan(t *testing.T) {
	y := scale.NewLinear(0, 1000, 300, 0)
	tests := []struct {
		name   string
		lo, v  float64
		top, h float64
	}{
		{"regular", 0, 500, 150, 150},
		{"tiny value gets a sliver", 0, 0.1, 299, 1},
		{"tiny stacked value", 500, 0.1, 149, 1},
		{"zero stays empty", 0, 0, 300, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, h := barSpan(y, tt.lo, tt.lo+tt.v, tt.v)
			if math.Abs(top-tt.top) > 1e-9 || math.Abs(h-tt.h) > 1e-9 {
				t.Errorf("barSpan = (%v, %v), want (%v, %v)", top, h, tt.top, tt.h)
			}
		})
	}
}

func TestBarSliverInScene(t *testing.T) {
	rows := data.Dataset{{"x": "A", "y": 1000.0}, {"x": "B", "y": 0.001}, {"x": "C", "y": 0.0}}
	c := &Bar{Data: rows, X: data.String("x"), Series: SeriesOf("y")}
	s, err := c.Build(Size{Width: 300, Height: 200})
	if err != nil {
		t.Fatal(err)
	}
	sliver := s.ShapesFor(1)[0].(geom.Rect)
	if sliver.H != 1 {
		t.Errorf("near-zero bar height = %v, want 1", sliver.H)
	}
	if sliver.Y+sliver.H != math.Round(s.Plot.Y1) {
		t.Errorf("sliver ends at %v, want the baseline %v", sliver.Y+sliver.H, s.Plot.Y1)
	}
	if empty := s.ShapesFor(2)[0].(geom.Rect); empty.H != 0 {
		t.Errorf("zero bar height = %v, want 0", empty.H)
	}
}

func TestRadarSpokes(t *testing.T) {
	r := &Radar{Data: sales(), Angle: data.String("month"), Radius: data.Number("revenue")}
	s, err := r.Build(Size{Width: 400, Height: 400})
	if err != nil {
		t.Fatal(err)
	}
	c := s.Plot.Center()
	n := len(sales())
	step := geom.Tau / float64(n)

	var poly geom.Polygon
	for _, sh := range s.Shapes {
		if p, ok := sh.(geom.Polygon); ok && p.Class == "radar" {
			poly = p
		}
	}
	if len(poly.Points) != n {
		t.Fatalf("radar polygon has %d vertices, want %d", len(poly.Points), n)
	}
	first := poly.Points[0]
	if first.X != c.X || first.Y >= c.Y {
		t.Errorf("first vertex %+v is not straight above the centre %+v", first, c)
	}
	for i, p := range poly.Points {
		if got := geom.Angle(c.X, c.Y, p.X, p.Y); math.Abs(got-float64(i)*step) > 1e-9 {
			t.Errorf("vertex %d at angle %v, want %v", i, got, float64(i)*step)
		}
	}
	if len(s.Grid) != n {
		t.Fatalf("got %d spokes, want %d", len(s.Grid), n)
	}
	for i, l := range s.Grid {
		if got := geom.Angle(c.X, c.Y, l.X2, l.Y2); math.Abs(got-float64(i)*step) > 1e-9 {
			t.Errorf("spoke %d at angle %v, want %v", i, got, float64(i)*step)
		}
	}
	if d := poly.D(); !strings.HasSuffix(d, "Z") || !strings.HasPrefix(d, "M"+geom.F(first.X)+","+geom.F(first.Y)) {
		t.Errorf("outline %q does not close on its first vertex", d)
	}
}

func TestBandLocateRepeatedCategory(t *testing.T) {
	rows := data.Dataset{{"x": "A", "y": 1.0}, {"x": "A", "y": 3.0}, {"x": "B", "y": 1.0}}
	charts := []Chart{
		&Bar{Data: rows, X: data.String("x"), Series: SeriesOf("y")},
		&Composite{Data: rows, X: data.String("x"),
			Bar:  Series{Name: "y", Value: data.Number("y")},
			Line: Series{Name: "y2", Value: data.Number("y")}},
	}
	for _, ch := range charts {
		t.Run(string(ch.Kind()), func(t *testing.T) {
			s, err := ch.Build(Size{Width: 300, Height: 200})
			if err != nil {
				t.Fatal(err)
			}
			bar := s.ShapesFor(2)[0].(geom.Rect)
			h, ok := s.Locate(bar.X+bar.W/2, s.Plot.Y0+1)
			if !ok {
				t.Fatal("band B not located")
			}
			if h.Index != 2 {
				t.Errorf("band B located row %d (%v), want 2", h.Index, s.Rows[h.Index])
			}
			if h.Anchor.X != bar.X+bar.W/2 {
				t.Errorf("anchor x = %v, want %v", h.Anchor.X, bar.X+bar.W/2)
			}

			first := s.ShapesFor(0)[0].(geom.Rect)
			if h, ok := s.Locate(first.X+first.W/2, s.Plot.Y0+1); !ok || h.Index != 1 {
				t.Errorf("band A located row %d (%v), want the last A row", h.Index, ok)
			}
		})
	}
}
